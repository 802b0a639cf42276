package analyze

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"

	"record-generator/internal/common"
)

var errorType = types.Universe.Lookup("error").Type()

// CallShape is the result shape of a single-argument validator.
type CallShape int

const (
	ShapeUnknown    CallShape = iota
	ShapeValue                // func(In) Out
	ShapeValueError           // func(In) (Out, error)
	ShapeCheck                // func(In) error
)

// String returns a human-readable representation of the CallShape.
func (s CallShape) String() string {
	switch s {
	case ShapeValue:
		return "value"
	case ShapeValueError:
		return "value+error"
	case ShapeCheck:
		return "check"
	default:
		return common.UnknownStr
	}
}

// FuncRef is a function-valued Go expression evaluated in a package scope.
type FuncRef struct {
	// Expr is the expression in canonical form.
	Expr string
	// Reference is set for plain function references (Name, Type.Method,
	// v.Method): every use denotes the same function value. Other expressions,
	// such as calls returning closures, yield a fresh value per evaluation.
	Reference bool
	// Signature is the type of the expression.
	Signature *types.Signature
}

// EvalFunc evaluates expr in the package scope of pkgPath. The result must be
// a non-generic function value. Imports of the package's files are not in
// scope: expressions refer to package-level declarations.
func (g *TypeGraph) EvalFunc(pkgPath, expr string) (*FuncRef, error) {
	pkg, ok := g.Packages[pkgPath]
	if !ok || pkg.Pkg == nil {
		return nil, fmt.Errorf("package %s is not loaded", pkgPath)
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", expr, err)
	}

	node = ast.Unparen(node)

	tv, err := types.Eval(pkg.Fset, pkg.Pkg, token.NoPos, expr)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", expr, err)
	}

	if !tv.IsValue() {
		return nil, fmt.Errorf("%q is not a value", expr)
	}

	sig, ok := tv.Type.Underlying().(*types.Signature)
	if !ok {
		return nil, fmt.Errorf("%q is not a function (type %s)", expr, tv.Type)
	}

	if sig.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("%q is a generic function; instantiate it", expr)
	}

	return &FuncRef{
		Expr:      types.ExprString(node),
		Reference: isReference(node),
		Signature: sig,
	}, nil
}

func isReference(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Ident:
		return true
	case *ast.ParenExpr:
		return isReference(x.X)
	case *ast.StarExpr:
		return isReference(x.X)
	case *ast.SelectorExpr:
		return isReference(x.X)
	default:
		return false
	}
}

// ValidatorShape checks that f takes one argument and returns a value, an
// error, or both. For check-only functions out is the argument type.
func (f *FuncRef) ValidatorShape() (in, out types.Type, shape CallShape, err error) {
	sig := f.Signature

	if sig.Params().Len() != 1 || sig.Variadic() {
		return nil, nil, ShapeUnknown, fmt.Errorf("%s must take exactly one argument, has type %s", f.Expr, sig)
	}

	in = sig.Params().At(0).Type()
	res := sig.Results()

	switch {
	case res.Len() == 1 && types.Identical(res.At(0).Type(), errorType):
		return in, in, ShapeCheck, nil
	case res.Len() == 1:
		return in, res.At(0).Type(), ShapeValue, nil
	case res.Len() == 2 && types.Identical(res.At(1).Type(), errorType):
		return in, res.At(0).Type(), ShapeValueError, nil
	default:
		return nil, nil, ShapeUnknown, fmt.Errorf("%s must return a value, an error, or both, has type %s", f.Expr, sig)
	}
}

// FactoryShape checks that f takes no arguments and returns a value,
// optionally followed by an error.
func (f *FuncRef) FactoryShape() (out types.Type, withErr bool, err error) {
	sig := f.Signature

	if sig.Params().Len() != 0 {
		return nil, false, fmt.Errorf("%s must take no arguments, has type %s", f.Expr, sig)
	}

	res := sig.Results()

	switch {
	case res.Len() == 1 && !types.Identical(res.At(0).Type(), errorType):
		return res.At(0).Type(), false, nil
	case res.Len() == 2 && types.Identical(res.At(1).Type(), errorType):
		return res.At(0).Type(), true, nil
	default:
		return nil, false, fmt.Errorf("%s must return a value, optionally with an error, has type %s", f.Expr, sig)
	}
}

// FuncNames returns the exported package-level functions of pkgPath, sorted.
func (g *TypeGraph) FuncNames(pkgPath string) []string {
	pkg, ok := g.Packages[pkgPath]
	if !ok || pkg.Pkg == nil {
		return nil
	}

	var names []string

	scope := pkg.Pkg.Scope()
	for _, name := range scope.Names() {
		if fn, ok := scope.Lookup(name).(*types.Func); ok && fn.Exported() {
			names = append(names, name)
		}
	}

	return names
}

// IsErrorFunc reports whether sig is func() error.
func IsErrorFunc(sig *types.Signature) bool {
	return sig != nil && sig.Params().Len() == 0 && sig.Results().Len() == 1 &&
		types.Identical(sig.Results().At(0).Type(), errorType)
}
