package analyze

import (
	"bytes"
	"errors"
	"fmt"
	"go/types"
	"os"
	"path/filepath"
	"reflect"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo
	dir       string
	// generatedHeader marks files hidden from the type checker.
	generatedHeader string
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// WithDir sets the directory patterns are resolved in. The default is the
// current directory.
func (a *Analyzer) WithDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// SkipGenerated hides Go files starting with header from the type checker,
// so that stale generated code neither fails nor shapes the analysis. Type
// errors are tolerated in this mode: other files may refer to declarations
// of the hidden ones.
func (a *Analyzer) SkipGenerated(header string) *Analyzer {
	a.generatedHeader = header
	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/account").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	if a.generatedHeader != "" {
		overlay, err := a.generatedOverlay(patterns)
		if err != nil {
			return nil, err
		}

		cfg.Overlay = overlay
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if err := a.loadErrors(pkgs); err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
			Dir:  packageDir(pkg),
			Pkg:  pkg.Types,
			Fset: pkg.Fset,
		}
	}

	// Types are walked only after every package is registered, so that
	// named types of sibling packages are not mistaken for external ones.
	for _, pkg := range pkgs {
		a.declare(pkg)
	}

	return a.graph, nil
}

// loadErrors joins the errors of pkgs. Type errors are dropped while
// generated files are hidden.
func (a *Analyzer) loadErrors(pkgs []*packages.Package) error {
	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			if a.generatedHeader != "" && e.Kind == packages.TypeError {
				continue
			}

			errs = append(errs, e)
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return nil
}

// generatedOverlay lists the files of patterns and replaces every generated
// one with an empty file of the same package.
func (a *Analyzer) generatedOverlay(patterns []string) (map[string][]byte, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	overlay := make(map[string][]byte)

	for _, pkg := range pkgs {
		for _, file := range pkg.GoFiles {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", file, err)
			}

			if bytes.HasPrefix(data, []byte(a.generatedHeader)) {
				overlay[file] = []byte("package " + pkg.Name + "\n")
			}
		}
	}

	return overlay, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}

// declare adds the exported named types of pkg to the graph.
func (a *Analyzer) declare(pkg *packages.Package) {
	info := a.graph.Packages[pkg.PkgPath]
	scope := pkg.Types.Scope()

	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() {
			continue
		}

		id := TypeID{PkgPath: pkg.PkgPath, Name: name}

		node := a.node(tn.Type())
		node.ID = id

		a.graph.Types[id] = node
		info.Types = append(info.Types, id)
	}
}

// node returns the graph node of t, building it on first use. Nodes are
// cached before their children are walked, which terminates recursive types.
func (a *Analyzer) node(t types.Type) *TypeInfo {
	if n, ok := a.typeCache[t]; ok {
		return n
	}

	n := &TypeInfo{GoType: t}
	a.typeCache[t] = n

	switch tt := t.(type) {
	case *types.Named:
		a.named(tt, n)
	case *types.Basic:
		n.Kind = TypeKindBasic
	case *types.Pointer:
		n.Kind, n.ElemType = TypeKindPointer, a.node(tt.Elem())
	case *types.Slice:
		n.Kind, n.ElemType = TypeKindSlice, a.node(tt.Elem())
	case *types.Map:
		n.Kind, n.ElemType = TypeKindMap, a.node(tt.Elem())
	case *types.Struct:
		n.Kind = TypeKindStruct
		a.fields(tt, n)
	}

	return n
}

func (a *Analyzer) named(t *types.Named, n *TypeInfo) {
	obj := t.Obj()
	if obj.Pkg() != nil {
		n.ID.PkgPath = obj.Pkg().Path()
	}

	n.ID.Name = obj.Name()

	if _, loaded := a.graph.Packages[n.ID.PkgPath]; !loaded {
		n.Kind = TypeKindExternal
		return
	}

	if st, ok := t.Underlying().(*types.Struct); ok {
		n.Kind = TypeKindStruct
		a.fields(st, n)

		return
	}

	n.Kind = TypeKindAlias
	n.Underlying = a.node(t.Underlying())
}

// fields collects the record fields of st into n.
func (a *Analyzer) fields(st *types.Struct, n *TypeInfo) {
	for i := range st.NumFields() {
		v := st.Field(i)
		if !v.Exported() {
			continue
		}

		fi := FieldInfo{
			Name:     v.Name(),
			Exported: true,
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: v.Embedded(),
			Index:    i,
		}
		if fi.Excluded() {
			continue
		}

		fi.Type = a.node(v.Type())
		n.Fields = append(n.Fields, fi)
	}
}
