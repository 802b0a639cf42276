package schema

import (
	"fmt"
	"go/types"

	"gopkg.in/yaml.v3"

	"record-generator/internal/analyze"
	"record-generator/internal/diagnostic"
	"record-generator/internal/fieldspec"
	"record-generator/record"
)

// fieldResolver type-checks the declaration of one field.
type fieldResolver struct {
	res     *diagnostic.Diagnostics
	graph   *analyze.TypeGraph
	pkgPath string
	record  string
}

func (r *fieldResolver) errorf(code, field, format string, args ...any) {
	r.res.AddError(code, fmt.Sprintf(format, args...), r.record, field)
}

// resolve returns the effective settings of fi and its rule view. fd is nil
// for undeclared fields, which are plain constructor arguments.
func (r *fieldResolver) resolve(fi *analyze.FieldInfo, fd *Field) (ResolvedField, fieldspec.Decl[string]) {
	rf := ResolvedField{Info: fi, Init: true, RawType: fi.Type.GoType}
	rule := fieldspec.Decl[string]{Name: fi.Name, Init: true}

	if fd == nil {
		return rf, rule
	}

	rf.Init = fd.InitEnabled()
	rule.Init, rule.InitExplicit = rf.Init, fd.Init != nil
	rule.HasDefault, rule.HasFactory = fd.HasDefault(), fd.DefaultFactory != ""

	typed := true

	if fd.Validator != "" {
		rule.HasValidator = true
		// Expressions other than plain references are distinct per field.
		rule.Validator = fd.Validator + "@" + fi.Name
		typed = r.validator(&rf, &rule, fd.Validator)
	}

	if !typed {
		return rf, rule
	}

	switch {
	case rule.HasDefault && rule.HasFactory:
		// reported by fieldspec.Check
	case rule.HasDefault:
		r.literal(&rf, fd)
	case rule.HasFactory:
		r.factory(&rf, fd.DefaultFactory)
	}

	return rf, rule
}

// validator resolves expr and reports whether rf.RawType is known.
func (r *fieldResolver) validator(rf *ResolvedField, rule *fieldspec.Decl[string], expr string) bool {
	name := rf.Info.Name

	ref, err := r.graph.EvalFunc(r.pkgPath, expr)
	if err != nil {
		r.errorf(CodeInvalidValidator, name, "validator: %v", err)
		return false
	}

	if ref.Reference {
		rule.Validator = ref.Expr
	}

	in, out, shape, err := ref.ValidatorShape()
	if err != nil {
		r.errorf(CodeInvalidValidator, name, "validator: %v", err)
		return false
	}

	if !types.AssignableTo(out, rf.Info.Type.GoType) {
		r.errorf(CodeValidatorMismatch, name, "validator %s returns %s, which cannot be stored in field %s of type %s",
			ref.Expr, out, name, rf.Info.Type.GoType)
	}

	rf.Validator, rf.Shape, rf.RawType = ref, shape, in

	return true
}

func (r *fieldResolver) literal(rf *ResolvedField, fd *Field) {
	name := rf.Info.Name

	if k := fd.Default.Kind; k == yaml.SequenceNode || k == yaml.MappingNode {
		r.errorf(CodeMutableDefault, name,
			"a %s default would be shared by every instance; use default_factory", kindName(k))

		return
	}

	v, err := fd.DefaultValue()
	if err != nil {
		r.errorf(CodeInvalidDefault, name, "%v", err)
		return
	}

	lit, err := Literal(v, rf.RawType)
	if err != nil {
		r.errorf(CodeInvalidDefault, name, "default %v is not a valid %s: %v", v, rf.RawType, err)
		return
	}

	rf.DefaultMode, rf.Literal = record.ModeLiteral, lit
}

func (r *fieldResolver) factory(rf *ResolvedField, expr string) {
	name := rf.Info.Name

	ref, err := r.graph.EvalFunc(r.pkgPath, expr)
	if err != nil {
		r.errorf(CodeInvalidFactory, name, "default factory: %v", err)
		return
	}

	out, withErr, err := ref.FactoryShape()
	if err != nil {
		r.errorf(CodeInvalidFactory, name, "default factory: %v", err)
		return
	}

	if !types.AssignableTo(out, rf.RawType) {
		r.errorf(CodeFactoryMismatch, name, "default factory %s returns %s, want %s", ref.Expr, out, rf.RawType)
		return
	}

	rf.DefaultMode, rf.Factory, rf.FactoryErr = record.ModeFactory, ref, withErr
}
