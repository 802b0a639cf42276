package plan

import (
	"errors"
	"fmt"
	"go/types"

	"gopkg.in/yaml.v3"

	"record-generator/internal/analyze"
	"record-generator/internal/diagnostic"
	"record-generator/internal/match"
	"record-generator/internal/schema"
)

// Diagnostic codes produced by Suggest.
const (
	CodeSuggestedValidator = "suggested_validator"
	CodeSuggestedFactory   = "suggested_factory"
)

// Suggest drafts a declaration file for struct types of pkgPath, all of them
// when typeNames is empty. Every exported field is listed. A package function
// named Validate<Field> that fits the field type is proposed as its
// validator, and New<Field> as the default factory of nillable fields.
func Suggest(graph *analyze.TypeGraph, pkgPath string, typeNames []string) (*schema.File, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}

	if _, ok := graph.Packages[pkgPath]; !ok {
		diags.AddError(schema.CodePackageNotLoaded, fmt.Sprintf("package %q is not loaded", pkgPath), "", "")
		return nil, diags
	}

	if len(typeNames) == 0 {
		for _, name := range graph.TypeNames(pkgPath) {
			if _, err := graph.Struct(pkgPath, name); err == nil {
				typeNames = append(typeNames, name)
			}
		}
	}

	funcs := make(map[string]string)
	for _, name := range graph.FuncNames(pkgPath) {
		funcs[match.NormalizeIdent(name)] = name
	}

	s := &suggester{graph: graph, pkgPath: pkgPath, funcs: funcs, diags: diags}

	f := &schema.File{Version: schema.CurrentVersion, Package: pkgPath}

	for _, name := range typeNames {
		info, err := graph.Struct(pkgPath, name)

		switch {
		case errors.Is(err, analyze.ErrTypeNotFound):
			diags.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.SeverityError,
				Code:        schema.CodeTypeNotFound,
				Message:     err.Error(),
				Record:      name,
				Suggestions: match.Suggest(name, graph.TypeNames(pkgPath), 3),
			})
		case err != nil:
			diags.AddError(schema.CodeNotAStruct, err.Error(), name, "")
		default:
			f.Records = append(f.Records, s.record(info))
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return f, diags
}

type suggester struct {
	graph   *analyze.TypeGraph
	pkgPath string
	// funcs maps normalized function names to declared names.
	funcs map[string]string
	diags *diagnostic.Diagnostics
}

func (s *suggester) record(info *analyze.TypeInfo) schema.Record {
	rec := schema.Record{Type: info.ID.Name}
	used := make(map[string]bool)

	for i := range info.Fields {
		fi := &info.Fields[i]
		fd := schema.Field{Name: fi.Name}

		if name := s.validatorFor(fi); name != "" && !used[name] {
			used[name] = true
			fd.Validator = name
			s.diags.AddInfo(CodeSuggestedValidator, "validator "+name, rec.Type, fi.Name)
		}

		if name := s.factoryFor(fi); name != "" {
			fd.DefaultFactory = name
			s.diags.AddInfo(CodeSuggestedFactory, "default factory "+name, rec.Type, fi.Name)
		}

		rec.Fields = append(rec.Fields, fd)
	}

	return rec
}

func (s *suggester) lookup(prefix, field string) *analyze.FuncRef {
	name, ok := s.funcs[prefix+match.NormalizeIdent(field)]
	if !ok {
		return nil
	}

	ref, err := s.graph.EvalFunc(s.pkgPath, name)
	if err != nil {
		return nil
	}

	return ref
}

func (s *suggester) validatorFor(fi *analyze.FieldInfo) string {
	ref := s.lookup("validate", fi.Name)
	if ref == nil {
		return ""
	}

	in, out, _, err := ref.ValidatorShape()
	if err != nil || !types.AssignableTo(fi.Type.GoType, in) || !types.AssignableTo(out, fi.Type.GoType) {
		return ""
	}

	return ref.Expr
}

func (s *suggester) factoryFor(fi *analyze.FieldInfo) string {
	if !schema.Nillable(fi.Type.GoType) {
		return ""
	}

	ref := s.lookup("new", fi.Name)
	if ref == nil {
		return ""
	}

	out, _, err := ref.FactoryShape()
	if err != nil || !types.AssignableTo(out, fi.Type.GoType) {
		return ""
	}

	return ref.Expr
}

// SuggestYAML drafts declarations as YAML.
func SuggestYAML(graph *analyze.TypeGraph, pkgPath string, typeNames []string) ([]byte, *diagnostic.Diagnostics) {
	f, diags := Suggest(graph, pkgPath, typeNames)
	if f == nil {
		return nil, diags
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		diags.AddError("marshal_failed", err.Error(), "", "")
		return nil, diags
	}

	return data, diags
}
