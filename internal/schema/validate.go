package schema

import (
	"errors"
	"fmt"
	"go/types"

	"record-generator/internal/analyze"
	"record-generator/internal/diagnostic"
	"record-generator/internal/fieldspec"
	"record-generator/internal/match"
	"record-generator/record"
)

// Diagnostic codes produced by Validate, in addition to the fieldspec ones.
const (
	CodeFileIsNil          = "file_is_nil"
	CodeGraphIsNil         = "graph_is_nil"
	CodeUnsupportedVersion = "unsupported_version"
	CodePackageNotLoaded   = "package_not_loaded"
	CodeMissingType        = "missing_type"
	CodeDuplicateRecord    = "duplicate_record"
	CodeTypeNotFound       = "record_type_not_found"
	CodeNotAStruct         = "record_not_struct"
	CodeUnknownField       = "unknown_field"
	CodeDuplicateField     = "duplicate_field"
	CodeInvalidValidator   = "invalid_validator"
	CodeInvalidFactory     = "invalid_factory"
	CodeInvalidDefault     = "invalid_default"
	CodeMutableDefault     = "mutable_default"
	CodeValidatorMismatch  = "validator_type_mismatch"
	CodeFactoryMismatch    = "factory_type_mismatch"
	CodeInvalidPostInit    = "invalid_post_init"
	CodeConstructorIgnored = "constructor_ignored"
)

// suggestionLimit caps did-you-mean suggestions per diagnostic.
const suggestionLimit = 3

// ResolvedRecord is a validated record declaration bound to its struct type.
type ResolvedRecord struct {
	Decl *Record
	Type *analyze.TypeInfo
	// PostInit is set when *T has a PostInit() error method.
	PostInit bool
	// Fields holds every exported struct field in declaration order.
	Fields []ResolvedField
}

// ResolvedField is one struct field with its effective settings.
type ResolvedField struct {
	Info *analyze.FieldInfo
	Init bool
	// RawType is the type of the constructor argument and of the default:
	// the validator argument type if there is a validator, the field type
	// otherwise.
	RawType     types.Type
	DefaultMode record.DefaultMode
	// Literal is the default as a Go expression (ModeLiteral).
	Literal    string
	Factory    *analyze.FuncRef
	FactoryErr bool
	Validator  *analyze.FuncRef
	Shape      analyze.CallShape
}

// Defaulted reports whether the field can be populated without an argument.
func (f *ResolvedField) Defaulted() bool {
	return f.DefaultMode != record.ModeNone
}

// Validate checks a declaration file against the given type graph.
func Validate(f *File, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	_, res := Resolve(f, graph)
	return res
}

// Resolve validates f against graph and binds each record to its struct
// type. Records are returned only when there are no error diagnostics.
func Resolve(f *File, graph *analyze.TypeGraph) ([]ResolvedRecord, *diagnostic.Diagnostics) {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(CodeFileIsNil, "declaration file is nil", "", "")
		return nil, res
	}

	if graph == nil {
		res.AddError(CodeGraphIsNil, "type graph is nil", "", "")
		return nil, res
	}

	if f.Version != CurrentVersion {
		res.AddError(CodeUnsupportedVersion,
			fmt.Sprintf("unsupported version %q, want %q", f.Version, CurrentVersion), "", "")
	}

	if _, ok := graph.Packages[f.Package]; !ok {
		res.AddError(CodePackageNotLoaded, fmt.Sprintf("package %q is not loaded", f.Package), "", "")
		return nil, res
	}

	var (
		records []ResolvedRecord
		seen    = make(map[string]bool, len(f.Records))
	)

	for i := range f.Records {
		decl := &f.Records[i]

		if decl.Type == "" {
			res.AddError(CodeMissingType, fmt.Sprintf("record #%d has no type", i+1), "", "")
			continue
		}

		if seen[decl.Type] {
			res.AddError(CodeDuplicateRecord, fmt.Sprintf("record %s is declared more than once", decl.Type), decl.Type, "")
			continue
		}

		seen[decl.Type] = true

		if rr, ok := resolveRecord(res, graph, f.Package, decl); ok {
			records = append(records, rr)
		}
	}

	if res.HasErrors() {
		return nil, res
	}

	return records, res
}

func resolveRecord(res *diagnostic.Diagnostics, graph *analyze.TypeGraph, pkgPath string, decl *Record) (ResolvedRecord, bool) {
	info, err := graph.Struct(pkgPath, decl.Type)
	switch {
	case errors.Is(err, analyze.ErrTypeNotFound):
		addError(res, CodeTypeNotFound, err.Error(),
			decl.Type, "", match.Suggest(decl.Type, graph.TypeNames(pkgPath), suggestionLimit)...)

		return ResolvedRecord{}, false
	case err != nil:
		addError(res, CodeNotAStruct, err.Error(), decl.Type, "")
		return ResolvedRecord{}, false
	}

	declared := make(map[string]*Field, len(decl.Fields))

	for i := range decl.Fields {
		fd := &decl.Fields[i]

		if info.Field(fd.Name) == nil {
			addError(res, CodeUnknownField, fmt.Sprintf("%s has no record field %q", decl.Type, fd.Name),
				decl.Type, fd.Name, match.Suggest(fd.Name, info.FieldNames(), suggestionLimit)...)

			continue
		}

		if _, dup := declared[fd.Name]; dup {
			addError(res, CodeDuplicateField, fmt.Sprintf("field %q is declared more than once", fd.Name), decl.Type, fd.Name)
			continue
		}

		declared[fd.Name] = fd
	}

	rr := ResolvedRecord{Decl: decl, Type: info}
	rules := make([]fieldspec.Decl[string], 0, len(info.Fields))

	for i := range info.Fields {
		r := fieldResolver{res: res, graph: graph, pkgPath: pkgPath, record: decl.Type}
		rf, rule := r.resolve(&info.Fields[i], declared[info.Fields[i].Name])

		rr.Fields = append(rr.Fields, rf)
		rules = append(rules, rule)
	}

	_, ruleDiags := fieldspec.Check(decl.Type, decl.InitEnabled(), rules)
	res.Merge(ruleDiags)

	if sig := info.PointerMethod("PostInit"); sig != nil {
		if analyze.IsErrorFunc(sig) {
			rr.PostInit = true
		} else {
			res.AddWarning(CodeInvalidPostInit,
				fmt.Sprintf("PostInit has type %s, want func() error; it will not be called", sig), decl.Type, "")
		}
	}

	if !decl.InitEnabled() && decl.Constructor != "" {
		res.AddWarning(CodeConstructorIgnored,
			fmt.Sprintf("constructor %s is ignored: the record has init disabled", decl.Constructor), decl.Type, "")
	}

	return rr, true
}

func addError(res *diagnostic.Diagnostics, code, msg, rec, field string, suggestions ...string) {
	res.Add(diagnostic.Diagnostic{
		Severity:    diagnostic.SeverityError,
		Code:        code,
		Message:     msg,
		Record:      rec,
		Field:       field,
		Suggestions: suggestions,
	})
}
