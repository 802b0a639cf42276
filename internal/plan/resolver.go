package plan

import (
	"fmt"

	"record-generator/internal/analyze"
	"record-generator/internal/common"
	"record-generator/internal/diagnostic"
	"record-generator/internal/schema"
)

// Resolve validates f against graph and builds the generation plan. The plan
// is nil when there are error diagnostics.
func Resolve(f *schema.File, graph *analyze.TypeGraph) (*Plan, *diagnostic.Diagnostics) {
	records, diags := schema.Resolve(f, graph)
	if diags.HasErrors() {
		return nil, diags
	}

	pkg := graph.Packages[f.Package]

	p := &Plan{
		PkgPath: pkg.Path,
		PkgName: pkg.Name,
		Dir:     pkg.Dir,
	}

	b := &builder{pkgPath: pkg.Path, names: newNamer(pkg, diags)}
	for i := range records {
		p.Records = append(p.Records, b.record(&records[i]))
	}

	if diags.HasErrors() {
		return nil, diags
	}

	return p, diags
}

type builder struct {
	pkgPath string
	names   *namer
}

func (b *builder) record(rr *schema.ResolvedRecord) RecordPlan {
	typeName := rr.Type.ID.Name
	lower := common.LowerCamel(typeName)
	imports := analyze.NewImportSet(b.pkgPath)

	rp := RecordPlan{
		TypeName:  typeName,
		Filename:  Filename(typeName),
		ArgsType:  lower + "Args",
		BuildFunc: "build" + typeName,
		PostInit:  rr.PostInit,
	}

	if rr.Decl.InitEnabled() {
		rp.Constructor = rr.Decl.Constructor
	}

	// Identifiers visible in the constructor body.
	taken := map[string]bool{
		"args":       true,
		"opts":       true,
		"opt":        true,
		rp.ArgsType:  true,
		rp.BuildFunc: true,
	}

	defaulted := true

	for i := range rr.Fields {
		rf := &rr.Fields[i]

		fp := FieldPlan{
			Name:        rf.Info.Name,
			RawType:     imports.TypeString(rf.RawType),
			DefaultMode: rf.DefaultMode,
			Literal:     rf.Literal,
			FactoryErr:  rf.FactoryErr,
			Shape:       rf.Shape,
		}

		switch {
		case rp.Constructor == "" || !rf.Init:
			fp.Param = ParamNone
		case rf.Defaulted():
			fp.Param = ParamOption
		default:
			fp.Param = ParamRequired
		}

		if fp.Param != ParamNone {
			fp.ArgName = unique(common.LowerCamel(fp.Name), taken)
		}

		if fp.Param == ParamOption {
			fp.SetName = unique(fp.ArgName+"Set", taken)
			fp.Option = "With" + typeName + fp.Name
		}

		if rf.Validator != nil {
			fp.Validator = callee(&rp, rf.Validator, lower+fp.Name+"Validator",
				fmt.Sprintf("the validator of %s.%s", typeName, fp.Name))
		}

		if rf.Factory != nil {
			fp.Factory = callee(&rp, rf.Factory, lower+fp.Name+"Factory",
				fmt.Sprintf("the default factory of %s.%s", typeName, fp.Name))
		}

		if !rf.Defaulted() {
			defaulted = false
		}

		rp.Fields = append(rp.Fields, fp)
	}

	if defaulted {
		rp.DefaultsFunc = "Default" + typeName
	}

	if len(rp.Options()) > 0 {
		rp.OptionType = typeName + "Option"
	}

	rp.Imports = imports.Paths()

	b.claimAll(&rp)

	return rp
}

// callee returns the expression the builder calls for ref. Plain references
// are called directly; any other expression is evaluated once into a
// package variable, so every instance shares one value per field.
func callee(rp *RecordPlan, ref *analyze.FuncRef, varName, doc string) string {
	if ref.Reference {
		return ref.Expr
	}

	rp.Vars = append(rp.Vars, VarPlan{Name: varName, Expr: ref.Expr, Doc: doc})

	return varName
}

func (b *builder) claimAll(rp *RecordPlan) {
	for _, name := range []string{rp.Constructor, rp.DefaultsFunc, rp.OptionType, rp.ArgsType, rp.BuildFunc} {
		if name != "" {
			b.names.claim(rp, "", name)
		}
	}

	for _, f := range rp.Options() {
		b.names.claim(rp, f.Name, f.Option)
	}

	for _, v := range rp.Vars {
		b.names.claim(rp, "", v.Name)
	}
}
