package gen

import (
	"fmt"
	"strings"

	"record-generator/internal/analyze"
	"record-generator/internal/plan"
	"record-generator/record"
)

// templateData holds data for rendering one record file.
type templateData struct {
	*plan.RecordPlan

	Header    string
	PkgName   string
	ArgFields []argField
	Params    string
	ArgsInit  string
	Blocks    []fieldBlock
}

// argField is one field of the args struct.
type argField struct {
	Name string
	Type string
}

// fieldBlock is the code populating one struct field. Raw and Assign are
// indented statement lists.
type fieldBlock struct {
	Name   string
	Raw    string
	Assign string
}

func buildTemplateData(tool, pkgName string, rp *plan.RecordPlan) *templateData {
	data := &templateData{
		RecordPlan: rp,
		Header:     Header(tool),
		PkgName:    pkgName,
	}

	var (
		params []string
		inits  []string
	)

	for _, f := range rp.Fields {
		switch f.Param {
		case plan.ParamRequired:
			data.ArgFields = append(data.ArgFields, argField{Name: f.ArgName, Type: f.RawType})
			params = append(params, f.ArgName+" "+f.RawType)
			inits = append(inits, f.ArgName+": "+f.ArgName)
		case plan.ParamOption:
			data.ArgFields = append(data.ArgFields,
				argField{Name: f.ArgName, Type: f.RawType},
				argField{Name: f.SetName, Type: "bool"},
			)
		}

		data.Blocks = append(data.Blocks, fieldBlock{
			Name:   f.Name,
			Raw:    rawCode(rp.TypeName, &f),
			Assign: assignCode(rp.TypeName, &f),
		})
	}

	if rp.OptionType != "" {
		params = append(params, "opts ..."+rp.OptionType)
	}

	data.Params = strings.Join(params, ", ")
	data.ArgsInit = strings.Join(inits, ", ")

	return data
}

// code accumulates statements at a fixed base indentation.
type code struct {
	lines []string
	depth int
}

func (c *code) line(format string, args ...any) {
	if format == "" {
		c.lines = append(c.lines, "")
		return
	}

	c.lines = append(c.lines, strings.Repeat("\t", c.depth)+fmt.Sprintf(format, args...))
}

func (c *code) String() string {
	return strings.Join(c.lines, "\n")
}

// returnErr writes the early return of the builder on err.
func (c *code) returnErr(typeName string) {
	c.line("if err != nil {")
	c.depth++
	c.line("return %s{}, err", typeName)
	c.depth--
	c.line("}")
}

// rawCode declares raw, the value before the validator runs.
func rawCode(typeName string, f *plan.FieldPlan) string {
	c := &code{depth: 2}

	switch f.Param {
	case plan.ParamRequired:
		c.line("raw := args.%s", f.ArgName)

	case plan.ParamOption:
		c.line("var raw %s", f.RawType)
		c.line("if args.%s {", f.SetName)
		c.depth++
		c.line("raw = args.%s", f.ArgName)
		c.depth--
		c.line("} else {")
		c.depth++
		defaultCode(c, typeName, f)
		c.depth--
		c.line("}")

	case plan.ParamNone:
		switch {
		case f.DefaultMode == record.ModeLiteral:
			c.line("var raw %s = %s", f.RawType, f.Literal)
		case f.DefaultMode == record.ModeFactory && !f.FactoryErr:
			c.line("var raw %s = %s()", f.RawType, f.Factory)
		default:
			c.line("var raw %s", f.RawType)
			c.line("")
			defaultCode(c, typeName, f)
		}
	}

	return c.String()
}

// defaultCode assigns the default to an already declared raw.
func defaultCode(c *code, typeName string, f *plan.FieldPlan) {
	switch {
	case f.DefaultMode == record.ModeLiteral:
		c.line("raw = %s", f.Literal)
	case f.FactoryErr:
		c.line("produced, err := %s()", f.Factory)
		c.returnErr(typeName)
		c.line("")
		c.line("raw = produced")
	default:
		c.line("raw = %s()", f.Factory)
	}
}

// assignCode runs the validator on raw and stores the result.
func assignCode(typeName string, f *plan.FieldPlan) string {
	c := &code{depth: 2}

	if f.Validator == "" {
		c.line("out.%s = raw", f.Name)
		return c.String()
	}

	switch f.Shape {
	case analyze.ShapeValueError:
		c.line("v, err := %s(raw)", f.Validator)
		c.returnErr(typeName)
		c.line("")
		c.line("out.%s = v", f.Name)
	case analyze.ShapeCheck:
		c.line("if err := %s(raw); err != nil {", f.Validator)
		c.depth++
		c.line("return %s{}, err", typeName)
		c.depth--
		c.line("}")
		c.line("")
		c.line("out.%s = raw", f.Name)
	default:
		c.line("out.%s = %s(raw)", f.Name, f.Validator)
	}

	return c.String()
}
