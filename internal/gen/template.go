package gen

import (
	"text/template"
)

// recordTemplate renders one record file. Field blocks are prebuilt by
// buildTemplateData; go/format settles alignment afterwards.
var recordTemplate = template.Must(template.New("record").Parse(`{{.Header}}

package {{.PkgName}}

{{if .Imports}}import (
{{range .Imports}}	"{{.}}"
{{end}})

{{end}}{{range .Vars}}// {{.Name}} is {{.Doc}}.
var {{.Name}} = {{.Expr}}

{{end}}{{if .OptionType}}// {{.OptionType}} sets an optional argument of {{.Constructor}}.
type {{.OptionType}} func(*{{.ArgsType}})

{{end}}type {{.ArgsType}} struct {
{{range .ArgFields}}	{{.Name}} {{.Type}}
{{end}}}

{{range .Options}}// {{.Option}} sets {{.Name}}.
func {{.Option}}(v {{.RawType}}) {{$.OptionType}} {
	return func(a *{{$.ArgsType}}) {
		a.{{.ArgName}}, a.{{.SetName}} = v, true
	}
}

{{end}}{{if .Constructor}}// {{.Constructor}} returns a new {{.TypeName}}.
func {{.Constructor}}({{.Params}}) ({{.TypeName}}, error) {
	args := {{.ArgsType}}{ {{- .ArgsInit -}} }
{{if .OptionType}}	for _, opt := range opts {
		opt(&args)
	}
{{end}}
	return {{.BuildFunc}}(args)
}

{{end}}{{if .DefaultsFunc}}// {{.DefaultsFunc}} returns a {{.TypeName}} built from field defaults.
func {{.DefaultsFunc}}() ({{.TypeName}}, error) {
	return {{.BuildFunc}}({{.ArgsType}}{})
}

{{end}}func {{.BuildFunc}}(args {{.ArgsType}}) ({{.TypeName}}, error) {
	var out {{.TypeName}}
{{range .Blocks}}
	// {{.Name}}
	{
{{.Raw}}

{{.Assign}}
	}
{{end}}{{if .PostInit}}
	if err := out.PostInit(); err != nil {
		return {{.TypeName}}{}, err
	}
{{end}}
	return out, nil
}
`))
