package plan

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"record-generator/internal/analyze"
	"record-generator/internal/diagnostic"
	"record-generator/internal/match"
)

// Diagnostic codes produced by Resolve, in addition to the schema ones.
const (
	CodeInvalidName  = "invalid_name"
	CodeNameConflict = "name_conflict"
)

// FileSuffix ends the name of every generated file.
const FileSuffix = "_record.go"

// Filename returns the generated file name for a record type:
// "Account" -> "account_record.go", "HTTPRoute" -> "http_route_record.go".
func Filename(typeName string) string {
	return strings.Join(match.TokenizeIdent(typeName), "_") + FileSuffix
}

// unique returns name, or name with underscores appended until it is not in
// taken or a Go keyword, and marks the result as taken.
func unique(name string, taken map[string]bool) string {
	for taken[name] || token.IsKeyword(name) {
		name += "_"
	}

	taken[name] = true

	return name
}

// namer hands out package-level names and reports conflicts with the record
// package and between records.
type namer struct {
	pkg   *analyze.PackageInfo
	owner map[string]string
	diags *diagnostic.Diagnostics
}

func newNamer(pkg *analyze.PackageInfo, diags *diagnostic.Diagnostics) *namer {
	return &namer{pkg: pkg, owner: make(map[string]string), diags: diags}
}

// claim reserves name for the generated file of record. Declarations found
// in that file itself are stale output and do not conflict.
func (n *namer) claim(rp *RecordPlan, field, name string) {
	if !token.IsIdentifier(name) {
		n.diags.AddError(CodeInvalidName, fmt.Sprintf("%q is not a valid Go identifier", name), rp.TypeName, field)
		return
	}

	if other, ok := n.owner[name]; ok {
		n.diags.AddError(CodeNameConflict,
			fmt.Sprintf("%s is generated for both %s and %s", name, other, rp.TypeName), rp.TypeName, field)

		return
	}

	n.owner[name] = rp.TypeName

	if n.pkg.Pkg == nil {
		return
	}

	obj := n.pkg.Pkg.Scope().Lookup(name)
	if obj == nil {
		return
	}

	pos := n.pkg.Fset.Position(obj.Pos())
	if filepath.Base(pos.Filename) == rp.Filename {
		return
	}

	n.diags.AddError(CodeNameConflict,
		fmt.Sprintf("generated %s conflicts with the declaration at %s", name, pos), rp.TypeName, field)
}
