package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"reflect"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "record-generator/examples/account"
	Name    string // e.g., "Account"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind classifies a type node in the graph.
type TypeKind int

//go:generate go tool stringer -type=TypeKind -trimprefix=TypeKind -output=typekind_string.go

const (
	TypeKindUnknown TypeKind = iota
	TypeKindBasic
	TypeKindStruct
	TypeKindPointer
	TypeKindSlice
	TypeKindMap
	// TypeKindAlias is a named non-struct type declared in a loaded package,
	// such as `type Theme string`.
	TypeKindAlias
	// TypeKindExternal is a named type from a package outside the load set,
	// such as time.Duration. Its structure is not walked.
	TypeKindExternal
)

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID   TypeID // zero for unnamed types like *T or []T
	Kind TypeKind
	// Underlying is set for TypeKindAlias.
	Underlying *TypeInfo
	// ElemType is set for pointers, slices and maps (the value type).
	ElemType *TypeInfo
	// Fields lists record fields in declaration order: exported and not
	// excluded by tag.
	Fields []FieldInfo
	GoType types.Type
}

// Field returns the exported field with the given name, or nil.
func (t *TypeInfo) Field(name string) *FieldInfo {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}

	return nil
}

// FieldNames returns the exported field names in declaration order.
func (t *TypeInfo) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}

	return names
}

// PointerMethod returns the signature of the named method in the method set
// of *T, or nil if there is none.
func (t *TypeInfo) PointerMethod(name string) *types.Signature {
	if t.GoType == nil {
		return nil
	}

	sel := types.NewMethodSet(types.NewPointer(t.GoType)).Lookup(nil, name)
	if sel == nil {
		return nil
	}

	sig, _ := sel.Type().(*types.Signature)

	return sig
}

// FieldInfo is an exported struct field taking part in a record.
type FieldInfo struct {
	Name     string
	Exported bool
	Type     *TypeInfo
	Tag      reflect.StructTag
	Embedded bool
	// Index is the position among all struct fields, unexported ones included.
	Index int
}

// RecordTagKey is the struct tag consulted for field exclusion.
const RecordTagKey = "record"

// Excluded reports whether the field opts out with `record:"-"`.
func (f *FieldInfo) Excluded() bool {
	return f.Tag.Get(RecordTagKey) == "-"
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

var (
	ErrTypeNotFound = errors.New("type not found")
	ErrNotAStruct   = errors.New("not a struct")
)

// Struct returns the named struct type declared in pkgPath.
func (g *TypeGraph) Struct(pkgPath, name string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: name}

	info := g.Types[id]
	switch {
	case info == nil:
		return nil, fmt.Errorf("type %s: %w", id, ErrTypeNotFound)
	case info.Kind != TypeKindStruct:
		return nil, fmt.Errorf("type %s (%s): %w", id, info.Kind, ErrNotAStruct)
	}

	return info, nil
}

// TypeNames returns the names of the types declared in pkgPath.
func (g *TypeGraph) TypeNames(pkgPath string) []string {
	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	names := make([]string, len(pkg.Types))
	for i, id := range pkg.Types {
		names[i] = id.Name
	}

	return names
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory of the package sources
	Types []TypeID // Named types defined in this package

	Pkg  *types.Package // Type-checked package, the scope for EvalFunc
	Fset *token.FileSet
}
