// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of structs and their fields,
// and evaluates function expressions (validators, default factories)
// in a loaded package's scope. Fields tagged `record:"-"` are left out of
// struct types, matching package record.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/map/external)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - FuncRef: an evaluated function expression and its signature
package analyze
