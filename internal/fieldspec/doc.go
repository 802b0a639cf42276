// Package fieldspec holds the decoration-time rules shared by the runtime
// resolver (package record) and the constructor generator.
//
// A record type is described as an ordered list of Decl values. Check
// applies the invariants every record must satisfy before any instance can
// be built:
//
//   - a field has at most one default mechanism (literal or factory)
//   - a field excluded from the constructor must have a default
//   - a record without a constructor cannot contain fields that still
//     need constructor injection
//   - one validator identity is attached to at most one field
//
// Validator identity is whatever comparable key the caller chooses: the
// runtime uses *record.Transform pointers, the generator uses the Go
// identifier a declaration refers to.
package fieldspec
