// Package gen provides deterministic Go code generation for record
// constructors.
//
// Generation approach uses text/template + go/format for readable,
// allocation-light Go code. Each record gets one file holding:
//   - package variables for validator and factory call expressions
//   - an unexported args struct and functional options for defaulted fields
//   - New<Type> taking required fields positionally, when init is enabled
//   - Default<Type>, when every field has a default
//   - build<Type>, populating fields in declaration order
package gen
