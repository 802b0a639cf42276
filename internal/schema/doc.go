// Package schema provides the YAML declaration format for generated record
// constructors, its loader and its validation against a loaded package.
//
// # Schema Overview
//
//	version: "1"
//	package: record-generator/examples/account
//	records:
//	  - type: Account
//	    init: true                # constructor enabled (default)
//	    constructor: NewAccount   # default New<Type>
//	    fields:
//	      - name: Email
//	        validator: ValidateEmail
//	      - name: Age
//	        default: 18
//	        validator: AtLeast(18)
//	      - name: Tags
//	        default_factory: NewTags
//	        init: false
//
// Exported struct fields without an entry are plain constructor arguments.
//
// # Expressions
//
// Validators and default factories are Go expressions evaluated in the
// package scope of the record package. A plain reference such as
// ValidateEmail denotes one function value; attaching it to two fields of a
// record is a duplicated validator. A call such as AtLeast(18) creates a new
// value for every field it is written on.
//
// # Defaults
//
// A default is a YAML scalar converted to the raw type of the field: the
// validator argument type when a validator is set, the field type otherwise.
// Sequences and mappings are refused; use a default factory.
package schema
