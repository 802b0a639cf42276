// Package record adds per-field defaults, default factories, constructor
// control and validation/conversion hooks to plain Go structs.
//
// A struct type is compiled once with Define. Every exported field becomes a
// record field, in declaration order; Field options and `record` struct tags
// describe how each field obtains its value:
//
//	type Account struct {
//		Email string
//		Age   int    `record:"default=18"`
//		Tags  []string
//	}
//
//	var accounts = record.MustDefine[Account](
//		record.Field("Email", record.Validator(record.Check(validateEmail))),
//		record.Field("Tags", record.DefaultFactory(func() []string { return []string{"new"} }), record.Init(false)),
//	)
//
//	acc, err := accounts.New("ann@example.com")
//
// Construction binds arguments first (positional arguments follow field
// order, named arguments use field names), then walks the fields in order:
// the supplied value, the literal default or a fresh factory value is passed
// through the field's Transform, if any, and stored. An error returned by a
// factory or a transform aborts construction and is returned unchanged; no
// partially built value escapes.
//
// Define rejects self-contradictory declarations with ErrConfiguration and a
// Transform attached to more than one field with ErrDuplicatedValidator.
// Transforms are compared by identity: two transforms created from the same
// function are distinct, one *Transform reused on two fields is not. A Go
// func value has no usable identity of its own, so the *Transform handle is
// the unit of reuse here. record-generator instead sees validators as source
// expressions and flags one function name written on two fields.
//
// Tag syntax: `record:"-"` excludes a field; `record:"init=false,default=x"`
// sets the init flag and a literal default. Items are comma separated; quote
// a default containing commas, as in `default='a, b'`. The literal is parsed
// into the input type of the field's Transform when it has one, and into the
// field type otherwise.
package record
