// Package item defines the schema side of model items: the Descriptor that
// declares an item's field shape, the Fields value built from a mapping or a
// positional sequence, and the Item capability interface every concrete
// variant implements.
//
// Field shapes are expressed as go-cty types. A raw configuration value is
// first converted to a cty.Value and then converted to the field's declared
// type, so "2", 2 and 2.0 are all acceptable for a cty.Number field, while a
// mapping given for a cty.List field is rejected as malformed.
package item
