package item

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// LabelField is the conventional name of the field that identifies an item
// within a keyed collection.
const LabelField = "label"

// TypeField is the reserved mapping key carrying a typed item's tag.
const TypeField = "type"

// RefKind tells the validator how to interpret a field's string values.
type RefKind int

const (
	// Value is a plain value with no cross-references.
	Value RefKind = iota
	// ItemRef values are labels of items in another attribute.
	ItemRef
	// ParamRef values are labels of parameters.
	ParamRef
)

// String implements fmt.Stringer.
func (k RefKind) String() string {
	switch k {
	case ItemRef:
		return "item-ref"
	case ParamRef:
		return "param-ref"
	default:
		return "value"
	}
}

// Field declares one field of an item.
type Field struct {
	Name     string
	Type     cty.Type
	Ref      RefKind
	Target   string // attribute holding the referenced items, for ItemRef
	Optional bool
}

// Descriptor declares the shape of one item variant. Fields are listed in
// positional order; for typed variants the tag is not a field, it occupies
// TagIndex in the positional form.
type Descriptor struct {
	Category string
	Tag      string // empty for untyped categories
	Typed    bool
	Fields   []Field
}

// Label returns the standard label field.
func Label() Field {
	return Field{Name: LabelField, Type: cty.String}
}

// HasLabel reports whether the first field is the label field.
func (d *Descriptor) HasLabel() bool {
	return len(d.Fields) > 0 && d.Fields[0].Name == LabelField
}

// TagIndex is the position of the type tag in the full positional form:
// [label, type, ...] when the item is labelled, [type, ...] otherwise.
func (d *Descriptor) TagIndex() int {
	if d.HasLabel() {
		return 1
	}
	return 0
}

// Field looks up a field by name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredCount is the number of non-optional fields.
func (d *Descriptor) RequiredCount() int {
	n := 0
	for _, f := range d.Fields {
		if !f.Optional {
			n++
		}
	}
	return n
}

// Validate checks the descriptor itself for mistakes that would make
// positional decoding ambiguous.
func (d *Descriptor) Validate() error {
	if d.Category == "" {
		return fmt.Errorf("descriptor has no category")
	}
	if d.Typed && d.Tag == "" {
		return fmt.Errorf("typed descriptor for category '%s' has no tag", d.Category)
	}
	if !d.Typed && d.Tag != "" {
		return fmt.Errorf("untyped descriptor for category '%s' carries tag '%s'", d.Category, d.Tag)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	optionalSeen := false
	for i, f := range d.Fields {
		switch {
		case f.Name == "":
			return fmt.Errorf("category '%s': field %d has no name", d.Category, i)
		case f.Name == TypeField:
			return fmt.Errorf("category '%s': field name '%s' is reserved", d.Category, TypeField)
		case f.Name == LabelField && i != 0:
			return fmt.Errorf("category '%s': label must be the first field", d.Category)
		case f.Ref == ItemRef && f.Target == "":
			return fmt.Errorf("category '%s': reference field '%s' has no target attribute", d.Category, f.Name)
		}
		if f.Type == cty.NilType {
			return fmt.Errorf("category '%s': field '%s' has no type", d.Category, f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("category '%s': duplicate field '%s'", d.Category, f.Name)
		}
		seen[f.Name] = struct{}{}

		// Positional decoding fills fields left to right, so a required
		// field after an optional one could never be reached reliably.
		if f.Optional {
			optionalSeen = true
		} else if optionalSeen {
			return fmt.Errorf("category '%s': required field '%s' follows an optional field", d.Category, f.Name)
		}
	}
	return nil
}
