package item

import (
	"fmt"
	"strings"
)

// Lookup is the read-only view of a model an item validates against.
type Lookup interface {
	Has(attribute, label string) bool
}

// Parameters answers whether a parameter reference resolves.
type Parameters interface {
	Has(label string) bool
}

// Item is the capability every concrete item variant implements.
type Item interface {
	Label() string
	Type() string
	Category() string
	Fields() Fields
	ParameterRefs() []string
	ValidateStructure(m Lookup) []string
	ValidateParameters(m Lookup, p Parameters) []string
}

// Factory constructs one item variant from shape-checked Fields.
type Factory struct {
	Descriptor *Descriptor
	New        func(f Fields) (Item, error)
}

// FromMapping decodes a mapping configuration into an item.
func (fc *Factory) FromMapping(m map[string]any) (Item, error) {
	fields, err := FromMapping(fc.Descriptor, m)
	if err != nil {
		return nil, err
	}
	return fc.New(fields)
}

// FromSequence decodes a positional configuration into an item.
func (fc *Factory) FromSequence(seq []any) (Item, error) {
	fields, err := FromSequence(fc.Descriptor, seq)
	if err != nil {
		return nil, err
	}
	return fc.New(fields)
}

// Base implements the descriptor-driven parts of Item. Concrete variants
// embed it and override the validation methods when they have extra rules.
type Base struct {
	fields Fields
}

// NewBase wraps decoded fields.
func NewBase(f Fields) Base {
	return Base{fields: f}
}

// Label implements Item.
func (b Base) Label() string { return b.fields.Label() }

// Type implements Item.
func (b Base) Type() string {
	if b.fields.desc == nil {
		return ""
	}
	return b.fields.desc.Tag
}

// Category implements Item.
func (b Base) Category() string { return b.fields.category() }

// Fields implements Item.
func (b Base) Fields() Fields { return b.fields }

// Name identifies the item in validation messages.
func (b Base) Name() string {
	if label := b.Label(); label != "" {
		return fmt.Sprintf("%s '%s'", b.Category(), label)
	}
	if tag := b.Type(); tag != "" {
		return fmt.Sprintf("%s of type '%s'", b.Category(), tag)
	}
	return b.Category()
}

// ParameterRefs returns every parameter label the item references, in
// descriptor field order, without duplicates.
func (b Base) ParameterRefs() []string {
	if b.fields.desc == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var refs []string
	for _, fd := range b.fields.desc.Fields {
		if fd.Ref != ParamRef {
			continue
		}
		for _, label := range Strings(b.fields.Value(fd.Name)) {
			if _, dup := seen[label]; dup {
				continue
			}
			seen[label] = struct{}{}
			refs = append(refs, label)
		}
	}
	return refs
}

// ValidateStructure checks that every item reference resolves.
func (b Base) ValidateStructure(m Lookup) []string {
	if b.fields.desc == nil {
		return nil
	}
	var errs []string
	for _, fd := range b.fields.desc.Fields {
		if fd.Ref != ItemRef {
			continue
		}
		for _, label := range Strings(b.fields.Value(fd.Name)) {
			if !m.Has(fd.Target, label) {
				errs = append(errs, fmt.Sprintf("%s: %s '%s' referenced in field '%s' is not defined",
					b.Name(), fd.Target, label, fd.Name))
			}
		}
	}
	return errs
}

// ValidateParameters checks that every parameter reference resolves.
func (b Base) ValidateParameters(_ Lookup, p Parameters) []string {
	var errs []string
	for _, label := range b.ParameterRefs() {
		if p == nil || !p.Has(label) {
			errs = append(errs, fmt.Sprintf("%s: parameter '%s' is not defined", b.Name(), label))
		}
	}
	return errs
}

// String renders the item as a markdown list entry.
func (b Base) String() string {
	var sb strings.Builder
	sb.WriteString("* ")
	if label := b.Label(); label != "" {
		fmt.Fprintf(&sb, "**%s**", label)
	} else {
		sb.WriteString("_item_")
	}
	if tag := b.Type(); tag != "" {
		fmt.Fprintf(&sb, " (%s)", tag)
	}
	native, err := b.fields.Native()
	if err != nil {
		return sb.String()
	}
	var parts []string
	for _, name := range b.fields.Names() {
		if name == LabelField {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", name, native[name]))
	}
	if len(parts) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	return sb.String()
}
