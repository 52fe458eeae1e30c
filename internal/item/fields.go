package item

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Fields is the shape-checked field set of one item. Every present value
// has already been converted to its field's declared type.
type Fields struct {
	desc   *Descriptor
	values map[string]cty.Value
}

// FromMapping builds Fields from a mapping of field name to value. For typed
// descriptors the "type" key is consumed, not stored.
func FromMapping(desc *Descriptor, m map[string]any) (Fields, error) {
	label, _ := m[LabelField].(string)
	malformed := func(format string, args ...any) error {
		return &MalformedItemError{Category: desc.Category, Label: label, Reason: fmt.Sprintf(format, args...)}
	}

	var unknown []string
	for _, key := range sortedKeys(m) {
		if key == TypeField && desc.Typed {
			continue
		}
		if _, ok := desc.Field(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		return Fields{}, malformed("unknown field(s) '%s'", strings.Join(unknown, "', '"))
	}

	values := make(map[string]cty.Value, len(desc.Fields))
	var missing []string
	for _, fd := range desc.Fields {
		raw, ok := m[fd.Name]
		if !ok || raw == nil {
			if !fd.Optional {
				missing = append(missing, fd.Name)
			}
			continue
		}
		v, err := convertField(fd, raw)
		if err != nil {
			return Fields{}, malformed("%v", err)
		}
		if v.IsNull() {
			if !fd.Optional {
				missing = append(missing, fd.Name)
			}
			continue
		}
		values[fd.Name] = v
	}
	if len(missing) > 0 {
		return Fields{}, malformed("missing required field(s) '%s'", strings.Join(missing, "', '"))
	}

	return Fields{desc: desc, values: values}, nil
}

// FromSequence builds Fields from positional values in descriptor order. For
// typed descriptors the element at TagIndex is the tag and is skipped.
func FromSequence(desc *Descriptor, seq []any) (Fields, error) {
	var label string
	if desc.HasLabel() && len(seq) > 0 {
		label, _ = seq[0].(string)
	}
	malformed := func(format string, args ...any) error {
		return &MalformedItemError{Category: desc.Category, Label: label, Reason: fmt.Sprintf(format, args...)}
	}

	positional := seq
	if desc.Typed {
		idx := desc.TagIndex()
		if len(seq) <= idx {
			return Fields{}, malformed("positional form has no type tag at position %d", idx)
		}
		positional = make([]any, 0, len(seq)-1)
		positional = append(positional, seq[:idx]...)
		positional = append(positional, seq[idx+1:]...)
	}

	if len(positional) < desc.RequiredCount() || len(positional) > len(desc.Fields) {
		if desc.RequiredCount() == len(desc.Fields) {
			return Fields{}, malformed("expected %d positional value(s), got %d", len(desc.Fields), len(positional))
		}
		return Fields{}, malformed("expected between %d and %d positional value(s), got %d",
			desc.RequiredCount(), len(desc.Fields), len(positional))
	}

	values := make(map[string]cty.Value, len(positional))
	for i, raw := range positional {
		fd := desc.Fields[i]
		if raw == nil {
			if !fd.Optional {
				return Fields{}, malformed("required field '%s' is null", fd.Name)
			}
			continue
		}
		v, err := convertField(fd, raw)
		if err != nil {
			return Fields{}, malformed("%v", err)
		}
		if !v.IsNull() {
			values[fd.Name] = v
		}
	}

	return Fields{desc: desc, values: values}, nil
}

// convertField converts a raw value to the field's declared cty type.
func convertField(fd Field, raw any) (cty.Value, error) {
	v, err := ToCty(raw)
	if err != nil {
		return cty.NilVal, fmt.Errorf("field '%s': %w", fd.Name, err)
	}
	converted, err := convert.Convert(v, fd.Type)
	if err != nil {
		return cty.NilVal, fmt.Errorf("field '%s': cannot use %s as %s: %w",
			fd.Name, v.Type().FriendlyName(), fd.Type.FriendlyName(), err)
	}
	return converted, nil
}

// Descriptor returns the descriptor the fields were built against.
func (f Fields) Descriptor() *Descriptor {
	return f.desc
}

// Label returns the label field, or "" for unlabelled items.
func (f Fields) Label() string {
	v, ok := f.values[LabelField]
	if !ok || v.Type() != cty.String {
		return ""
	}
	return v.AsString()
}

// Has reports whether a field has a non-null value.
func (f Fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Value returns the raw cty value of a field, or cty.NilVal if absent.
func (f Fields) Value(name string) cty.Value {
	if v, ok := f.values[name]; ok {
		return v
	}
	return cty.NilVal
}

// Decode stores a field's value into target using gocty. An absent field
// leaves target untouched.
func (f Fields) Decode(name string, target any) error {
	v, ok := f.values[name]
	if !ok {
		return nil
	}
	if err := gocty.FromCtyValue(v, target); err != nil {
		return &MalformedItemError{
			Category: f.category(),
			Label:    f.Label(),
			Reason:   fmt.Sprintf("field '%s': %v", name, err),
		}
	}
	return nil
}

// Names returns the present field names in descriptor order.
func (f Fields) Names() []string {
	if f.desc == nil {
		return nil
	}
	names := make([]string, 0, len(f.values))
	for _, fd := range f.desc.Fields {
		if _, ok := f.values[fd.Name]; ok {
			names = append(names, fd.Name)
		}
	}
	return names
}

// Native returns the present fields as a configuration mapping, suitable
// for FromMapping.
func (f Fields) Native() (map[string]any, error) {
	out := make(map[string]any, len(f.values))
	for name, v := range f.values {
		native, err := ToNative(v)
		if err != nil {
			return nil, fmt.Errorf("field '%s': %w", name, err)
		}
		out[name] = native
	}
	return out, nil
}

func (f Fields) category() string {
	if f.desc == nil {
		return ""
	}
	return f.desc.Category
}
