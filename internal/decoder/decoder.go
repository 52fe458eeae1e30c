package decoder

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/spectrokit/internal/ctxlog"
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/specialistvlad/spectrokit/internal/model"
	"github.com/specialistvlad/spectrokit/internal/registry"
)

// Decoder decodes configuration trees into containers of one model type.
type Decoder struct {
	reg           *registry.Registry
	spec          *model.Spec
	ignoreUnknown bool
	defaults      map[string]string
}

// New creates a Decoder for spec, resolving item types through reg.
func New(reg *registry.Registry, spec *model.Spec, opts ...Option) *Decoder {
	d := &Decoder{
		reg:      reg,
		spec:     spec,
		defaults: make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Spec returns the model type the decoder produces.
func (d *Decoder) Spec() *model.Spec { return d.spec }

// staged is an item that decoded successfully but is not yet inserted.
type staged struct {
	attr  model.Attribute
	label string
	item  item.Item
}

// Decode builds a new container from tree.
func (d *Decoder) Decode(ctx context.Context, tree map[string]any) (*model.Model, error) {
	m := model.New(d.spec)
	if err := d.DecodeInto(ctx, m, tree); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeInto decodes tree and inserts its items into m. On error m is left
// exactly as it was.
func (d *Decoder) DecodeInto(ctx context.Context, m *model.Model, tree map[string]any) error {
	if m.Spec() != d.spec {
		return fmt.Errorf("decoder for model type '%s' cannot populate a '%s' container", d.spec.Name(), m.Spec().Name())
	}
	_, logger := ctxlog.With(ctx, "model_type", d.spec.Name())
	logger.Debug("Decoding model specification.", "attributes", len(tree))

	consumed := make(map[string]struct{}, len(tree))
	defaults, err := d.collectDefaults(tree, consumed)
	if err != nil {
		return err
	}

	var stage []staged
	for _, attr := range d.spec.Attributes() {
		raw, present := tree[attr.Name]
		if !present {
			continue
		}
		consumed[attr.Name] = struct{}{}

		info, ok := d.reg.Category(attr.Category)
		if !ok {
			return fmt.Errorf("attribute '%s': category '%s' is not registered", attr.Name, attr.Category)
		}

		var items []staged
		switch attr.Kind {
		case model.Keyed:
			items, err = d.decodeKeyed(attr, info, defaults, raw)
		case model.Ordered:
			items, err = d.decodeOrdered(attr, info, defaults, raw)
		}
		if err != nil {
			return err
		}
		logger.Debug("Decoded attribute.", "attribute", attr.Name, "kind", attr.Kind.String(), "items", len(items))
		stage = append(stage, items...)
	}

	var residue []string
	for name := range tree {
		if _, ok := consumed[name]; !ok {
			residue = append(residue, name)
		}
	}
	if len(residue) > 0 {
		sort.Strings(residue)
		if !d.ignoreUnknown {
			return &UnknownAttributeError{ModelType: d.spec.Name(), Names: residue}
		}
		logger.Warn("Ignoring attributes not declared by the model type.", "attributes", residue)
	}

	for _, s := range stage {
		var err error
		if s.attr.Kind == model.Keyed {
			err = m.Set(s.attr.Name, s.label, s.item)
		} else {
			err = m.Add(s.attr.Name, s.item)
		}
		if err != nil {
			// Unreachable while m.Spec() == d.spec.
			return err
		}
	}

	logger.Debug("Model specification decoded.", "items", len(stage))
	return nil
}

// collectDefaults merges the decoder's default types with "default-<category>"
// entries from the tree and marks those entries as consumed.
func (d *Decoder) collectDefaults(tree map[string]any, consumed map[string]struct{}) (map[string]string, error) {
	defaults := make(map[string]string, len(d.defaults))
	for k, v := range d.defaults {
		defaults[k] = v
	}
	for _, category := range d.spec.Categories() {
		for _, key := range []string{"default-" + category, "default_" + category} {
			raw, ok := tree[key]
			if !ok {
				continue
			}
			tag, ok := raw.(string)
			if !ok || tag == "" {
				return nil, fmt.Errorf("'%s' must be a type name, got %s", key, kindOf(raw))
			}
			defaults[category] = tag
			consumed[key] = struct{}{}
		}
	}
	return defaults, nil
}

func (d *Decoder) decodeKeyed(attr model.Attribute, info registry.CategoryInfo, defaults map[string]string, raw any) ([]staged, error) {
	if raw == nil {
		return nil, nil
	}
	coll, ok := asMapping(raw)
	if !ok {
		return nil, &item.MalformedItemError{
			Category: attr.Category,
			Reason:   fmt.Sprintf("attribute '%s' expects a mapping of label to item, got %s", attr.Name, kindOf(raw)),
		}
	}

	labels := make([]string, 0, len(coll))
	for label := range coll {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	items := make([]staged, 0, len(coll))
	for _, label := range labels {
		it, err := d.decodeItem(attr, info, defaults, label, -1, coll[label])
		if err != nil {
			return nil, fmt.Errorf("attribute '%s', item '%s': %w", attr.Name, label, err)
		}
		items = append(items, staged{attr: attr, label: label, item: it})
	}
	return items, nil
}

func (d *Decoder) decodeOrdered(attr model.Attribute, info registry.CategoryInfo, defaults map[string]string, raw any) ([]staged, error) {
	if raw == nil {
		return nil, nil
	}
	seq, ok := asSequence(raw)
	if !ok {
		return nil, &item.MalformedItemError{
			Category: attr.Category,
			Reason:   fmt.Sprintf("attribute '%s' expects a sequence of items, got %s", attr.Name, kindOf(raw)),
		}
	}

	items := make([]staged, 0, len(seq))
	for i, cfg := range seq {
		it, err := d.decodeItem(attr, info, defaults, "", i, cfg)
		if err != nil {
			return nil, fmt.Errorf("attribute '%s', item %d: %w", attr.Name, i, err)
		}
		items = append(items, staged{attr: attr, item: it})
	}
	return items, nil
}

// decodeItem resolves the item's variant and constructs it. label is only
// set for keyed collections; index is -1 for keyed collections.
func (d *Decoder) decodeItem(attr model.Attribute, info registry.CategoryInfo, defaults map[string]string, label string, index int, cfg any) (item.Item, error) {
	keyed := index < 0
	missingType := func() error {
		return &MissingTypeError{Attribute: attr.Name, Label: label, Index: index}
	}

	if m, ok := asMapping(cfg); ok {
		tag := ""
		if info.Typed {
			rawTag, present := m[item.TypeField]
			switch {
			case present && rawTag != nil:
				tag = fmt.Sprint(rawTag)
			case defaults[attr.Category] != "":
				tag = defaults[attr.Category]
			default:
				return nil, missingType()
			}
		}
		factory, err := d.reg.Resolve(attr.Category, tag)
		if err != nil {
			return nil, err
		}
		if keyed && info.Labeled {
			m = withLabel(m, item.LabelField, label)
		}
		return factory.FromMapping(m)
	}

	if seq, ok := asSequence(cfg); ok {
		full := seq
		if keyed && info.Labeled {
			full = make([]any, 0, len(seq)+1)
			full = append(full, label)
			full = append(full, seq...)
		}
		tag := ""
		if info.Typed {
			idx := 0
			if info.Labeled {
				idx = 1
			}
			if len(full) <= idx || full[idx] == nil {
				return nil, missingType()
			}
			tag = fmt.Sprint(full[idx])
		}
		factory, err := d.reg.Resolve(attr.Category, tag)
		if err != nil {
			return nil, err
		}
		return factory.FromSequence(full)
	}

	return nil, &item.MalformedItemError{
		Category: attr.Category,
		Label:    label,
		Reason:   fmt.Sprintf("item configuration must be a mapping or a sequence, got %s", kindOf(cfg)),
	}
}
