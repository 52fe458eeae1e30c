package decoder

import (
	"fmt"

	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/specialistvlad/spectrokit/internal/model"
)

// Encode re-serializes a model into a configuration tree in mapping form.
// Decoding the result yields items with identical field values.
func Encode(v model.View) (map[string]any, error) {
	tree := make(map[string]any)
	for _, attr := range v.Spec().Attributes() {
		if v.Len(attr.Name) == 0 {
			continue
		}
		switch attr.Kind {
		case model.Keyed:
			coll := make(map[string]any, v.Len(attr.Name))
			for _, label := range v.Labels(attr.Name) {
				it, _ := v.Get(attr.Name, label)
				cfg, err := encodeItem(it, true)
				if err != nil {
					return nil, fmt.Errorf("attribute '%s', item '%s': %w", attr.Name, label, err)
				}
				coll[label] = cfg
			}
			tree[attr.Name] = coll
		case model.Ordered:
			items := v.Items(attr.Name)
			seq := make([]any, 0, len(items))
			for i, it := range items {
				cfg, err := encodeItem(it, false)
				if err != nil {
					return nil, fmt.Errorf("attribute '%s', item %d: %w", attr.Name, i, err)
				}
				seq = append(seq, cfg)
			}
			tree[attr.Name] = seq
		}
	}
	return tree, nil
}

func encodeItem(it item.Item, dropLabel bool) (map[string]any, error) {
	cfg, err := it.Fields().Native()
	if err != nil {
		return nil, err
	}
	if dropLabel {
		delete(cfg, item.LabelField)
	}
	if tag := it.Type(); tag != "" {
		cfg[item.TypeField] = tag
	}
	return cfg, nil
}
