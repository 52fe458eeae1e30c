package kinetic

import (
	"github.com/specialistvlad/spectrokit/internal/item"
)

// GaussianShape is a gaussian spectral shape.
type GaussianShape struct {
	item.Base
	Amplitude string
	Location  string
	Width     string
}

// ConstantShape is the "one" or "zero" shape; it has no parameters.
type ConstantShape struct {
	item.Base
}

// Value is 1 for the "one" shape and 0 for "zero".
func (s *ConstantShape) Value() float64 {
	if s.Type() == TypeOne {
		return 1
	}
	return 0
}

var gaussianShapeFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: AttrShape,
		Tag:      TypeGaussian,
		Typed:    true,
		Fields: []item.Field{
			item.Label(),
			paramField("amplitude"),
			paramField("location"),
			paramField("width"),
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		s := &GaussianShape{Base: item.NewBase(f)}
		err := decodeAll(f, map[string]any{
			"amplitude": &s.Amplitude,
			"location":  &s.Location,
			"width":     &s.Width,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	},
}

var (
	oneShapeFactory  = constantShapeFactory(TypeOne)
	zeroShapeFactory = constantShapeFactory(TypeZero)
)

func constantShapeFactory(tag string) *item.Factory {
	return &item.Factory{
		Descriptor: &item.Descriptor{
			Category: AttrShape,
			Tag:      tag,
			Typed:    true,
			Fields:   []item.Field{item.Label()},
		},
		New: func(f item.Fields) (item.Item, error) {
			return &ConstantShape{Base: item.NewBase(f)}, nil
		},
	}
}
