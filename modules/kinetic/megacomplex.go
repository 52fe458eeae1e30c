package kinetic

import (
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/zclconf/go-cty/cty"
)

// DecayMegacomplex combines one or more k-matrices into a decay scheme.
type DecayMegacomplex struct {
	item.Base
	KMatrix []string
}

// SpectralMegacomplex assigns a spectral shape to each compartment.
type SpectralMegacomplex struct {
	item.Base
	Shape map[string]string
}

var decayMegacomplexFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: AttrMegacomplex,
		Tag:      TypeDecay,
		Typed:    true,
		Fields: []item.Field{
			item.Label(),
			{Name: "k_matrix", Type: cty.List(cty.String), Ref: item.ItemRef, Target: AttrKMatrix},
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		mc := &DecayMegacomplex{Base: item.NewBase(f)}
		if err := f.Decode("k_matrix", &mc.KMatrix); err != nil {
			return nil, err
		}
		return mc, nil
	},
}

var spectralMegacomplexFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: AttrMegacomplex,
		Tag:      TypeSpectral,
		Typed:    true,
		Fields: []item.Field{
			item.Label(),
			{Name: "shape", Type: cty.Map(cty.String), Ref: item.ItemRef, Target: AttrShape},
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		mc := &SpectralMegacomplex{Base: item.NewBase(f)}
		if err := f.Decode("shape", &mc.Shape); err != nil {
			return nil, err
		}
		return mc, nil
	},
}
