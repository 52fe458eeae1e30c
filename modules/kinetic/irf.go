package kinetic

import (
	"github.com/specialistvlad/spectrokit/internal/item"
)

// GaussianIRF is a single gaussian instrument response.
type GaussianIRF struct {
	item.Base
	Center string
	Width  string
}

// MultiGaussianIRF is a sum of gaussians with pairwise center and width
// parameters.
type MultiGaussianIRF struct {
	item.Base
	Center []string
	Width  []string
}

var gaussianIRFFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: AttrIRF,
		Tag:      TypeGaussian,
		Typed:    true,
		Fields:   []item.Field{item.Label(), paramField("center"), paramField("width")},
	},
	New: func(f item.Fields) (item.Item, error) {
		irf := &GaussianIRF{Base: item.NewBase(f)}
		err := decodeAll(f, map[string]any{"center": &irf.Center, "width": &irf.Width})
		if err != nil {
			return nil, err
		}
		return irf, nil
	},
}

var multiGaussianIRFFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: AttrIRF,
		Tag:      TypeMultiGaussian,
		Typed:    true,
		Fields: []item.Field{
			item.Label(),
			{Name: "center", Type: paramList, Ref: item.ParamRef},
			{Name: "width", Type: paramList, Ref: item.ParamRef},
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		irf := &MultiGaussianIRF{Base: item.NewBase(f)}
		err := decodeAll(f, map[string]any{"center": &irf.Center, "width": &irf.Width})
		if err != nil {
			return nil, err
		}
		return irf, nil
	},
}

// ValidateStructure requires matching, non-empty center and width lists.
func (irf *MultiGaussianIRF) ValidateStructure(m item.Lookup) []string {
	errs := irf.Base.ValidateStructure(m)
	switch {
	case len(irf.Center) == 0 || len(irf.Width) == 0:
		errs = append(errs, issue(irf.Base, "needs at least one center and one width"))
	case len(irf.Center) != len(irf.Width):
		errs = append(errs, issue(irf.Base, "%d centers but %d widths", len(irf.Center), len(irf.Width)))
	}
	return errs
}
