package kinetic

import (
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/zclconf/go-cty/cty"
)

// Dataset binds megacomplexes and optional initial concentration and
// instrument response to one measured dataset.
type Dataset struct {
	item.Base
	Megacomplex          []string
	InitialConcentration string
	IRF                  string
	Scale                string
}

var datasetFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: AttrDataset,
		Fields: []item.Field{
			item.Label(),
			{Name: "megacomplex", Type: cty.List(cty.String), Ref: item.ItemRef, Target: AttrMegacomplex},
			{Name: "initial_concentration", Type: cty.String, Ref: item.ItemRef, Target: AttrInitialConcentration, Optional: true},
			{Name: "irf", Type: cty.String, Ref: item.ItemRef, Target: AttrIRF, Optional: true},
			{Name: "scale", Type: cty.String, Ref: item.ParamRef, Optional: true},
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		ds := &Dataset{Base: item.NewBase(f)}
		err := decodeAll(f, map[string]any{
			"megacomplex":           &ds.Megacomplex,
			"initial_concentration": &ds.InitialConcentration,
			"irf":                   &ds.IRF,
			"scale":                 &ds.Scale,
		})
		if err != nil {
			return nil, err
		}
		return ds, nil
	},
}

// ValidateStructure requires at least one megacomplex.
func (ds *Dataset) ValidateStructure(m item.Lookup) []string {
	errs := ds.Base.ValidateStructure(m)
	if len(ds.Megacomplex) == 0 {
		errs = append(errs, issue(ds.Base, "needs at least one megacomplex"))
	}
	return errs
}
