package kinetic

import (
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/zclconf/go-cty/cty"
)

// InitialConcentration assigns a starting amount parameter to each
// compartment.
type InitialConcentration struct {
	item.Base
	Compartments []string
	Parameters   []string
}

var initialConcentrationFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: AttrInitialConcentration,
		Fields: []item.Field{
			item.Label(),
			{Name: "compartments", Type: cty.List(cty.String)},
			{Name: "parameters", Type: paramList, Ref: item.ParamRef},
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		ic := &InitialConcentration{Base: item.NewBase(f)}
		err := decodeAll(f, map[string]any{
			"compartments": &ic.Compartments,
			"parameters":   &ic.Parameters,
		})
		if err != nil {
			return nil, err
		}
		return ic, nil
	},
}

// ValidateStructure adds the compartment/parameter pairing check.
func (ic *InitialConcentration) ValidateStructure(m item.Lookup) []string {
	errs := ic.Base.ValidateStructure(m)
	if len(ic.Compartments) != len(ic.Parameters) {
		errs = append(errs, issue(ic.Base, "%d compartments but %d parameters",
			len(ic.Compartments), len(ic.Parameters)))
	}
	return errs
}
