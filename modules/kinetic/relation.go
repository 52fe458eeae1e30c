package kinetic

import (
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/zclconf/go-cty/cty"
)

// Relation ties the clp of target to the clp of source through a scaling
// parameter.
type Relation struct {
	item.Base
	Source    string
	Target    string
	Parameter string
}

var relationFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: CategoryRelation,
		Fields: []item.Field{
			{Name: "source", Type: cty.String},
			{Name: "target", Type: cty.String},
			paramField("parameter"),
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		r := &Relation{Base: item.NewBase(f)}
		err := decodeAll(f, map[string]any{
			"source":    &r.Source,
			"target":    &r.Target,
			"parameter": &r.Parameter,
		})
		if err != nil {
			return nil, err
		}
		return r, nil
	},
}

// ValidateStructure requires a non-empty target.
func (r *Relation) ValidateStructure(m item.Lookup) []string {
	errs := r.Base.ValidateStructure(m)
	if r.Target == "" {
		errs = append(errs, issue(r.Base, "target must not be empty"))
	}
	return errs
}
