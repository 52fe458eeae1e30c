package kinetic

import (
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/zclconf/go-cty/cty"
)

// Interval is a closed range on the spectral axis.
type Interval struct {
	Start float64
	End   float64
}

// Constraint restricts the clp of a compartment to zero, or to nothing but
// the given intervals.
type Constraint struct {
	item.Base
	Target    string
	Intervals []Interval
}

func constraintFactory(tag string) *item.Factory {
	return &item.Factory{
		Descriptor: &item.Descriptor{
			Category: CategoryConstraint,
			Tag:      tag,
			Typed:    true,
			Fields: []item.Field{
				{Name: "target", Type: cty.String},
				{Name: "interval", Type: cty.List(cty.List(cty.Number)), Optional: true},
			},
		},
		New: func(f item.Fields) (item.Item, error) {
			c := &Constraint{Base: item.NewBase(f)}
			if err := f.Decode("target", &c.Target); err != nil {
				return nil, err
			}
			var raw [][]float64
			if err := f.Decode("interval", &raw); err != nil {
				return nil, err
			}
			for _, iv := range raw {
				if len(iv) != 2 {
					return nil, &item.MalformedItemError{
						Category: CategoryConstraint,
						Reason:   "field 'interval': every interval needs exactly two bounds",
					}
				}
				c.Intervals = append(c.Intervals, Interval{Start: iv[0], End: iv[1]})
			}
			return c, nil
		},
	}
}

var (
	zeroConstraintFactory = constraintFactory(TypeZero)
	onlyConstraintFactory = constraintFactory(TypeOnly)
)

// Applies reports whether the constraint is active at x. A constraint
// without intervals applies everywhere.
func (c *Constraint) Applies(x float64) bool {
	if len(c.Intervals) == 0 {
		return true
	}
	for _, iv := range c.Intervals {
		lo, hi := iv.Start, iv.End
		if lo > hi {
			lo, hi = hi, lo
		}
		if x >= lo && x <= hi {
			return true
		}
	}
	return false
}

// ValidateStructure requires a non-empty target.
func (c *Constraint) ValidateStructure(m item.Lookup) []string {
	errs := c.Base.ValidateStructure(m)
	if c.Target == "" {
		errs = append(errs, issue(c.Base, "target must not be empty"))
	}
	return errs
}
