package parameter

import (
	"math"
)

// Parameter is a single model parameter.
type Parameter struct {
	Label       string
	FullLabel   string
	Value       float64
	Minimum     float64
	Maximum     float64
	Vary        bool
	NonNegative bool
	Expression  string
}

// New returns a free, unbounded parameter.
func New(label string, value float64) *Parameter {
	return &Parameter{
		Label:     label,
		FullLabel: label,
		Value:     value,
		Minimum:   math.Inf(-1),
		Maximum:   math.Inf(1),
		Vary:      true,
	}
}

// options returns the non-default settings of p in tree form.
func (p *Parameter) options() map[string]any {
	opts := make(map[string]any)
	if !math.IsInf(p.Minimum, -1) {
		opts[OptionMin] = p.Minimum
	}
	if !math.IsInf(p.Maximum, 1) {
		opts[OptionMax] = p.Maximum
	}
	if !p.Vary {
		opts[OptionVary] = false
	}
	if p.NonNegative {
		opts[OptionNonNegative] = true
	}
	if p.Expression != "" {
		opts[OptionExpr] = p.Expression
	}
	return opts
}
