package parameter

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Option keys of the list form [label, value, {options}].
const (
	OptionMin         = "min"
	OptionMax         = "max"
	OptionVary        = "vary"
	OptionNonNegative = "non-negative"
	OptionExpr        = "expr"
)

// FromTree builds a root group from a configuration tree. A sequence holds
// parameters; a mapping holds named subgroups.
func FromTree(v any) (*Group, error) {
	return fromTree("", v)
}

func fromTree(label string, v any) (*Group, error) {
	g := NewGroup(label)
	switch tv := v.(type) {
	case nil:
		return g, nil
	case []any:
		for i, entry := range tv {
			p, err := parseParameter(entry, i+1)
			if err != nil {
				return nil, fmt.Errorf("group '%s', entry %d: %w", g.fullLabel(), i, err)
			}
			if err := g.AddParameter(p); err != nil {
				return nil, err
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub, err := fromTree(k, tv[k])
			if err != nil {
				return nil, err
			}
			if err := g.AddGroup(sub); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("group '%s': expected a list of parameters or a mapping of groups, got %T", label, v)
	}
	return g, nil
}

// parseParameter accepts a bare number or a list holding, in any order, an
// optional string label, a numeric value and an optional options mapping.
func parseParameter(entry any, index int) (*Parameter, error) {
	if f, ok := toFloat(entry); ok {
		return New(strconv.Itoa(index), f), nil
	}
	list, ok := entry.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a number or a list, got %T", entry)
	}

	p := New(strconv.Itoa(index), 0)
	var labelSet, valueSet, optsSet bool
	for _, elem := range list {
		switch ev := elem.(type) {
		case string:
			if !labelSet {
				p.Label = ev
				labelSet = true
				continue
			}
			f, ok := toFloat(ev)
			if !ok || valueSet {
				return nil, fmt.Errorf("unexpected string '%s'", ev)
			}
			p.Value, valueSet = f, true
		case map[string]any:
			if optsSet {
				return nil, fmt.Errorf("parameter '%s' has more than one options mapping", p.Label)
			}
			if err := applyOptions(p, ev); err != nil {
				return nil, fmt.Errorf("parameter '%s': %w", p.Label, err)
			}
			optsSet = true
		default:
			f, ok := toFloat(ev)
			if !ok {
				return nil, fmt.Errorf("parameter '%s': unexpected element of type %T", p.Label, elem)
			}
			if valueSet {
				return nil, fmt.Errorf("parameter '%s' has more than one value", p.Label)
			}
			p.Value, valueSet = f, true
		}
	}
	p.FullLabel = p.Label
	return p, nil
}

func applyOptions(p *Parameter, opts map[string]any) error {
	for key, raw := range opts {
		switch key {
		case OptionMin, OptionMax:
			if s, isStr := raw.(string); raw == nil || isStr && IsNA(s) {
				continue
			}
			f, ok := toFloat(raw)
			if !ok {
				return fmt.Errorf("option '%s' must be a number, got %v", key, raw)
			}
			if key == OptionMin {
				p.Minimum = f
			} else {
				p.Maximum = f
			}
		case OptionVary, OptionNonNegative:
			if raw == nil {
				continue
			}
			b, ok := toBool(raw)
			if !ok {
				return fmt.Errorf("option '%s' must be a boolean, got %v", key, raw)
			}
			if key == OptionVary {
				p.Vary = b
			} else {
				p.NonNegative = b
			}
		case OptionExpr:
			if raw == nil {
				continue
			}
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("option '%s' must be a string, got %v", key, raw)
			}
			if !IsNA(s) {
				p.Expression = s
			}
		default:
			return fmt.Errorf("unknown option '%s'", key)
		}
	}
	return nil
}

// AsTree is the inverse of FromTree.
func (g *Group) AsTree() (any, error) {
	if len(g.parameters) > 0 && len(g.groups) > 0 {
		return nil, fmt.Errorf("group '%s': %w", g.fullLabel(), ErrMixedGroup)
	}
	if len(g.groups) > 0 {
		out := make(map[string]any, len(g.groups))
		for _, sub := range g.groups {
			t, err := sub.AsTree()
			if err != nil {
				return nil, err
			}
			out[sub.label] = t
		}
		return out, nil
	}
	out := make([]any, 0, len(g.parameters))
	for _, p := range g.parameters {
		entry := []any{p.Label, p.Value}
		if opts := p.options(); len(opts) > 0 {
			entry = append(entry, opts)
		}
		out = append(out, entry)
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch tv := v.(type) {
	case int:
		return float64(tv), true
	case int64:
		return float64(tv), true
	case uint64:
		return float64(tv), true
	case float32:
		return float64(tv), true
	case float64:
		return tv, true
	case string:
		switch strings.ToLower(strings.TrimSpace(tv)) {
		case "inf", "+inf", "infinity":
			return math.Inf(1), true
		case "-inf", "-infinity":
			return math.Inf(-1), true
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(tv), 64)
		return f, err == nil
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch tv := v.(type) {
	case bool:
		return tv, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(tv))
		return b, err == nil
	}
	return false, false
}

// IsNA reports whether s is one of the spellings treated as "no value".
func IsNA(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "None", "none", "NaN", "nan", "NA", "null":
		return true
	}
	return false
}
