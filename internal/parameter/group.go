package parameter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMixedGroup is returned when a group would hold both parameters and
// subgroups in a form that cannot express it.
var ErrMixedGroup = errors.New("a parameter group cannot contain both groups and parameters")

// Group is a labelled collection of parameters and subgroups. Insertion
// order is kept.
type Group struct {
	label      string
	prefix     string
	parameters []*Parameter
	groups     []*Group
	byLabel    map[string]*Parameter
	byGroup    map[string]*Group
}

// NewGroup creates an empty group. The root group has an empty label.
func NewGroup(label string) *Group {
	return &Group{
		label:   label,
		byLabel: make(map[string]*Parameter),
		byGroup: make(map[string]*Group),
	}
}

// Label returns the group's own label.
func (g *Group) Label() string { return g.label }

// AddParameter appends p. Labels must be unique among parameters and
// subgroups and may not contain dots.
func (g *Group) AddParameter(p *Parameter) error {
	if err := g.checkLabel(p.Label); err != nil {
		return err
	}
	p.FullLabel = join(g.fullLabel(), p.Label)
	g.parameters = append(g.parameters, p)
	g.byLabel[p.Label] = p
	return nil
}

// AddGroup appends sub.
func (g *Group) AddGroup(sub *Group) error {
	if err := g.checkLabel(sub.label); err != nil {
		return err
	}
	sub.setPrefix(g.fullLabel())
	g.groups = append(g.groups, sub)
	g.byGroup[sub.label] = sub
	return nil
}

// Group returns the subgroup with the given label, creating it if needed.
func (g *Group) Group(label string) (*Group, error) {
	if sub, ok := g.byGroup[label]; ok {
		return sub, nil
	}
	sub := NewGroup(label)
	if err := g.AddGroup(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (g *Group) checkLabel(label string) error {
	if label == "" {
		return fmt.Errorf("group '%s': empty label", g.fullLabel())
	}
	if strings.Contains(label, ".") {
		return fmt.Errorf("group '%s': label '%s' may not contain '.'", g.fullLabel(), label)
	}
	if _, dup := g.byLabel[label]; dup {
		return fmt.Errorf("group '%s': duplicate label '%s'", g.fullLabel(), label)
	}
	if _, dup := g.byGroup[label]; dup {
		return fmt.Errorf("group '%s': duplicate label '%s'", g.fullLabel(), label)
	}
	return nil
}

func (g *Group) fullLabel() string {
	return join(g.prefix, g.label)
}

func (g *Group) setPrefix(prefix string) {
	g.prefix = prefix
	full := g.fullLabel()
	for _, p := range g.parameters {
		p.FullLabel = join(full, p.Label)
	}
	for _, sub := range g.groups {
		sub.setPrefix(full)
	}
}

// Get resolves a dotted label relative to g.
func (g *Group) Get(label string) (*Parameter, bool) {
	path := strings.Split(label, ".")
	group := g
	for _, name := range path[:len(path)-1] {
		sub, ok := group.byGroup[name]
		if !ok {
			return nil, false
		}
		group = sub
	}
	p, ok := group.byLabel[path[len(path)-1]]
	return p, ok
}

// Has implements item.Parameters.
func (g *Group) Has(label string) bool {
	_, ok := g.Get(label)
	return ok
}

// Parameters returns the group's direct parameters.
func (g *Group) Parameters() []*Parameter {
	out := make([]*Parameter, len(g.parameters))
	copy(out, g.parameters)
	return out
}

// Groups returns the direct subgroups.
func (g *Group) Groups() []*Group {
	out := make([]*Group, len(g.groups))
	copy(out, g.groups)
	return out
}

// All returns every parameter, depth first: own parameters before those of
// subgroups.
func (g *Group) All() []*Parameter {
	all := g.Parameters()
	for _, sub := range g.groups {
		all = append(all, sub.All()...)
	}
	return all
}

// Labels returns the full labels of All.
func (g *Group) Labels() []string {
	all := g.All()
	labels := make([]string, len(all))
	for i, p := range all {
		labels[i] = p.FullLabel
	}
	return labels
}

// Insert adds a parameter by full label, creating intermediate groups.
func (g *Group) Insert(fullLabel string, p *Parameter) error {
	path := strings.Split(fullLabel, ".")
	group := g
	for _, name := range path[:len(path)-1] {
		if _, clash := group.byLabel[name]; clash {
			return fmt.Errorf("parameter '%s': '%s' is a parameter, not a group", fullLabel, name)
		}
		sub, err := group.Group(name)
		if err != nil {
			return err
		}
		group = sub
	}
	p.Label = path[len(path)-1]
	return group.AddParameter(p)
}

func join(prefix, label string) string {
	switch {
	case prefix == "":
		return label
	case label == "":
		return prefix
	}
	return prefix + "." + label
}
