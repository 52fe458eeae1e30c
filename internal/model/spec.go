// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Spec, the static declaration of a container type.
//
// An attribute's collection kind plays the role of a capability: a keyed
// attribute offers a single-item setter taking (label, item), an ordered
// attribute a multi-item adder taking (item). The decoder asks the Spec which
// capability an attribute name has instead of inspecting methods at runtime.
package model

import (
	"fmt"
)

// Kind is the collection kind of an attribute.
type Kind int

const (
	// Keyed collections map labels to items. Labels are unique.
	Keyed Kind = iota
	// Ordered collections are label-less, order-preserving sequences.
	Ordered
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Ordered {
		return "ordered"
	}
	return "keyed"
}

// Attribute declares one collection of a container type.
type Attribute struct {
	Name     string
	Kind     Kind
	Category string
}

// Spec is the container type definition: an ordered list of attributes.
type Spec struct {
	name       string
	attributes []Attribute
	index      map[string]int
}

// NewSpec creates a Spec. Attribute names must be unique.
func NewSpec(name string, attrs ...Attribute) (*Spec, error) {
	s := &Spec{
		name:       name,
		attributes: make([]Attribute, 0, len(attrs)),
		index:      make(map[string]int, len(attrs)),
	}
	for _, a := range attrs {
		if a.Name == "" {
			return nil, fmt.Errorf("model type '%s': attribute with empty name", name)
		}
		if a.Category == "" {
			return nil, fmt.Errorf("model type '%s': attribute '%s' has no category", name, a.Name)
		}
		if _, dup := s.index[a.Name]; dup {
			return nil, fmt.Errorf("model type '%s': duplicate attribute '%s'", name, a.Name)
		}
		s.index[a.Name] = len(s.attributes)
		s.attributes = append(s.attributes, a)
	}
	return s, nil
}

// MustSpec is NewSpec for package-level declarations.
func MustSpec(name string, attrs ...Attribute) *Spec {
	s, err := NewSpec(name, attrs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the model type name.
func (s *Spec) Name() string { return s.name }

// Attributes returns the attributes in declaration order.
func (s *Spec) Attributes() []Attribute {
	out := make([]Attribute, len(s.attributes))
	copy(out, s.attributes)
	return out
}

// Attribute looks up an attribute by name.
func (s *Spec) Attribute(name string) (Attribute, bool) {
	i, ok := s.index[name]
	if !ok {
		return Attribute{}, false
	}
	return s.attributes[i], true
}

// Keyed returns the attribute if name has the single-item setter capability.
func (s *Spec) Keyed(name string) (Attribute, bool) {
	a, ok := s.Attribute(name)
	if !ok || a.Kind != Keyed {
		return Attribute{}, false
	}
	return a, true
}

// Ordered returns the attribute if name has the multi-item adder capability.
func (s *Spec) Ordered(name string) (Attribute, bool) {
	a, ok := s.Attribute(name)
	if !ok || a.Kind != Ordered {
		return Attribute{}, false
	}
	return a, true
}

// Categories returns the distinct categories used by the attributes, in
// declaration order.
func (s *Spec) Categories() []string {
	seen := make(map[string]struct{}, len(s.attributes))
	var out []string
	for _, a := range s.attributes {
		if _, ok := seen[a.Category]; ok {
			continue
		}
		seen[a.Category] = struct{}{}
		out = append(out, a.Category)
	}
	return out
}
