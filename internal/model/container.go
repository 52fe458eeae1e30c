// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Model container and its read-only View.
//
// Keyed collections are stored as maps but always iterated in sorted label
// order, and ordered collections keep insertion order. Together with the
// Spec's attribute order this makes every traversal of a Model reproducible,
// which the validator relies on for stable error output.
package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/spectrokit/internal/item"
)

// View is the read-only interface to a populated Model.
type View interface {
	item.Lookup
	Spec() *Spec
	Get(attribute, label string) (item.Item, bool)
	Items(attribute string) []item.Item
	Labels(attribute string) []string
	Len(attribute string) int
}

// Model holds one collection per declared attribute.
type Model struct {
	spec    *Spec
	keyed   map[string]map[string]item.Item
	ordered map[string][]item.Item
}

var _ View = (*Model)(nil)

// New creates an empty container for spec.
func New(spec *Spec) *Model {
	m := &Model{
		spec:    spec,
		keyed:   make(map[string]map[string]item.Item),
		ordered: make(map[string][]item.Item),
	}
	for _, a := range spec.attributes {
		if a.Kind == Keyed {
			m.keyed[a.Name] = make(map[string]item.Item)
		} else {
			m.ordered[a.Name] = nil
		}
	}
	return m
}

// Spec returns the container type definition.
func (m *Model) Spec() *Spec { return m.spec }

// Set stores it under label in a keyed attribute. A later Set with the same
// label replaces the earlier item.
func (m *Model) Set(attribute, label string, it item.Item) error {
	coll, ok := m.keyed[attribute]
	if !ok {
		return fmt.Errorf("model type '%s' has no keyed attribute '%s'", m.spec.name, attribute)
	}
	if label == "" {
		return fmt.Errorf("attribute '%s': keyed items need a label", attribute)
	}
	coll[label] = it
	return nil
}

// Add appends it to an ordered attribute.
func (m *Model) Add(attribute string, it item.Item) error {
	if _, ok := m.spec.Ordered(attribute); !ok {
		return fmt.Errorf("model type '%s' has no ordered attribute '%s'", m.spec.name, attribute)
	}
	m.ordered[attribute] = append(m.ordered[attribute], it)
	return nil
}

// Get returns the item with label from a keyed attribute.
func (m *Model) Get(attribute, label string) (item.Item, bool) {
	it, ok := m.keyed[attribute][label]
	return it, ok
}

// Has implements item.Lookup. For ordered attributes it matches items whose
// label field equals label.
func (m *Model) Has(attribute, label string) bool {
	if coll, ok := m.keyed[attribute]; ok {
		_, found := coll[label]
		return found
	}
	for _, it := range m.ordered[attribute] {
		if it.Label() == label {
			return true
		}
	}
	return false
}

// Labels returns the labels of a keyed attribute in sorted order, or the
// item labels of an ordered attribute in insertion order.
func (m *Model) Labels(attribute string) []string {
	if coll, ok := m.keyed[attribute]; ok {
		labels := make([]string, 0, len(coll))
		for label := range coll {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		return labels
	}
	items := m.ordered[attribute]
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.Label())
	}
	return labels
}

// Items returns the items of an attribute in iteration order.
func (m *Model) Items(attribute string) []item.Item {
	if coll, ok := m.keyed[attribute]; ok {
		labels := m.Labels(attribute)
		items := make([]item.Item, 0, len(labels))
		for _, label := range labels {
			items = append(items, coll[label])
		}
		return items
	}
	items := m.ordered[attribute]
	out := make([]item.Item, len(items))
	copy(out, items)
	return out
}

// Len returns the number of items in an attribute.
func (m *Model) Len(attribute string) int {
	if coll, ok := m.keyed[attribute]; ok {
		return len(coll)
	}
	return len(m.ordered[attribute])
}

// String renders the model as markdown.
func (m *Model) String() string {
	var sb strings.Builder
	sb.WriteString("# Model\n\n")
	fmt.Fprintf(&sb, "_Type_: %s\n\n", m.spec.name)
	for _, a := range m.spec.attributes {
		if m.Len(a.Name) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", a.Name)
		for _, it := range m.Items(a.Name) {
			fmt.Fprintf(&sb, "%v\n", it)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParameterRefs returns the sorted, de-duplicated parameter labels referenced
// by every item of v.
func ParameterRefs(v View) []string {
	seen := make(map[string]struct{})
	for _, a := range v.Spec().Attributes() {
		for _, it := range v.Items(a.Name) {
			for _, label := range it.ParameterRefs() {
				seen[label] = struct{}{}
			}
		}
	}
	refs := make([]string, 0, len(seen))
	for label := range seen {
		refs = append(refs, label)
	}
	sort.Strings(refs)
	return refs
}
