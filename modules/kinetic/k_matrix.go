package kinetic

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/zclconf/go-cty/cty"
)

var transferKey = regexp.MustCompile(`^\(\s*([^,()\s]+)\s*,\s*([^,()\s]+)\s*\)$`)

// Transfer is one rate constant of a k-matrix. From == To denotes decay to
// the ground state.
type Transfer struct {
	To        string
	From      string
	Parameter string
}

// KMatrix is a compartmental transfer matrix. Keys have the form
// "(to, from)", values are rate parameter labels.
type KMatrix struct {
	item.Base
	Matrix map[string]string
}

var kMatrixFactory = &item.Factory{
	Descriptor: &item.Descriptor{
		Category: AttrKMatrix,
		Fields: []item.Field{
			item.Label(),
			{Name: "matrix", Type: cty.Map(cty.String), Ref: item.ParamRef},
		},
	},
	New: func(f item.Fields) (item.Item, error) {
		km := &KMatrix{Base: item.NewBase(f)}
		if err := f.Decode("matrix", &km.Matrix); err != nil {
			return nil, err
		}
		return km, nil
	},
}

// ParseTransferKey splits a "(to, from)" matrix key.
func ParseTransferKey(key string) (to, from string, err error) {
	m := transferKey.FindStringSubmatch(key)
	if m == nil {
		return "", "", fmt.Errorf("invalid k-matrix key '%s', expected '(to, from)'", key)
	}
	return m[1], m[2], nil
}

// Transfers returns the parsed matrix entries sorted by (to, from). Entries
// with malformed keys are skipped; ValidateStructure reports them.
func (km *KMatrix) Transfers() []Transfer {
	out := make([]Transfer, 0, len(km.Matrix))
	for key, param := range km.Matrix {
		to, from, err := ParseTransferKey(key)
		if err != nil {
			continue
		}
		out = append(out, Transfer{To: to, From: from, Parameter: param})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].To != out[j].To {
			return out[i].To < out[j].To
		}
		return out[i].From < out[j].From
	})
	return out
}

// Compartments returns every compartment the matrix mentions, sorted.
func (km *KMatrix) Compartments() []string {
	seen := make(map[string]struct{})
	for _, t := range km.Transfers() {
		seen[t.To] = struct{}{}
		seen[t.From] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ValidateStructure adds the matrix key format check.
func (km *KMatrix) ValidateStructure(m item.Lookup) []string {
	errs := km.Base.ValidateStructure(m)
	keys := make([]string, 0, len(km.Matrix))
	for key := range km.Matrix {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, _, err := ParseTransferKey(key); err != nil {
			errs = append(errs, issue(km.Base, "%v", err))
		}
	}
	return errs
}
