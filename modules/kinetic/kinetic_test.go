package kinetic_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/spectrokit/internal/decoder"
	"github.com/specialistvlad/spectrokit/internal/model"
	"github.com/specialistvlad/spectrokit/internal/registry"
	"github.com/specialistvlad/spectrokit/internal/validate"
	"github.com/specialistvlad/spectrokit/modules/kinetic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paramSet map[string]bool

func (p paramSet) Has(label string) bool { return p[label] }

func decode(t *testing.T, tree map[string]any) *model.Model {
	t.Helper()
	r := registry.New()
	require.NoError(t, r.Load(&kinetic.Module{}))
	m, err := decoder.New(r, kinetic.Spec()).Decode(context.Background(), tree)
	require.NoError(t, err)
	return m
}

func validModel() map[string]any {
	return map[string]any{
		"initial_concentration": map[string]any{
			"j1": map[string]any{"compartments": []any{"s1", "s2"}, "parameters": []any{"j.1", "j.0"}},
		},
		"k_matrix": map[string]any{
			"km1": map[string]any{"matrix": map[string]any{
				"(s2, s1)": "kinetic.1",
				"(s2, s2)": "kinetic.2",
			}},
		},
		"irf": map[string]any{
			"irf1": []any{"gaussian", "irf.center", "irf.width"},
		},
		"shape": map[string]any{
			"sh1": map[string]any{"type": "gaussian", "amplitude": "shape.amp", "location": "shape.loc", "width": "shape.width"},
			"sh2": []any{"one"},
		},
		"megacomplex": map[string]any{
			"mc1": map[string]any{"type": "decay", "k_matrix": []any{"km1"}},
			"mc2": map[string]any{"type": "spectral", "shape": map[string]any{"s1": "sh1", "s2": "sh2"}},
		},
		"dataset": map[string]any{
			"d1": map[string]any{
				"megacomplex":           []any{"mc1", "mc2"},
				"initial_concentration": "j1",
				"irf":                   "irf1",
				"scale":                 "scale.1",
			},
		},
		"constraints": []any{
			[]any{"zero", "s1", []any{[]any{1, 100}}},
			map[string]any{"type": "only", "target": "s2"},
		},
		"relations": []any{
			map[string]any{"source": "s1", "target": "s2", "parameter": "rel.1"},
		},
	}
}

func TestModule_RegistersEveryCategory(t *testing.T) {
	t.Parallel()

	r := registry.New()
	require.NoError(t, r.Load(&kinetic.Module{}))
	assert.Equal(t, []string{
		"constraint", "dataset", "initial_concentration", "irf",
		"k_matrix", "megacomplex", "relation", "shape",
	}, r.Categories())
	assert.Equal(t, []string{"gaussian", "one", "zero"}, r.Tags("shape"))
	assert.Equal(t, []string{"gaussian", "multi-gaussian"}, r.Tags("irf"))

	require.Error(t, r.Load(&kinetic.Module{}), "registering twice must fail")
}

func TestDecode_FullModel(t *testing.T) {
	t.Parallel()

	m := decode(t, validModel())
	assert.Empty(t, validate.CollectErrors(m))

	it, ok := m.Get(kinetic.AttrKMatrix, "km1")
	require.True(t, ok)
	km := it.(*kinetic.KMatrix)
	assert.Equal(t, []kinetic.Transfer{
		{To: "s2", From: "s1", Parameter: "kinetic.1"},
		{To: "s2", From: "s2", Parameter: "kinetic.2"},
	}, km.Transfers())
	assert.Equal(t, []string{"s1", "s2"}, km.Compartments())

	it, _ = m.Get(kinetic.AttrIRF, "irf1")
	irf := it.(*kinetic.GaussianIRF)
	assert.Equal(t, "irf.center", irf.Center)

	it, _ = m.Get(kinetic.AttrShape, "sh2")
	assert.Equal(t, 1.0, it.(*kinetic.ConstantShape).Value())

	it, _ = m.Get(kinetic.AttrMegacomplex, "mc2")
	assert.Equal(t, map[string]string{"s1": "sh1", "s2": "sh2"}, it.(*kinetic.SpectralMegacomplex).Shape)

	it, _ = m.Get(kinetic.AttrDataset, "d1")
	ds := it.(*kinetic.Dataset)
	assert.Equal(t, []string{"mc1", "mc2"}, ds.Megacomplex)
	assert.Equal(t, "j1", ds.InitialConcentration)
	assert.Equal(t, "scale.1", ds.Scale)

	constraints := m.Items(kinetic.AttrConstraints)
	require.Len(t, constraints, 2)
	zero := constraints[0].(*kinetic.Constraint)
	assert.Equal(t, "zero", zero.Type())
	assert.Equal(t, []kinetic.Interval{{Start: 1, End: 100}}, zero.Intervals)
	assert.True(t, zero.Applies(50))
	assert.False(t, zero.Applies(150))
	assert.True(t, constraints[1].(*kinetic.Constraint).Applies(1e6))

	assert.Equal(t, []string{
		"irf.center", "irf.width", "j.0", "j.1", "kinetic.1", "kinetic.2",
		"rel.1", "scale.1", "shape.amp", "shape.loc", "shape.width",
	}, model.ParameterRefs(m))
}

func TestValidate_Parameters(t *testing.T) {
	t.Parallel()

	m := decode(t, validModel())
	params := paramSet{}
	for _, ref := range model.ParameterRefs(m) {
		params[ref] = true
	}
	assert.Empty(t, validate.CollectParameterErrors(m, params))

	delete(params, "rel.1")
	assert.Equal(t,
		[]string{"relation: parameter 'rel.1' is not defined"},
		validate.CollectParameterErrors(m, params))
}

func TestValidate_StructuralChecks(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		patch func(tree map[string]any)
		want  []string
	}{
		{
			name: "bad k-matrix key",
			patch: func(tree map[string]any) {
				tree["k_matrix"] = map[string]any{"km1": map[string]any{"matrix": map[string]any{"s2->s1": "kinetic.1"}}}
			},
			want: []string{"k_matrix 'km1': invalid k-matrix key 's2->s1', expected '(to, from)'"},
		},
		{
			name: "concentration length mismatch",
			patch: func(tree map[string]any) {
				tree["initial_concentration"] = map[string]any{"j1": map[string]any{"compartments": []any{"s1"}, "parameters": []any{"j.1", "j.0"}}}
			},
			want: []string{"initial_concentration 'j1': 1 compartments but 2 parameters"},
		},
		{
			name: "multi-gaussian mismatch",
			patch: func(tree map[string]any) {
				tree["irf"] = map[string]any{"irf1": map[string]any{"type": "multi-gaussian", "center": []any{"c1", "c2"}, "width": []any{"w1"}}}
			},
			want: []string{"irf 'irf1': 2 centers but 1 widths"},
		},
		{
			name: "multi-gaussian empty",
			patch: func(tree map[string]any) {
				tree["irf"] = map[string]any{"irf1": map[string]any{"type": "multi-gaussian", "center": []any{}, "width": []any{}}}
			},
			want: []string{"irf 'irf1': needs at least one center and one width"},
		},
		{
			name: "dataset without megacomplex",
			patch: func(tree map[string]any) {
				tree["dataset"] = map[string]any{"d1": map[string]any{"megacomplex": []any{}}}
			},
			want: []string{"dataset 'd1': needs at least one megacomplex"},
		},
		{
			name: "dangling references",
			patch: func(tree map[string]any) {
				tree["dataset"] = map[string]any{"d1": map[string]any{"megacomplex": []any{"mc9"}, "irf": "irf9"}}
			},
			want: []string{
				"dataset 'd1': megacomplex 'mc9' referenced in field 'megacomplex' is not defined",
				"dataset 'd1': irf 'irf9' referenced in field 'irf' is not defined",
			},
		},
		{
			name: "empty targets",
			patch: func(tree map[string]any) {
				tree["constraints"] = []any{[]any{"zero", ""}}
				tree["relations"] = []any{[]any{"s1", "", "rel.1"}}
			},
			want: []string{
				"constraint of type 'zero': target must not be empty",
				"relation: target must not be empty",
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tree := validModel()
			tc.patch(tree)
			m := decode(t, tree)
			assert.Equal(t, tc.want, validate.CollectErrors(m))
		})
	}
}

func TestDecode_BadInterval(t *testing.T) {
	t.Parallel()

	r := registry.New()
	require.NoError(t, r.Load(&kinetic.Module{}))
	_, err := decoder.New(r, kinetic.Spec()).Decode(context.Background(), map[string]any{
		"constraints": []any{[]any{"only", "s1", []any{[]any{1, 2, 3}}}},
	})
	require.ErrorContains(t, err, "exactly two bounds")
}
