package parameter

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTree_List(t *testing.T) {
	t.Parallel()

	g, err := FromTree([]any{
		1.5,
		[]any{"k1", 0.5},
		[]any{"k2", 2, map[string]any{"min": 0, "max": 10, "vary": false, "non-negative": true}},
		[]any{3, map[string]any{"expr": "$k1 * 2"}},
		[]any{"k3", "4e-3", map[string]any{"min": "None"}},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"1", "k1", "k2", "4", "k3"}, g.Labels())

	first, ok := g.Get("1")
	require.True(t, ok)
	assert.Equal(t, 1.5, first.Value)
	assert.True(t, first.Vary)
	assert.True(t, math.IsInf(first.Minimum, -1))

	k2, _ := g.Get("k2")
	assert.Equal(t, 2.0, k2.Value)
	assert.Equal(t, 0.0, k2.Minimum)
	assert.Equal(t, 10.0, k2.Maximum)
	assert.False(t, k2.Vary)
	assert.True(t, k2.NonNegative)

	four, _ := g.Get("4")
	assert.Equal(t, 3.0, four.Value)
	assert.Equal(t, "$k1 * 2", four.Expression)

	k3, _ := g.Get("k3")
	assert.Equal(t, 0.004, k3.Value)
	assert.True(t, math.IsInf(k3.Minimum, -1))
}

func TestFromTree_Groups(t *testing.T) {
	t.Parallel()

	g, err := FromTree(map[string]any{
		"rates": []any{[]any{"k1", 0.1}},
		"irf": map[string]any{
			"center": []any{[]any{"1", 400}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"irf.center.1", "rates.k1"}, g.Labels())
	assert.True(t, g.Has("rates.k1"))
	assert.False(t, g.Has("rates.k2"))
	assert.False(t, g.Has("nope.k1"))

	p, ok := g.Get("irf.center.1")
	require.True(t, ok)
	assert.Equal(t, "1", p.Label)
	assert.Equal(t, 400.0, p.Value)
}

func TestFromTree_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		tree    any
		wantErr string
	}{
		{name: "scalar group", tree: "x", wantErr: "expected a list of parameters"},
		{name: "bad entry", tree: []any{true}, wantErr: "expected a number or a list"},
		{name: "two values", tree: []any{[]any{"k", 1, 2}}, wantErr: "more than one value"},
		{name: "unknown option", tree: []any{[]any{"k", 1, map[string]any{"step": 1}}}, wantErr: "unknown option 'step'"},
		{name: "bad bound", tree: []any{[]any{"k", 1, map[string]any{"min": "low"}}}, wantErr: "must be a number"},
		{name: "duplicate label", tree: []any{[]any{"k", 1}, []any{"k", 2}}, wantErr: "duplicate label 'k'"},
		{name: "dotted label", tree: []any{[]any{"a.b", 1}}, wantErr: "may not contain '.'"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := FromTree(tc.tree)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestAsTree_RoundTrip(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"rates": []any{
			[]any{"k1", 0.1},
			[]any{"k2", 2.0, map[string]any{"min": 0.0, "vary": false}},
		},
		"scale": []any{[]any{"1", 1.0, map[string]any{"expr": "$rates.k1"}}},
	}
	g, err := FromTree(tree)
	require.NoError(t, err)

	out, err := g.AsTree()
	require.NoError(t, err)
	if diff := cmp.Diff(tree, out); diff != "" {
		t.Fatalf("AsTree() mismatch (-want +got):\n%s", diff)
	}
}

func TestAsTree_MixedGroup(t *testing.T) {
	t.Parallel()

	g := NewGroup("")
	require.NoError(t, g.AddParameter(New("k1", 1)))
	require.NoError(t, g.Insert("rates.k2", New("", 2)))

	_, err := g.AsTree()
	require.True(t, errors.Is(err, ErrMixedGroup))
}

func TestGroup_Insert(t *testing.T) {
	t.Parallel()

	g := NewGroup("")
	require.NoError(t, g.Insert("a.b.c", New("", 1)))
	require.NoError(t, g.Insert("a.d", New("", 2)))

	assert.Equal(t, []string{"a.d", "a.b.c"}, g.Labels())
	err := g.Insert("a.d.e", New("", 3))
	require.ErrorContains(t, err, "'d' is a parameter, not a group")
}

func TestRecords_RoundTrip(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"label", "value", "minimum", "maximum", "vary", "non-negative", "expression"},
		{"rates.k1", "0.5", "", "", "True", "False", "None"},
		{"rates.k2", "2", "0", "10", "False", "True", "None"},
		{"scale.1", "1", "", "", "True", "False", "$rates.k1 * 2"},
	}
	g, err := FromRecords(records)
	require.NoError(t, err)

	k2, ok := g.Get("rates.k2")
	require.True(t, ok)
	assert.Equal(t, 0.0, k2.Minimum)
	assert.Equal(t, 10.0, k2.Maximum)
	assert.False(t, k2.Vary)
	assert.True(t, k2.NonNegative)

	k1, _ := g.Get("rates.k1")
	assert.True(t, math.IsInf(k1.Maximum, 1))
	assert.Empty(t, k1.Expression)

	if diff := cmp.Diff(records, g.Records()); diff != "" {
		t.Fatalf("Records() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromRecords_Minimal(t *testing.T) {
	t.Parallel()

	g, err := FromRecords([][]string{
		{"value", "label"},
		{"3", "k1"},
		{"none", "k2"},
	})
	require.NoError(t, err)
	k1, _ := g.Get("k1")
	assert.Equal(t, 3.0, k1.Value)
	assert.True(t, k1.Vary)
	k2, _ := g.Get("k2")
	assert.Equal(t, 0.0, k2.Value)
}

func TestFromRecords_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		records [][]string
		wantErr string
	}{
		{name: "empty", records: nil, wantErr: "empty"},
		{name: "no value column", records: [][]string{{"label"}}, wantErr: "no 'value' column"},
		{name: "missing label", records: [][]string{{"label", "value"}, {"", "1"}}, wantErr: "row 2: missing label"},
		{name: "bad value", records: [][]string{{"label", "value"}, {"k", "x"}}, wantErr: "invalid value 'x'"},
		{name: "bad vary", records: [][]string{{"label", "value", "vary"}, {"k", "1", "maybe"}}, wantErr: "invalid vary"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := FromRecords(tc.records)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
