package hclspec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParse_BlocksAndAttributes(t *testing.T) {
	t.Parallel()

	src := `
k_matrix "km1" {
  matrix = {
    "(s2, s1)" = "kinetic.1"
    "(s2, s2)" = "kinetic.2"
  }
}

megacomplex "mc1" {
  type     = "decay"
  k_matrix = ["km1"]
}

constraints {
  type   = "zero"
  target = "s1"
}

constraints {
  type     = "only"
  target   = "s2"
  interval = [[1, 100], [200, 300]]
}

relations = [
  { source = "s1", target = "s2", parameter = "rel.1" },
]

dataset "d1" {
  megacomplex = ["mc1"]
  scale       = "scale.1"

  options {
    weight = 0.5
  }
}
`
	tree, err := Parse(context.Background(), []byte(src), "model.hcl")
	require.NoError(t, err)

	want := map[string]any{
		"k_matrix": map[string]any{
			"km1": map[string]any{
				"matrix": map[string]any{"(s2, s1)": "kinetic.1", "(s2, s2)": "kinetic.2"},
			},
		},
		"megacomplex": map[string]any{
			"mc1": map[string]any{"type": "decay", "k_matrix": []any{"km1"}},
		},
		"constraints": []any{
			map[string]any{"type": "zero", "target": "s1"},
			map[string]any{"type": "only", "target": "s2", "interval": []any{[]any{1, 100}, []any{200, 300}}},
		},
		"relations": []any{
			map[string]any{"source": "s1", "target": "s2", "parameter": "rel.1"},
		},
		"dataset": map[string]any{
			"d1": map[string]any{
				"megacomplex": []any{"mc1"},
				"scale":       "scale.1",
				"options":     map[string]any{"weight": 0.5},
			},
		},
	}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Fatalf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "syntax error", src: `megacomplex "mc1" {`, wantErr: "failed to parse HCL"},
		{name: "two labels", src: `megacomplex "decay" "mc1" {}`, wantErr: "at most one label"},
		{name: "attribute and block", src: "relations = []\nrelations {}\n", wantErr: "both as an attribute and as a block"},
		{name: "duplicate label", src: "irf \"a\" {}\nirf \"a\" {}\n", wantErr: "defined more than once"},
		{name: "mixed labels", src: "irf \"a\" {}\nirf {}\n", wantErr: "must either all have a label or none"},
		{name: "variables are not allowed", src: `irf "a" { center = var.x }`, wantErr: "failed to translate"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(context.Background(), []byte(tc.src), "bad.hcl")
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`shape "s1" { type = "one" }`), 0600))

	tree, err := ParseFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"shape": map[string]any{"s1": map[string]any{"type": "one"}}}, tree)

	_, err = ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
}
