package fileio

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/spectrokit/internal/ctxlog"
	"github.com/specialistvlad/spectrokit/internal/parameter"
	"gopkg.in/yaml.v3"
)

// YAML handles models and parameters stored as YAML.
type YAML struct{}

// LoadModel reads a YAML model specification. An empty file yields an empty
// tree.
func (*YAML) LoadModel(ctx context.Context, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}
	tree := make(map[string]any)
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse YAML model %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded YAML model specification.", "path", path, "attributes", len(tree))
	return tree, nil
}

// SaveModel writes tree as YAML.
func (*YAML) SaveModel(ctx context.Context, tree map[string]any, path string) error {
	if err := writeYAML(path, tree); err != nil {
		return fmt.Errorf("failed to write YAML model %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Saved YAML model specification.", "path", path)
	return nil
}

// LoadParameters reads a parameter hierarchy in its list or mapping form.
func (*YAML) LoadParameters(ctx context.Context, path string) (*parameter.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse YAML parameters %s: %w", path, err)
	}
	g, err := parameter.FromTree(tree)
	if err != nil {
		return nil, fmt.Errorf("invalid parameters in %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded YAML parameters.", "path", path, "count", len(g.All()))
	return g, nil
}

// SaveParameters writes g in the form LoadParameters reads.
func (*YAML) SaveParameters(ctx context.Context, g *parameter.Group, path string) error {
	tree, err := g.AsTree()
	if err != nil {
		return err
	}
	if err := writeYAML(path, tree); err != nil {
		return fmt.Errorf("failed to write YAML parameters %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Saved YAML parameters.", "path", path)
	return nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
