package fileio

import (
	"context"
	"fmt"

	"github.com/specialistvlad/spectrokit/internal/hclspec"
	"github.com/specialistvlad/spectrokit/internal/parameter"
)

// HCL reads model specifications written in HCL.
type HCL struct{}

// LoadModel parses an HCL file into a configuration tree.
func (*HCL) LoadModel(ctx context.Context, path string) (map[string]any, error) {
	return hclspec.ParseFile(ctx, path)
}

// SaveModel always fails with ErrNotSupported.
func (*HCL) SaveModel(context.Context, map[string]any, string) error {
	return fmt.Errorf("hcl model: %w", ErrNotSupported)
}

// LoadParameters always fails with ErrNotSupported.
func (*HCL) LoadParameters(context.Context, string) (*parameter.Group, error) {
	return nil, fmt.Errorf("hcl parameters: %w", ErrNotSupported)
}

// SaveParameters always fails with ErrNotSupported.
func (*HCL) SaveParameters(context.Context, *parameter.Group, string) error {
	return fmt.Errorf("hcl parameters: %w", ErrNotSupported)
}
