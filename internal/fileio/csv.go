package fileio

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/specialistvlad/spectrokit/internal/ctxlog"
	"github.com/specialistvlad/spectrokit/internal/parameter"
)

// CSV handles parameter tables. Models have no tabular form.
type CSV struct{}

// LoadModel always fails with ErrNotSupported.
func (*CSV) LoadModel(context.Context, string) (map[string]any, error) {
	return nil, fmt.Errorf("csv model: %w", ErrNotSupported)
}

// SaveModel always fails with ErrNotSupported.
func (*CSV) SaveModel(context.Context, map[string]any, string) error {
	return fmt.Errorf("csv model: %w", ErrNotSupported)
}

// LoadParameters reads a table with at least the label and value columns.
func (*CSV) LoadParameters(ctx context.Context, path string) (*parameter.Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parameter file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV parameters %s: %w", path, err)
	}
	g, err := parameter.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("invalid parameters in %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded CSV parameters.", "path", path, "count", len(g.All()))
	return g, nil
}

// SaveParameters writes every parameter of g as one row.
func (*CSV) SaveParameters(ctx context.Context, g *parameter.Group, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parameter file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(g.Records()); err != nil {
		return fmt.Errorf("failed to write CSV parameters %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Saved CSV parameters.", "path", path)
	return f.Close()
}
