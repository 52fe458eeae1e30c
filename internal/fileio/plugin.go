package fileio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/specialistvlad/spectrokit/internal/parameter"
)

// ErrNotSupported is returned by plugins for operations their format cannot
// perform, such as writing a model to CSV.
var ErrNotSupported = errors.New("operation not supported by this format")

// Plugin reads and writes one or more file formats.
type Plugin interface {
	LoadModel(ctx context.Context, path string) (map[string]any, error)
	SaveModel(ctx context.Context, tree map[string]any, path string) error
	LoadParameters(ctx context.Context, path string) (*parameter.Group, error)
	SaveParameters(ctx context.Context, g *parameter.Group, path string) error
}

// Registry maps format names to plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Builtin returns a registry holding the yml, csv and hcl plugins.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(&YAML{}, "yml", "yaml")
	r.Register(&CSV{}, "csv")
	r.Register(&HCL{}, "hcl")
	return r
}

// Register adds p under every given format name. Registering a format twice
// is a programming error and panics.
func (r *Registry) Register(p Plugin, formats ...string) {
	for _, format := range formats {
		format = normalize(format)
		if _, exists := r.plugins[format]; exists {
			panic(fmt.Sprintf("file format plugin '%s' already registered", format))
		}
		slog.Debug("Registering file format plugin.", "format", format, "plugin", fmt.Sprintf("%T", p))
		r.plugins[format] = p
	}
}

// ForFormat returns the plugin registered for format.
func (r *Registry) ForFormat(format string) (Plugin, error) {
	p, ok := r.plugins[normalize(format)]
	if !ok {
		return nil, fmt.Errorf("unknown file format '%s' (known: %s)", normalize(format), strings.Join(r.Formats(), ", "))
	}
	return p, nil
}

// ForFile picks a plugin by the extension of path.
func (r *Registry) ForFile(path string) (Plugin, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("cannot determine file format of '%s': no extension", path)
	}
	return r.ForFormat(ext)
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.plugins))
	for f := range r.plugins {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}
