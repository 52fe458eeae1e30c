package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/specialistvlad/spectrokit/internal/ctxlog"
	"github.com/specialistvlad/spectrokit/internal/fsutil"
	"github.com/specialistvlad/spectrokit/internal/model"
	"github.com/specialistvlad/spectrokit/internal/parameter"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the project file inside the project folder.
	FileName = "project.gta"
	// Version is written into new project files.
	Version = "0.1.0"

	modelsDir     = "models"
	parametersDir = "parameters"
)

var (
	// ErrNotFound is returned when no model or parameter file matches a name.
	ErrNotFound = errors.New("not found")
	// ErrExists is returned by Create when the folder already holds a project.
	ErrExists = errors.New("project already exists")
	// ErrIncompatible is returned by Open for project files written by a
	// newer major or minor version.
	ErrIncompatible = errors.New("incompatible project version")

	modelPatterns     = []string{"*.{yml,yaml,hcl}"}
	parameterPatterns = []string{"*.{yml,yaml,csv}"}
)

// Loader reads and writes the files a project holds.
type Loader interface {
	LoadModel(ctx context.Context, path string) (*model.Model, error)
	LoadParameters(ctx context.Context, path string) (*parameter.Group, error)
	SaveParameters(ctx context.Context, g *parameter.Group, path string) error
}

// Project is an opened project folder.
type Project struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	folder string
	loader Loader
}

// Create initializes folder as a new project. The folder is created if
// needed; an existing project file is never overwritten.
func Create(ctx context.Context, folder, name string, l Loader) (*Project, error) {
	logger := ctxlog.FromContext(ctx)
	if name == "" {
		name = filepath.Base(folder)
	}
	file := filepath.Join(folder, FileName)
	exists, err := fsutil.Exists(file)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", folder, ErrExists)
	}

	for _, dir := range []string{folder, filepath.Join(folder, modelsDir), filepath.Join(folder, parametersDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create project folder: %w", err)
		}
	}

	p := &Project{Name: name, Version: Version, folder: folder, loader: l}
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write project file: %w", err)
	}
	logger.Info("Project created.", "name", name, "folder", folder)
	return p, nil
}

// Open reads the project file in folder.
func Open(ctx context.Context, folder string, l Loader) (*Project, error) {
	file := filepath.Join(folder, FileName)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	p := &Project{folder: folder, loader: l}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%s: project name is missing", file)
	}
	if p.Version == "" {
		p.Version = Version
	}
	if err := checkVersion(p.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	ctxlog.FromContext(ctx).Debug("Project opened.", "name", p.Name, "version", p.Version, "folder", folder)
	return p, nil
}

// checkVersion accepts any version from the current major line up to the
// current minor release.
func checkVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid project version '%s': %w", version, err)
	}
	current := semver.MustParse(Version)
	c, err := semver.NewConstraint(fmt.Sprintf(">= %d.0.0, < %d.%d.0", current.Major(), current.Major(), current.Minor()+1))
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("project version %s, supported up to %d.%d: %w", v, current.Major(), current.Minor(), ErrIncompatible)
	}
	return nil
}

// Folder is the project root.
func (p *Project) Folder() string { return p.folder }

// ModelDir is the folder holding model specifications.
func (p *Project) ModelDir() string { return filepath.Join(p.folder, modelsDir) }

// ParametersDir is the folder holding parameter sets.
func (p *Project) ParametersDir() string { return filepath.Join(p.folder, parametersDir) }

// ModelNames lists the models in the project by file stem.
func (p *Project) ModelNames() ([]string, error) {
	return names(p.ModelDir(), modelPatterns)
}

// ParameterNames lists the parameter sets in the project by file stem.
func (p *Project) ParameterNames() ([]string, error) {
	return names(p.ParametersDir(), parameterPatterns)
}

// LoadModel loads the first model whose file name contains name.
func (p *Project) LoadModel(ctx context.Context, name string) (*model.Model, error) {
	path, err := find(p.ModelDir(), modelPatterns, name)
	if err != nil {
		return nil, fmt.Errorf("model '%s': %w", name, err)
	}
	return p.loader.LoadModel(ctx, path)
}

// LoadParameters loads the first parameter set whose file name contains name.
func (p *Project) LoadParameters(ctx context.Context, name string) (*parameter.Group, error) {
	path, err := find(p.ParametersDir(), parameterPatterns, name)
	if err != nil {
		return nil, fmt.Errorf("parameters '%s': %w", name, err)
	}
	return p.loader.LoadParameters(ctx, path)
}

// GenerateParameters writes a parameter set covering every parameter the
// model references, each with value 0, no bounds and vary enabled. The file
// is written to the parameters folder as name.format, creating the folder if
// needed; name defaults to "<model>_parameters". The path of the written
// file is returned.
func (p *Project) GenerateParameters(ctx context.Context, modelName, name, format string) (string, error) {
	m, err := p.LoadModel(ctx, modelName)
	if err != nil {
		return "", err
	}
	g, err := Generate(m)
	if err != nil {
		return "", fmt.Errorf("model '%s': %w", modelName, err)
	}
	if name == "" {
		name = modelName + "_parameters"
	}
	if format == "" {
		format = "csv"
	}
	if err := os.MkdirAll(p.ParametersDir(), 0o755); err != nil {
		return "", fmt.Errorf("failed to create parameters folder: %w", err)
	}
	path := filepath.Join(p.ParametersDir(), name+"."+strings.TrimPrefix(format, "."))
	if err := p.loader.SaveParameters(ctx, g, path); err != nil {
		return "", err
	}
	ctxlog.FromContext(ctx).Info("Parameters generated.", "model", modelName, "path", path, "count", len(g.All()))
	return path, nil
}

// Generate builds a parameter group holding a default parameter for every
// reference in v.
func Generate(v model.View) (*parameter.Group, error) {
	root := parameter.NewGroup("")
	for _, ref := range model.ParameterRefs(v) {
		if err := root.Insert(ref, parameter.New("", 0)); err != nil {
			return nil, err
		}
	}
	if len(root.Parameters()) > 0 && len(root.Groups()) > 0 {
		return nil, parameter.ErrMixedGroup
	}
	return root, nil
}

func names(dir string, patterns []string) ([]string, error) {
	files, err := list(dir, patterns)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		base := filepath.Base(f)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		if _, dup := seen[stem]; dup {
			continue
		}
		seen[stem] = struct{}{}
		out = append(out, stem)
	}
	sort.Strings(out)
	return out, nil
}

func find(dir string, patterns []string, name string) (string, error) {
	files, err := list(dir, patterns)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if strings.Contains(filepath.Base(f), name) {
			return f, nil
		}
	}
	return "", ErrNotFound
}

func list(dir string, patterns []string) ([]string, error) {
	exists, err := fsutil.Exists(dir)
	if err != nil || !exists {
		return nil, err
	}
	return fsutil.FindFiles(dir, patterns...)
}
