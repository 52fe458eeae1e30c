package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/specialistvlad/spectrokit/internal/ctxlog"
	"github.com/specialistvlad/spectrokit/internal/decoder"
	"github.com/specialistvlad/spectrokit/internal/fileio"
	"github.com/specialistvlad/spectrokit/internal/item"
	"github.com/specialistvlad/spectrokit/internal/model"
	"github.com/specialistvlad/spectrokit/internal/parameter"
	"github.com/specialistvlad/spectrokit/internal/registry"
	"github.com/specialistvlad/spectrokit/internal/validate"
	"github.com/specialistvlad/spectrokit/modules/kinetic"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	decoder  *decoder.Decoder
	formats  *fileio.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Logs are written to outW. Without modules the core modules are
// registered.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	if err := reg.Load(modules...); err != nil {
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "categories", reg.Categories())

	var opts []decoder.Option
	if cfg.IgnoreUnknown {
		opts = append(opts, decoder.WithIgnoreUnknown())
	}
	categories := make([]string, 0, len(cfg.DefaultTypes))
	for category := range cfg.DefaultTypes {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		opts = append(opts, decoder.WithDefaultType(category, cfg.DefaultTypes[category]))
	}

	return &App{
		logger:   logger,
		config:   cfg,
		registry: reg,
		decoder:  decoder.New(reg, kinetic.Spec(), opts...),
		formats:  fileio.Builtin(),
	}, nil
}

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Config returns the configuration the app was built with.
func (a *App) Config() *Config {
	return a.config
}

// Formats returns the registered file formats.
func (a *App) Formats() []string {
	return a.formats.Formats()
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// LoadModel reads and decodes the model specification at path.
func (a *App) LoadModel(ctx context.Context, path string) (*model.Model, error) {
	ctx, logger := ctxlog.With(a.context(ctx), "model", path)
	plugin, err := a.formats.ForFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := plugin.LoadModel(ctx, path)
	if err != nil {
		return nil, err
	}
	m, err := a.decoder.Decode(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}
	logger.Info("Model loaded.")
	return m, nil
}

// SaveModel encodes v and writes it to path.
func (a *App) SaveModel(ctx context.Context, v model.View, path string) error {
	ctx, logger := ctxlog.With(a.context(ctx), "model", path)
	plugin, err := a.formats.ForFile(path)
	if err != nil {
		return err
	}
	tree, err := decoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := plugin.SaveModel(ctx, tree, path); err != nil {
		return err
	}
	logger.Info("Model saved.")
	return nil
}

// LoadParameters reads the parameter set at path.
func (a *App) LoadParameters(ctx context.Context, path string) (*parameter.Group, error) {
	ctx, logger := ctxlog.With(a.context(ctx), "parameters", path)
	plugin, err := a.formats.ForFile(path)
	if err != nil {
		return nil, err
	}
	g, err := plugin.LoadParameters(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Info("Parameters loaded.", "count", len(g.All()))
	return g, nil
}

// SaveParameters writes g to path.
func (a *App) SaveParameters(ctx context.Context, g *parameter.Group, path string) error {
	ctx, logger := ctxlog.With(a.context(ctx), "parameters", path)
	plugin, err := a.formats.ForFile(path)
	if err != nil {
		return err
	}
	if err := plugin.SaveParameters(ctx, g, path); err != nil {
		return err
	}
	logger.Info("Parameters saved.", "count", len(g.All()))
	return nil
}

// Convert reads the model at in and writes it to out, which may use a
// different format.
func (a *App) Convert(ctx context.Context, in, out string) error {
	m, err := a.LoadModel(ctx, in)
	if err != nil {
		return err
	}
	return a.SaveModel(ctx, m, out)
}

// Validate loads the model, and the parameters when paramsPath is set, and
// checks them. Load failures are returned as errors; validation problems are
// reported in the result.
func (a *App) Validate(ctx context.Context, modelPath, paramsPath string) (*validate.Result, error) {
	m, err := a.LoadModel(ctx, modelPath)
	if err != nil {
		return nil, err
	}
	var params item.Parameters
	if paramsPath != "" {
		g, err := a.LoadParameters(ctx, paramsPath)
		if err != nil {
			return nil, err
		}
		params = g
	}
	result := validate.Check(m, params)
	a.logger.Debug("Validation finished.",
		"model_errors", len(result.ModelErrors),
		"parameter_errors", len(result.ParameterErrors))
	return result, nil
}
