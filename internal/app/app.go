package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/shdc/internal/config"
	"github.com/specialistvlad/shdc/internal/ctxlog"
	"github.com/specialistvlad/shdc/internal/fsutil"
	"github.com/specialistvlad/shdc/internal/hcl"
	"github.com/specialistvlad/shdc/internal/process"
	"github.com/specialistvlad/shdc/internal/toml"
	"github.com/specialistvlad/shdc/internal/variant"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	diagW    io.Writer
	logger   *slog.Logger
	config   *Config
	model    *config.Model
	resolver *variant.Resolver
	jobs     []variant.Job
	invoker  process.Invoker
}

// Option customizes an App.
type Option func(*options)

type options struct {
	logW    io.Writer
	diagW   io.Writer
	catalog *variant.Catalog
	invoker process.Invoker
}

// WithLogOutput sends log records to w instead of the main output.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logW = w }
}

// WithDiagnostics sends compiler output to w.
func WithDiagnostics(w io.Writer) Option {
	return func(o *options) { o.diagW = w }
}

// WithCatalog replaces the reference feature catalog.
func WithCatalog(cat *variant.Catalog) Option {
	return func(o *options) { o.catalog = cat }
}

// WithInvoker replaces the process runner used for real builds.
func WithInvoker(inv process.Invoker) Option {
	return func(o *options) { o.invoker = inv }
}

// New loads the build description and resolves every job. Any error it
// returns is a configuration error; no compiler has run yet.
func New(outW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	o := options{logW: outW, catalog: variant.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, o.logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loadModel(ctx, cfg.ManifestPath, o.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Compiler != "" {
		model.Compiler.Command = cfg.Compiler
		if err := model.Validate(); err != nil {
			return nil, fmt.Errorf("invalid -compiler override: %w", err)
		}
	}
	if model.Layout, err = model.Layout.Expand(); err != nil {
		return nil, err
	}
	logger.Debug("Build model loaded.", "vertex", len(model.Vertex), "fragment", len(model.Fragment))

	resolver := variant.NewResolver(o.catalog, model.Params)
	jobs, err := model.Jobs(resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve jobs: %w", err)
	}
	logger.Debug("Jobs resolved.", "count", len(jobs), "param_defines", resolver.ParamDefines())

	inv := o.invoker
	if inv == nil {
		inv = &process.Exec{Env: model.Compiler.Env}
	}

	return &App{
		outW:     outW,
		diagW:    o.diagW,
		logger:   logger,
		config:   cfg,
		model:    model,
		resolver: resolver,
		jobs:     jobs,
		invoker:  inv,
	}, nil
}

// Jobs returns the resolved jobs, vertex stage first.
func (a *App) Jobs() []variant.Job {
	return a.jobs
}

// loadModel reads the manifest at path with the loader matching its format,
// or returns the built-in batch when path is empty.
func loadModel(ctx context.Context, path string, cat *variant.Catalog) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Info("No manifest given, using the built-in batch.")
		return config.Default(cat), nil
	}

	ext, err := fsutil.DetectExtension(path, ".hcl", ".toml")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidManifest, err)
	}
	logger.Debug("Manifest format detected.", "path", path, "format", ext)

	var loader config.Loader
	paths := []string{path}
	switch ext {
	case ".hcl":
		loader = hcl.NewLoader(cat)
	case ".toml":
		loader = toml.NewLoader(cat)
		if paths, err = expandDir(path, ext); err != nil {
			return nil, err
		}
	}
	return loader.Load(ctx, paths...)
}

// expandDir lists the files with ext under path, or path itself for a file.
func expandDir(path, ext string) ([]string, error) {
	files, err := fsutil.FindFilesByExtension(path, ext)
	if err != nil {
		return nil, fmt.Errorf("error accessing manifest path %s: %w", path, err)
	}
	return files, nil
}
