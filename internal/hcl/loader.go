package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/shdc/internal/config"
	"github.com/specialistvlad/shdc/internal/ctxlog"
	"github.com/specialistvlad/shdc/internal/fsutil"
	"github.com/specialistvlad/shdc/internal/variant"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	catalog *variant.Catalog
}

// NewLoader creates a loader that resolves flag names against cat.
func NewLoader(cat *variant.Catalog) *Loader {
	return &Loader{catalog: cat}
}

// Load parses every given file, or every .hcl file under a given directory in
// lexical order, and merges them into one model. Later compiler, layout and
// params blocks replace earlier ones; shader blocks accumulate.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no .hcl files found in %v", config.ErrInvalidManifest, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{Params: l.catalog.Params()}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		l.translateSettings(&root, model)
		for _, s := range root.Shaders {
			stage, entry, diags := l.translateShader(s)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid shader block in %s: %w", file, diags)
			}
			model.Add(stage, entry)
		}
		logger.Debug("HCL file merged.", "file", file, "shaders", len(root.Shaders))
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "vertex", len(model.Vertex), "fragment", len(model.Fragment))
	return model, nil
}

// findAllHCLFiles expands the given paths into a de-duplicated list of .hcl
// files. Files inside a directory come in lexical order so merge order is stable.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing manifest path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return allFiles, nil
}
