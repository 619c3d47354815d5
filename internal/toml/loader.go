// Package toml provides a TOML implementation of the config.Loader interface.
package toml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/specialistvlad/shdc/internal/config"
	"github.com/specialistvlad/shdc/internal/ctxlog"
	"github.com/specialistvlad/shdc/internal/layout"
	"github.com/specialistvlad/shdc/internal/variant"
)

type document struct {
	Compiler *compilerTable `toml:"compiler"`
	Layout   *layoutTable   `toml:"layout"`
	Params   *paramsTable   `toml:"params"`
	Vertex   []shaderTable  `toml:"vertex"`
	Fragment []shaderTable  `toml:"fragment"`
}

type compilerTable struct {
	Command  string            `toml:"command"`
	Validate string            `toml:"validate"`
	Env      map[string]string `toml:"env"`
}

type layoutTable struct {
	SourceDir      string `toml:"source_dir"`
	DestDir        string `toml:"dest_dir"`
	LanguageSuffix string `toml:"language_suffix"`
	Prefix         string `toml:"prefix"`
	ArtifactSuffix string `toml:"artifact_suffix"`
}

type paramsTable struct {
	Viewports *int `toml:"viewports"`
	Instances *int `toml:"instances"`
	Joints    *int `toml:"joints"`
	Lights    *int `toml:"lights"`
}

type shaderTable struct {
	Source string   `toml:"source"`
	Flags  []string `toml:"flags"`
	Mask   uint32   `toml:"mask"`
	Output string   `toml:"output"`
}

// Loader reads TOML manifests.
type Loader struct {
	catalog *variant.Catalog
}

// NewLoader creates a loader that resolves flag names against cat.
func NewLoader(cat *variant.Catalog) *Loader {
	return &Loader{catalog: cat}
}

// Load decodes each file in order into one model. Later tables replace earlier
// ones; shader arrays accumulate.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML loader started.", "path_count", len(paths))

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no manifest files given", config.ErrInvalidManifest)
	}

	model := &config.Model{Params: l.catalog.Params()}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading manifest %s: %w", path, err)
		}

		var doc document
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, describe(err))
		}
		if err := l.merge(&doc, model); err != nil {
			return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
		}
		logger.Debug("TOML file merged.", "file", path, "vertex", len(doc.Vertex), "fragment", len(doc.Fragment))
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

func (l *Loader) merge(doc *document, model *config.Model) error {
	if c := doc.Compiler; c != nil {
		model.Compiler = config.Compiler{Command: c.Command, ValidateFlag: c.Validate, Env: c.Env}
	}
	if lt := doc.Layout; lt != nil {
		model.Layout = layout.Layout(*lt)
	}
	if p := doc.Params; p != nil {
		set := func(src *int, dst *int) {
			if src != nil {
				*dst = *src
			}
		}
		set(p.Viewports, &model.Params.Viewports)
		set(p.Instances, &model.Params.Instances)
		set(p.Joints, &model.Params.Joints)
		set(p.Lights, &model.Params.Lights)
	}

	for _, stage := range variant.Stages {
		tables := doc.Vertex
		if stage == variant.Fragment {
			tables = doc.Fragment
		}
		for i, s := range tables {
			mask, err := l.catalog.MaskOf(s.Flags...)
			if err != nil {
				return fmt.Errorf("%s entry %d (%s): %w", stage, i, s.Source, err)
			}
			mask |= variant.Mask(s.Mask)
			model.Add(stage, variant.Entry{
				Source: s.Source,
				Mask:   mask,
				Output: expandOutput(s.Output, stage, s.Source, mask),
			})
		}
	}
	return nil
}

// expandOutput replaces the {variant}, {source} and {stage} placeholders.
func expandOutput(tmpl string, stage variant.Stage, source string, mask variant.Mask) string {
	if tmpl == "" {
		return ""
	}
	return strings.NewReplacer(
		"{variant}", mask.Name(),
		"{source}", source,
		"{stage}", stage.String(),
	).Replace(tmpl)
}

// describe adds the line and column of a TOML syntax error to its message.
func describe(err error) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return fmt.Errorf("line %d, column %d: %w", row, col, err)
	}
	return err
}
