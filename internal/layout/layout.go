// Package layout builds compiler input and output paths from a job.
package layout

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/specialistvlad/shdc/internal/variant"
)

// Layout holds the path conventions of one build. Paths are plain string
// concatenations, so directories normally end with a separator.
type Layout struct {
	SourceDir      string `yaml:"source_dir"`
	DestDir        string `yaml:"dest_dir"`
	LanguageSuffix string `yaml:"language_suffix,omitempty"`
	Prefix         string `yaml:"prefix,omitempty"`
	ArtifactSuffix string `yaml:"artifact_suffix,omitempty"`
}

// InputPath returns <SourceDir><source><stage suffix><LanguageSuffix>.
func (l Layout) InputPath(job variant.Job) string {
	return l.SourceDir + job.Source + job.Stage.Suffix() + l.LanguageSuffix
}

// OutputPath returns <DestDir><Prefix><output><stage suffix><ArtifactSuffix>.
func (l Layout) OutputPath(job variant.Job) string {
	return l.DestDir + l.Prefix + job.Output + job.Stage.Suffix() + l.ArtifactSuffix
}

// Expand resolves a leading ~ in both directories.
func (l Layout) Expand() (Layout, error) {
	src, err := expandDir(l.SourceDir)
	if err != nil {
		return l, fmt.Errorf("failed to expand source dir %q: %w", l.SourceDir, err)
	}
	dst, err := expandDir(l.DestDir)
	if err != nil {
		return l, fmt.Errorf("failed to expand dest dir %q: %w", l.DestDir, err)
	}
	l.SourceDir, l.DestDir = src, dst
	return l, nil
}

// expandDir keeps the trailing separator that homedir.Expand cleans away.
func expandDir(dir string) (string, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", err
	}
	if expanded != dir && strings.HasSuffix(dir, "/") && !strings.HasSuffix(expanded, string(os.PathSeparator)) {
		expanded += string(os.PathSeparator)
	}
	return expanded, nil
}
