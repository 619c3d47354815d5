// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns their full paths in lexical order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// DetectExtension reports which one of extensions the manifest at path uses.
// A file is judged by its own name; a directory must contain files of exactly
// one of the extensions.
func DetectExtension(path string, extensions ...string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		for _, ext := range extensions {
			if strings.HasSuffix(path, ext) {
				return ext, nil
			}
		}
		return "", fmt.Errorf("%s: unsupported file type, expected one of %v", path, extensions)
	}

	var found []string
	for _, ext := range extensions {
		files, err := FindFilesByExtension(path, ext)
		if err != nil {
			return "", err
		}
		if len(files) > 0 {
			found = append(found, ext)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%s: no files with extensions %v", path, extensions)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%s: mixes %v files, keep one format per directory", path, found)
	}
}
