// Package configuration reads json5 config files with optional local
// overlays. For a file "scrape.json5" a sibling "scrape.local.json5"
// is merged on top when present, so machine-specific settings stay out
// of version control.
package configuration

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// localPath derives the overlay path: "dir/name.local.ext".
func localPath(name string) string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s.local%s", stem, ext))
}

func decode[T any](path string, out *T) (bool, error) {
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	err = json5.Unmarshal(buf, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// Read loads the named config file and merges the local overlay on top
// of it, overlay values winning. Returns os.ErrNotExist when neither
// file exists.
func Read[T any](name string) (T, error) {
	var config T

	found, err := decode(name, &config)
	if err != nil {
		return config, err
	}

	overlay := localPath(name)
	var local T
	foundLocal, err := decode(overlay, &local)
	if err != nil {
		return config, err
	}
	if foundLocal {
		err = mergo.Merge(&config, local, mergo.WithOverride)
		if err != nil {
			return config, err
		}
		slog.Info("merged local config overlay", "path", overlay)
	}

	if !found && !foundLocal {
		return config, os.ErrNotExist
	}
	return config, nil
}

// ReadRecursively walks from the working directory up to the
// filesystem root looking for the named config file. Lets tests and
// binaries run from any subdirectory of the checkout.
func ReadRecursively[T any](name string) (T, error) {
	var zero T

	dir, err := os.Getwd()
	if err != nil {
		return zero, err
	}

	for {
		config, err := Read[T](filepath.Join(dir, name))
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return zero, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return zero, os.ErrNotExist
		}
		dir = parent
	}
}
