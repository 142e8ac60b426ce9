// Copyright 2026 The benchagg Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mir

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/divsynth/benchagg/metricfmt"
)

// ExtractDir writes a gadgets file into every version directory of
// the program directory dir. Every other regular file in a version
// directory is read as a function dump, except metric files (names
// starting with "cost" or "gadget"). Existing gadgets files are
// overwritten.
func ExtractDir(dir string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, ent := range ents {
		vdir := filepath.Join(dir, ent.Name())
		if fi, err := os.Stat(vdir); err != nil || !fi.IsDir() {
			continue
		}
		n, err := extractVersion(vdir)
		if err != nil {
			return fmt.Errorf("version %s: %w", ent.Name(), err)
		}
		logger.Info("wrote gadgets", slog.String("dir", vdir), slog.Int("gadgets", n))
	}
	return nil
}

func extractVersion(vdir string) (int, error) {
	ents, err := os.ReadDir(vdir)
	if err != nil {
		return 0, err
	}
	var paths []string
	for _, ent := range ents {
		name := ent.Name()
		if strings.HasPrefix(name, "cost") || strings.HasPrefix(name, "gadget") {
			continue
		}
		path := filepath.Join(vdir, name)
		if fi, err := os.Stat(path); err != nil || !fi.Mode().IsRegular() {
			continue
		}
		paths = append(paths, path)
	}

	prog, err := ReadProgram(paths)
	if err != nil {
		return 0, err
	}
	gadgets := prog.Gadgets()
	data, err := json.Marshal(gadgets)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(vdir, metricfmt.GadgetsFile), data, 0o644); err != nil {
		return 0, err
	}
	return len(gadgets), nil
}
