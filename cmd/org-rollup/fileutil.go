package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iota-uz/org-rollup/modules/org/presentation/viewmodels"
	"github.com/iota-uz/org-rollup/modules/org/presentation/writers"
)

func requireDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return withCode(exitUsage, fmt.Errorf("output folder is required"))
	}
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return withCode(exitUsage, fmt.Errorf("output folder %s does not exist", path))
		}
		return withCode(exitIO, fmt.Errorf("stat %s: %w", path, err))
	}
	if !fi.IsDir() {
		return withCode(exitUsage, fmt.Errorf("output folder %s is not a directory", path))
	}
	return nil
}

// writeReportFile renders tree into a temp file next to path and renames it
// into place, so a failed run never leaves a truncated report behind.
func writeReportFile(path string, w writers.Writer, tree *viewmodels.OrgTree) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".org-rollup-*")
	if err != nil {
		return withCode(exitIO, fmt.Errorf("create temp file in %s: %w", dir, err))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := w.Write(tmp, tree); err != nil {
		_ = tmp.Close()
		return withCode(exitIO, fmt.Errorf("write %s report: %w", w.Format(), err))
	}
	if err := tmp.Close(); err != nil {
		return withCode(exitIO, fmt.Errorf("close %s: %w", tmpName, err))
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return withCode(exitIO, fmt.Errorf("chmod %s: %w", tmpName, err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		return withCode(exitIO, fmt.Errorf("rename to %s: %w", path, err))
	}
	return nil
}

// outputName swaps the extension of the default report name to match format.
func outputName(name, format string) string {
	ext := map[string]string{"text": ".txt", "json": ".json", "yaml": ".yaml", "xlsx": ".xlsx"}[format]
	if ext == "" || filepath.Ext(name) == ext {
		return name
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
