package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const envCamkitOutDir = "CAMKIT_OUT_DIR"

// stdoutPath selects standard output in place of a file.
const stdoutPath = "-"

// resolveOutput picks where a converted file goes. An explicit -o wins;
// otherwise the input's base name gets ext and lands next to the input, or
// in $CAMKIT_OUT_DIR when set. The bool reports whether the path was
// defaulted.
func resolveOutput(inPath, outFlag, ext string) (string, bool, error) {
	outFlag = strings.TrimSpace(outFlag)
	if outFlag == stdoutPath {
		return stdoutPath, false, nil
	}
	if outFlag != "" {
		outPath := filepath.Clean(outFlag)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return "", false, err
		}
		return outPath, false, nil
	}

	base := filepath.Base(filepath.Clean(inPath))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", true, fmt.Errorf("invalid input path: %q", inPath)
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	outDir := strings.TrimSpace(os.Getenv(envCamkitOutDir))
	if outDir == "" {
		outDir = filepath.Dir(filepath.Clean(inPath))
	}

	outPath := filepath.Join(outDir, base+ext)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", true, err
	}
	return outPath, true, nil
}

// expandInputs returns path itself, or the matching files inside it when
// path is a directory.
func expandInputs(path string, exts ...string) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return []string{path}, nil
	}
	files, err := discoverFiles(path, exts...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", strings.Join(exts, "/"), path)
	}
	return files, nil
}

// discoverFiles lists regular files in dir whose extension matches one of
// exts (case-insensitive), sorted by name.
func discoverFiles(dir string, exts ...string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("input directory is empty")
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		for _, want := range exts {
			if ext == want {
				files = append(files, filepath.Join(dir, name))
				break
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func containerExts() []string {
	return []string{".canm", ".camn", ".bin"}
}
