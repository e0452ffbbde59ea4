// Package openscad shells out to the OpenSCAD binary to turn .scad sources
// into STL meshes the slicer can consume, and resolves the use/include
// closure of a source file so changes to any part of a model trigger a
// reload.
package openscad

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	useRegex     = regexp.MustCompile(`^\s*use\s*<([^>]+)>`)
	includeRegex = regexp.MustCompile(`^\s*include\s*<([^>]+)>`)
)

// Render converts a .scad file to STL by invoking the openscad binary.
func Render(scadFile, outputFile string) error {
	if _, err := exec.LookPath("openscad"); err != nil {
		return fmt.Errorf("openscad not found in PATH, install it from https://openscad.org/")
	}

	abs, err := filepath.Abs(scadFile)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", scadFile, err)
	}

	cmd := exec.Command("openscad", "-o", outputFile, abs)
	cmd.Dir = filepath.Dir(abs)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("failed to render %s: %v: %s", scadFile, err, strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("failed to render %s: %w", scadFile, err)
	}
	return nil
}

// Dependencies returns the transitive use/include closure of a .scad file,
// starting with the file itself. Paths are absolute.
func Dependencies(scadFile string) ([]string, error) {
	abs, err := filepath.Abs(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", scadFile, err)
	}

	visited := make(map[string]bool)
	var deps []string
	if err := collectDependencies(abs, visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func collectDependencies(scadFile string, visited map[string]bool, deps *[]string) error {
	if visited[scadFile] {
		return nil
	}
	visited[scadFile] = true
	*deps = append(*deps, scadFile)

	refs, err := parseReferences(scadFile)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if err := collectDependencies(ref, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

// parseReferences scans one file for use and include statements and
// resolves them relative to the file's directory.
func parseReferences(scadFile string) ([]string, error) {
	f, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer f.Close()

	dir := filepath.Dir(scadFile)
	var refs []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := useRegex.FindStringSubmatch(line); len(m) > 1 {
			refs = append(refs, filepath.Clean(filepath.Join(dir, m[1])))
		}
		if m := includeRegex.FindStringSubmatch(line); len(m) > 1 {
			refs = append(refs, filepath.Clean(filepath.Join(dir, m[1])))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", scadFile, err)
	}
	return refs, nil
}
