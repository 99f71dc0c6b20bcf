// Package loader reads raw sets from disk: either one JSON/YAML document
// holding an explicit collection, or a directory of files walked with
// include/exclude glob patterns, one file per set.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"silkmoth/internal/domain"
)

// LoadSetsFile parses a JSON or YAML document holding a collection of sets,
// each a list of elements, selecting the decoder by file extension.
func LoadSetsFile(path string) ([]domain.RawSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sets file: %w", err)
	}

	var raw [][]interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml sets file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse json sets file: %w", err)
		}
	}

	sets := make([]domain.RawSet, len(raw))
	for i, elems := range raw {
		set := make(domain.RawSet, len(elems))
		for j, e := range elems {
			set[j] = e
		}
		sets[i] = set
	}
	return sets, nil
}

// LoadSetsDir walks root with the given include/exclude glob patterns
// (doublestar syntax, matched against paths relative to root) and turns
// each matched file into one RawSet, one element per non-empty line. Files
// are visited in sorted relative-path order so results are stable across
// runs. Returns the sets alongside the relative path each one was loaded
// from, for labelling results back to the caller.
func LoadSetsDir(root string, includes, excludes []string) ([]domain.RawSet, []string, error) {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, err
	}

	var relPaths []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if rel != "." && matchesAny(excludes, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(includes, rel) && !matchesAny(excludes, rel) {
			relPaths = append(relPaths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk sets dir: %w", err)
	}
	sort.Strings(relPaths)

	sets := make([]domain.RawSet, 0, len(relPaths))
	labels := make([]string, 0, len(relPaths))
	for _, rel := range relPaths {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", rel, err)
		}
		set := linesToSet(string(data))
		sets = append(sets, set)
		labels = append(labels, rel)
	}
	return sets, labels, nil
}

func linesToSet(content string) domain.RawSet {
	lines := strings.Split(content, "\n")
	set := make(domain.RawSet, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		set = append(set, line)
	}
	return set
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
