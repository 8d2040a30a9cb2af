package config

import (
	"arch-provision/internal/logger"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a provisioning file and resolves its interpolation references.
// Files ending in .yaml or .yml are read as YAML; anything else as INI.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var sections []Section
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		logger.Debug("[DEBUG] Parsing %s as YAML\n", path)
		sections, err = parseYAML(data)
	default:
		logger.Debug("[DEBUG] Parsing %s as INI\n", path)
		sections, err = parseINI(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	file, err := resolve(path, sections)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Loaded %s with %d sections\n", path, len(file.Sections))
	return file, nil
}

// resolve expands references in every value and drops the DEFAULT section.
func resolve(path string, sections []Section) (*File, error) {
	raw := make(rawSections, len(sections))
	for _, s := range sections {
		values := raw[s.Name]
		if values == nil {
			values = make(map[string]string, len(s.Entries))
			raw[s.Name] = values
		}
		for _, e := range s.Entries {
			values[strings.ToLower(e.Key)] = e.Value
		}
	}
	in := interpolator{raw: raw}

	file := &File{Path: path}
	for _, s := range sections {
		if s.Name == DefaultSection {
			continue
		}
		out := Section{Name: s.Name, Entries: make([]Entry, 0, len(s.Entries))}
		for _, e := range s.Entries {
			value, err := in.expand(s.Name, e.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: [%s] %s: %w", path, s.Name, e.Key, err)
			}
			out.Entries = append(out.Entries, Entry{Key: e.Key, Value: value})
		}
		file.Sections = append(file.Sections, out)
	}
	return file, nil
}
