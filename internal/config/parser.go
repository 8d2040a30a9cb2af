package config

import (
	"fmt"
	"gopkg.in/ini.v1"  // INI reader
	"gopkg.in/yaml.v3" // YAML reader; the node API keeps key order
	"strings"
)

// iniOptions mirror the conventions of Python-style configuration files:
// case-insensitive keys, no inline comments ('#' is common in shell
// scripts), indented continuation lines, and quotes kept verbatim.
var iniOptions = ini.LoadOptions{
	InsensitiveKeys:            true,
	IgnoreInlineComment:        true,
	AllowPythonMultilineValues: true,
	PreserveSurroundedQuote:    true,
}

// parseINI returns the sections of an INI document in file order,
// including DEFAULT when it has entries.
func parseINI(data []byte) ([]Section, error) {
	cfg, err := ini.LoadSources(iniOptions, data)
	if err != nil {
		return nil, err
	}

	var sections []Section
	for _, sec := range cfg.Sections() {
		keys := sec.Keys()
		if sec.Name() == ini.DefaultSection && len(keys) == 0 {
			continue
		}
		s := Section{Name: sec.Name(), Entries: make([]Entry, 0, len(keys))}
		for _, k := range keys {
			// Value is the raw text; interpolation happens in resolve.
			s.Entries = append(s.Entries, Entry{Key: k.Name(), Value: k.Value()})
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// parseYAML reads a mapping of section name to a mapping of key to value.
// A value is a scalar, or a list of scalars joined with single spaces
// (handy for package lists).
//
//	pacman:
//	  base: base-devel git
//	  editors: [neovim, helix]
func parseYAML(data []byte) ([]Section, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping of sections", root.Line)
	}

	var sections []Section
	for i := 0; i+1 < len(root.Content); i += 2 {
		name, body := root.Content[i], root.Content[i+1]
		s := Section{Name: name.Value}

		switch {
		case body.Kind == yaml.ScalarNode && body.Tag == "!!null":
			// empty section
		case body.Kind == yaml.MappingNode:
			for j := 0; j+1 < len(body.Content); j += 2 {
				key, val := body.Content[j], body.Content[j+1]
				value, err := yamlValue(val)
				if err != nil {
					return nil, fmt.Errorf("section %s, key %s: %w", name.Value, key.Value, err)
				}
				s.Entries = append(s.Entries, Entry{Key: key.Value, Value: value})
			}
		default:
			return nil, fmt.Errorf("line %d: section %s must be a mapping", body.Line, name.Value)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func yamlValue(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "", nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return "", fmt.Errorf("line %d: list items must be scalars", item.Line)
			}
			items = append(items, item.Value)
		}
		return strings.Join(items, " "), nil
	}
	return "", fmt.Errorf("line %d: value must be a scalar or a list of scalars", n.Line)
}
