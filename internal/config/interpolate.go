package config

import (
	"fmt"
	"strings"
)

// maxDepth bounds nested references so cycles fail instead of looping.
const maxDepth = 10

// rawSections maps section name to key to the uninterpolated value.
type rawSections map[string]map[string]string

// interpolator expands ${key} and ${section:key} references. $$ is a
// literal dollar; any other $ is kept as written.
type interpolator struct {
	raw rawSections
}

// expand returns value with every reference resolved relative to section.
func (in interpolator) expand(section, value string) (string, error) {
	return in.expandDepth(section, value, 0)
}

func (in interpolator) expandDepth(section, value string, depth int) (string, error) {
	if !strings.Contains(value, "$") {
		return value, nil
	}
	if depth >= maxDepth {
		return "", fmt.Errorf("interpolation too deep in %q", value)
	}

	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '$' || i+1 >= len(value) {
			b.WriteByte(c)
			continue
		}

		switch value[i+1] {
		case '$':
			b.WriteByte('$')
			i++
		case '{':
			end := strings.IndexByte(value[i+2:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated reference in %q", value)
			}
			ref := value[i+2 : i+2+end]
			resolved, err := in.resolve(section, ref, depth)
			if err != nil {
				return "", err
			}
			b.WriteString(resolved)
			i += 2 + end
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// resolve looks up ref ("key" or "section:key") and expands it in turn.
func (in interpolator) resolve(section, ref string, depth int) (string, error) {
	target, key := section, ref
	if s, k, ok := strings.Cut(ref, ":"); ok {
		target, key = s, k
	}
	key = strings.ToLower(key)

	value, ok := in.lookup(target, key)
	if !ok {
		return "", fmt.Errorf("bad reference ${%s}: %s has no key %q", ref, target, key)
	}
	return in.expandDepth(target, value, depth+1)
}

// lookup finds key in section, falling back to the DEFAULT section.
func (in interpolator) lookup(section, key string) (string, bool) {
	if v, ok := in.raw[section][key]; ok {
		return v, true
	}
	v, ok := in.raw[DefaultSection][key]
	return v, ok
}
