package linkfactory

import (
	"strings"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
)

// segment is either literal text or a placeholder name.
type segment struct {
	text        string
	placeholder bool
}

// Template is a parsed URL pattern. Placeholders are written {name};
// {{ and }} produce literal braces.
type Template struct {
	pattern  string
	segments []segment
}

// ParseTemplate parses a pattern, rejecting unbalanced braces and empty placeholders.
func ParseTemplate(pattern string) (*Template, error) {
	t := &Template{pattern: pattern}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return nil, apperr.Validation("pattern %q has an unclosed '{' at offset %d", pattern, i)
			}
			name := pattern[i+1 : i+1+end]
			if name == "" || strings.ContainsRune(name, '{') {
				return nil, apperr.Validation("pattern %q has an invalid placeholder at offset %d", pattern, i)
			}
			flush()
			t.segments = append(t.segments, segment{text: name, placeholder: true})
			i += end + 1
		case '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, apperr.Validation("pattern %q has a stray '}' at offset %d", pattern, i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return t, nil
}

// Placeholders returns the distinct placeholder names in order of first use.
func (t *Template) Placeholders() []string {
	var names []string
	seen := make(map[string]bool)
	for _, s := range t.segments {
		if s.placeholder && !seen[s.text] {
			seen[s.text] = true
			names = append(names, s.text)
		}
	}
	return names
}

// Render substitutes values into the template. A placeholder missing from
// values is a validation error naming it.
func (t *Template) Render(values map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(t.pattern))
	for _, s := range t.segments {
		if !s.placeholder {
			b.WriteString(s.text)
			continue
		}
		v, ok := values[s.text]
		if !ok {
			return "", apperr.Validation("variable %q is not defined by the preset or the overrides", s.text)
		}
		b.WriteString(v)
	}
	return b.String(), nil
}
