package theme

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/property"
)

// themeFile mirrors the YAML document layout
type themeFile struct {
	Name    string            `yaml:"name"`
	Palette map[string]string `yaml:"palette"`
	Rules   []ruleFile        `yaml:"rules"`
}

type ruleFile struct {
	Match string         `yaml:"match"`
	Set   map[string]any `yaml:"set"`
}

// Load reads a theme document. Palette entries are plain colors; rule
// values may reference them as $name. Every property name is checked
// against the key registry and every value coerced up front, so a
// loaded theme applies without surprises
func Load(r io.Reader) (*Theme, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var tf themeFile
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("theme: decode: %w", err)
	}

	palette := make(map[string]core.Brush, len(tf.Palette))
	for name, val := range tf.Palette {
		b, err := core.ParseBrush(val)
		if err != nil {
			return nil, fmt.Errorf("theme %q: palette %q: %w", tf.Name, name, err)
		}
		palette[name] = b
	}

	th := &Theme{Name: tf.Name, Palette: palette}
	for i, rf := range tf.Rules {
		sel, err := ParseSelector(rf.Match)
		if err != nil {
			return nil, fmt.Errorf("theme %q: rule %d: %w", tf.Name, i, err)
		}
		props := make(map[string]any, len(rf.Set))
		for name, raw := range rf.Set {
			if _, ok := property.KeyByName(name); !ok {
				return nil, fmt.Errorf("theme %q: rule %d: unknown property %q", tf.Name, i, name)
			}
			v, err := coerce(name, raw, palette)
			if err != nil {
				return nil, fmt.Errorf("theme %q: rule %d: %w", tf.Name, i, err)
			}
			props[name] = v
		}
		th.Rules = append(th.Rules, Rule{Selector: sel, Props: props})
	}
	return th, nil
}

// LoadFile reads a theme document from disk
func LoadFile(path string) (*Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// ParseSelector parses the match syntax: "*" or "" match anything,
// "button" matches a type, ".warn" matches a class, "button.warn"
// matches both
func ParseSelector(match string) (Selector, error) {
	match = strings.TrimSpace(match)
	if match == "" || match == "*" {
		return Selector{}, nil
	}
	typ, class, found := strings.Cut(match, ".")
	sel := Selector{Type: typ, Class: class}
	if found && class == "" {
		return Selector{}, fmt.Errorf("selector %q: empty class", match)
	}
	if strings.ContainsAny(typ, " .") || strings.Contains(class, ".") {
		return Selector{}, fmt.Errorf("selector %q: expected type, .class or type.class", match)
	}
	return sel, nil
}
