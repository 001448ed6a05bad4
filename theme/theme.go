// Package theme styles widgets by matching selector rules against
// their type name and style classes, producing property values that
// are written through the erased property path
//
// Resolution is a pure function of the widget's tags and the theme;
// applying the result is the only part that touches the store
package theme

import (
	"errors"
	"fmt"
	"sort"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/widget"
)

// Selector matches widgets by type name, style class, or both. Empty
// fields match anything
type Selector struct {
	Type  string
	Class string
}

// specificity orders rules: any < type < class < type+class. Equal
// specificity resolves by document order, later rules winning
func (s Selector) specificity() int {
	spec := 0
	if s.Type != "" {
		spec++
	}
	if s.Class != "" {
		spec += 2
	}
	return spec
}

// Matches reports whether the selector applies to a widget with the
// given type name and classes
func (s Selector) Matches(typeName string, classes []string) bool {
	if s.Type != "" && s.Type != typeName {
		return false
	}
	if s.Class != "" {
		for _, c := range classes {
			if c == s.Class {
				return true
			}
		}
		return false
	}
	return true
}

// Rule binds a selector to the property values it sets. Props map
// registered property key names to already-coerced Go values
type Rule struct {
	Selector Selector
	Props    map[string]any
}

// Theme is an ordered rule set plus the palette it was built from
type Theme struct {
	Name    string
	Palette map[string]core.Brush
	Rules   []Rule
}

// Resolve computes the styled property values for a widget. Matching
// rules apply in ascending specificity, document order breaking ties,
// so the most specific rule wins each property
func (t *Theme) Resolve(typeName string, classes []string) map[string]any {
	matched := make([]int, 0, len(t.Rules))
	for i, r := range t.Rules {
		if r.Selector.Matches(typeName, classes) {
			matched = append(matched, i)
		}
	}
	sort.SliceStable(matched, func(a, b int) bool {
		return t.Rules[matched[a]].Selector.specificity() < t.Rules[matched[b]].Selector.specificity()
	})

	resolved := make(map[string]any)
	for _, i := range matched {
		for name, v := range t.Rules[i].Props {
			resolved[name] = v
		}
	}
	return resolved
}

// Apply styles one entity: it reads the widget's tags, resolves the
// theme and writes each value through the erased property path.
// Unknown key names and type mismatches are joined into the returned
// error; surviving properties are still applied
func (t *Theme) Apply(s *property.Store, e core.Entity) error {
	typeName := property.GetOr(s, e, widget.KeyTypeName, "")
	classes := property.GetOr(s, e, widget.KeyClasses, nil)

	resolved := t.Resolve(typeName, classes)
	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		id, ok := property.KeyByName(name)
		if !ok {
			errs = append(errs, fmt.Errorf("theme %q: unknown property %q", t.Name, name))
			continue
		}
		if err := s.SetErased(e, id, resolved[name]); err != nil {
			errs = append(errs, fmt.Errorf("theme %q: property %q: %w", t.Name, name, err))
		}
	}
	return errors.Join(errs...)
}
