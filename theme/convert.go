package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/weftui/weft/core"
)

// coerce turns a raw YAML value into the Go type the named property
// expects. Names outside the built-in vocabulary pass through as-is,
// so themes can set custom widget keys that take plain YAML types
func coerce(name string, raw any, palette map[string]core.Brush) (any, error) {
	switch name {
	case "background", "foreground", "border-brush":
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected color string, got %T", name, raw)
		}
		return evalBrush(s, palette)
	case "margin", "padding":
		return toThickness(raw)
	case "min-size":
		return toSize(raw)
	case "h-align", "v-align":
		return toAlignment(raw)
	case "orientation":
		return toOrientation(raw)
	case "visibility":
		return toVisibility(raw)
	default:
		return raw, nil
	}
}

// evalBrush evaluates a brush expression: "#rrggbb" hex, "$name"
// palette reference, "none" for transparent, or a derived shade
// lighten(expr, amount) / darken(expr, amount)
func evalBrush(expr string, palette map[string]core.Brush) (core.Brush, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "" || expr == "none":
		return core.BrushTransparent, nil
	case strings.HasPrefix(expr, "$"):
		b, ok := palette[expr[1:]]
		if !ok {
			return core.Brush{}, fmt.Errorf("palette has no color %q", expr[1:])
		}
		return b, nil
	case strings.HasPrefix(expr, "lighten(") && strings.HasSuffix(expr, ")"):
		return evalShade(expr[len("lighten("):len(expr)-1], palette, false)
	case strings.HasPrefix(expr, "darken(") && strings.HasSuffix(expr, ")"):
		return evalShade(expr[len("darken("):len(expr)-1], palette, true)
	default:
		return core.ParseBrush(expr)
	}
}

func evalShade(args string, palette map[string]core.Brush, darken bool) (core.Brush, error) {
	comma := strings.LastIndex(args, ",")
	if comma < 0 {
		return core.Brush{}, fmt.Errorf("shade needs a color and an amount: %q", args)
	}
	base, err := evalBrush(args[:comma], palette)
	if err != nil {
		return core.Brush{}, err
	}
	amount, err := strconv.ParseFloat(strings.TrimSpace(args[comma+1:]), 64)
	if err != nil {
		return core.Brush{}, fmt.Errorf("shade amount: %w", err)
	}
	if darken {
		return base.Darken(amount), nil
	}
	return base.Lighten(amount), nil
}

// toThickness accepts a uniform int or a [left, top, right, bottom]
// list
func toThickness(raw any) (core.Thickness, error) {
	switch v := raw.(type) {
	case int:
		return core.UniformThickness(v), nil
	case []any:
		if len(v) != 4 {
			return core.Thickness{}, fmt.Errorf("thickness list needs 4 entries, got %d", len(v))
		}
		sides := make([]int, 4)
		for i, item := range v {
			n, ok := item.(int)
			if !ok {
				return core.Thickness{}, fmt.Errorf("thickness entry %d: expected int, got %T", i, item)
			}
			sides[i] = n
		}
		return core.Thickness{Left: sides[0], Top: sides[1], Right: sides[2], Bottom: sides[3]}, nil
	default:
		return core.Thickness{}, fmt.Errorf("expected int or list, got %T", raw)
	}
}

// toSize accepts a [width, height] list
func toSize(raw any) (core.Size, error) {
	v, ok := raw.([]any)
	if !ok || len(v) != 2 {
		return core.Size{}, fmt.Errorf("size needs a [width, height] list, got %v", raw)
	}
	w, wok := v[0].(int)
	h, hok := v[1].(int)
	if !wok || !hok {
		return core.Size{}, fmt.Errorf("size entries must be ints, got %v", raw)
	}
	return core.Size{Width: w, Height: h}, nil
}

func toAlignment(raw any) (core.Alignment, error) {
	s, _ := raw.(string)
	switch s {
	case "start":
		return core.AlignStart, nil
	case "center":
		return core.AlignCenter, nil
	case "end":
		return core.AlignEnd, nil
	case "stretch":
		return core.AlignStretch, nil
	default:
		return 0, fmt.Errorf("unknown alignment %q", raw)
	}
}

func toOrientation(raw any) (core.Orientation, error) {
	s, _ := raw.(string)
	switch s {
	case "horizontal":
		return core.Horizontal, nil
	case "vertical":
		return core.Vertical, nil
	default:
		return 0, fmt.Errorf("unknown orientation %q", raw)
	}
}

func toVisibility(raw any) (core.Visibility, error) {
	s, _ := raw.(string)
	switch s {
	case "visible":
		return core.Visible, nil
	case "hidden":
		return core.Hidden, nil
	case "collapsed":
		return core.Collapsed, nil
	default:
		return 0, fmt.Errorf("unknown visibility %q", raw)
	}
}
