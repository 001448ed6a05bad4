package theme

import "github.com/weftui/weft/core"

func mustBrush(hex string) core.Brush {
	b, err := core.ParseBrush(hex)
	if err != nil {
		panic(err)
	}
	return b
}

// Default returns the built-in dark theme used when no theme file is
// given. It styles the stock widget types and leaves custom keys alone
func Default() *Theme {
	palette := map[string]core.Brush{
		"surface":  mustBrush("#20242c"),
		"panel":    mustBrush("#2a2f3a"),
		"text":     mustBrush("#d8dee9"),
		"muted":    mustBrush("#7b8496"),
		"accent":   mustBrush("#7aa2f7"),
		"contrast": mustBrush("#14161b"),
	}

	return &Theme{
		Name:    "weft-dark",
		Palette: palette,
		Rules: []Rule{
			{
				Selector: Selector{},
				Props: map[string]any{
					"foreground": palette["text"],
					"background": core.BrushTransparent,
				},
			},
			{
				Selector: Selector{Type: "container"},
				Props: map[string]any{
					"background": palette["surface"],
					"spacing":    0,
				},
			},
			{
				Selector: Selector{Type: "text-block"},
				Props: map[string]any{
					"foreground": palette["text"],
				},
			},
			{
				Selector: Selector{Type: "text-block", Class: "muted"},
				Props: map[string]any{
					"foreground": palette["muted"],
				},
			},
			{
				Selector: Selector{Type: "button"},
				Props: map[string]any{
					"background":   palette["panel"],
					"foreground":   palette["text"],
					"border":       true,
					"border-brush": palette["muted"],
					"padding":      core.Thickness{Left: 1, Right: 1},
					"h-align":      core.AlignCenter,
				},
			},
			{
				Selector: Selector{Type: "button", Class: "primary"},
				Props: map[string]any{
					"background":   palette["accent"],
					"foreground":   palette["contrast"],
					"border-brush": palette["accent"].Lighten(0.15),
				},
			},
			{
				Selector: Selector{Type: "progress-bar"},
				Props: map[string]any{
					"background": palette["panel"],
					"foreground": palette["accent"],
				},
			},
		},
	}
}
