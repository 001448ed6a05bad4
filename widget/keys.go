package widget

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/property"
)

// Standard property keys shared by the built-in widgets, the layout
// pass, the renderer and the theme engine. Widget packages declare
// further keys of their own; these are the ones the core passes read
//
// Bounds is written by the layout pass, so it must not mark
// layout-dirty: that would re-trigger the pass that produced it. It
// marks update-dirty instead so states can react to geometry changes
var (
	KeyBounds     = property.NewKey[core.Rect]("bounds", property.DirtyUpdate|property.DirtyRender)
	KeyMinSize    = property.NewKey[core.Size]("min-size", property.DirtyLayout)
	KeyVisibility = property.NewKey[core.Visibility]("visibility", property.DirtyLayout|property.DirtyRender)
	KeyMargin     = property.NewKey[core.Thickness]("margin", property.DirtyLayout)
	KeyPadding    = property.NewKey[core.Thickness]("padding", property.DirtyLayout)

	KeyText        = property.NewKey[string]("text", property.DirtyLayout|property.DirtyRender)
	KeyForeground  = property.NewKey[core.Brush]("foreground", property.DirtyRender)
	KeyBackground  = property.NewKey[core.Brush]("background", property.DirtyRender)
	KeyBorderBrush = property.NewKey[core.Brush]("border-brush", property.DirtyRender)
	KeyBorder      = property.NewKey[bool]("border", property.DirtyLayout|property.DirtyRender)

	KeyHAlign      = property.NewKey[core.Alignment]("h-align", property.DirtyLayout)
	KeyVAlign      = property.NewKey[core.Alignment]("v-align", property.DirtyLayout)
	KeyOrientation = property.NewKey[core.Orientation]("orientation", property.DirtyLayout)
	KeySpacing     = property.NewKey[int]("spacing", property.DirtyLayout)

	KeyEnabled = property.NewKey[bool]("enabled", property.DirtyRender)
	KeyFocused = property.NewKey[bool]("focused", property.DirtyRender)

	// Theming tags: the selector vocabulary styles match against
	KeyTypeName = property.NewKey[string]("type-name", property.DirtyRender)
	KeyClasses  = property.NewKey[[]string]("classes", property.DirtyRender)
)
