// Package layout computes widget bounds from the tree structure and
// the layout properties, writing results through the bounds key so
// painting picks them up as render damage
package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/tree"
	"github.com/weftui/weft/widget"
)

// Engine is the box layout pass. Containers stack children along
// their orientation; leaves size to their text content. Margins sit
// outside a widget's bounds, padding and border inside
type Engine struct {
	store *property.Store
	tree  *tree.Tree
}

// New creates a layout engine over the given store and tree
func New(store *property.Store, tr *tree.Tree) *Engine {
	return &Engine{store: store, tree: tr}
}

// Layout assigns bounds to every attached widget, fitting the root to
// the viewport. Bounds are written only when they change, so repeated
// passes over a stable tree produce no new render damage
func (eng *Engine) Layout(viewport core.Rect) {
	root := eng.tree.Root()
	if root == core.NoEntity {
		return
	}
	desired := make(map[core.Entity]core.Size, eng.tree.Len())
	eng.measure(root, desired)
	eng.arrange(root, viewport, desired)
}

// measure computes the outer desired size of a subtree, margin
// included. Collapsed widgets measure zero and their subtrees are not
// visited
func (eng *Engine) measure(e core.Entity, desired map[core.Entity]core.Size) core.Size {
	if visibilityOf(eng.store, e) == core.Collapsed {
		desired[e] = core.Size{}
		return core.Size{}
	}

	var content core.Size
	children := eng.tree.Children(e)
	if len(children) > 0 {
		content = eng.measureChildren(e, children, desired)
	} else {
		content = textSize(property.GetOr(eng.store, e, widget.KeyText, ""))
	}

	inset := insetOf(eng.store, e)
	size := core.Size{
		Width:  content.Width + inset.Horizontal(),
		Height: content.Height + inset.Vertical(),
	}
	minSize := property.GetOr(eng.store, e, widget.KeyMinSize, core.Size{})
	size.Width = max(size.Width, minSize.Width)
	size.Height = max(size.Height, minSize.Height)

	margin := property.GetOr(eng.store, e, widget.KeyMargin, core.Thickness{})
	outer := core.Size{
		Width:  size.Width + margin.Horizontal(),
		Height: size.Height + margin.Vertical(),
	}
	desired[e] = outer
	return outer
}

func (eng *Engine) measureChildren(e core.Entity, children []core.Entity, desired map[core.Entity]core.Size) core.Size {
	orient := property.GetOr(eng.store, e, widget.KeyOrientation, core.Vertical)
	spacing := property.GetOr(eng.store, e, widget.KeySpacing, 0)

	var main, cross, visible int
	for _, c := range children {
		sz := eng.measure(c, desired)
		if sz == (core.Size{}) && visibilityOf(eng.store, c) == core.Collapsed {
			continue
		}
		visible++
		if orient == core.Horizontal {
			main += sz.Width
			cross = max(cross, sz.Height)
		} else {
			main += sz.Height
			cross = max(cross, sz.Width)
		}
	}
	if visible > 1 {
		main += spacing * (visible - 1)
	}
	if orient == core.Horizontal {
		return core.Size{Width: main, Height: cross}
	}
	return core.Size{Width: cross, Height: main}
}

// arrange assigns bounds within the outer rect allotted by the parent
func (eng *Engine) arrange(e core.Entity, outer core.Rect, desired map[core.Entity]core.Size) {
	if visibilityOf(eng.store, e) == core.Collapsed {
		eng.writeBounds(e, core.Rect{})
		return
	}

	margin := property.GetOr(eng.store, e, widget.KeyMargin, core.Thickness{})
	bounds := outer.Shrink(margin)
	eng.writeBounds(e, bounds)

	children := eng.tree.Children(e)
	if len(children) == 0 {
		return
	}
	content := bounds.Shrink(insetOf(eng.store, e))
	eng.arrangeChildren(e, children, content, desired)
}

func (eng *Engine) arrangeChildren(e core.Entity, children []core.Entity, content core.Rect, desired map[core.Entity]core.Size) {
	orient := property.GetOr(eng.store, e, widget.KeyOrientation, core.Vertical)
	spacing := property.GetOr(eng.store, e, widget.KeySpacing, 0)

	contentMain := content.Height
	if orient == core.Horizontal {
		contentMain = content.Width
	}

	// Stretch-aligned children share the leftover main axis space
	var used, visible int
	var stretchers []core.Entity
	for _, c := range children {
		if visibilityOf(eng.store, c) == core.Collapsed {
			continue
		}
		visible++
		used += mainExtent(orient, desired[c])
		if mainAlign(eng.store, c, orient) == core.AlignStretch {
			stretchers = append(stretchers, c)
		}
	}
	if visible > 1 {
		used += spacing * (visible - 1)
	}
	leftover := contentMain - used
	bonus, rem := 0, 0
	if leftover > 0 && len(stretchers) > 0 {
		bonus = leftover / len(stretchers)
		rem = leftover % len(stretchers)
	}

	cursor := 0
	for _, c := range children {
		if visibilityOf(eng.store, c) == core.Collapsed {
			eng.arrange(c, core.Rect{}, desired)
			continue
		}
		extent := mainExtent(orient, desired[c])
		if len(stretchers) > 0 && mainAlign(eng.store, c, orient) == core.AlignStretch {
			extent += bonus
			if c == stretchers[len(stretchers)-1] {
				extent += rem
			}
		}

		var slot core.Rect
		if orient == core.Horizontal {
			crossOff, crossExt := crossAlign(eng.store, c, orient).Position(content.Height, desired[c].Height)
			slot = core.NewRect(content.X+cursor, content.Y+crossOff, max(extent, 0), max(crossExt, 0))
		} else {
			crossOff, crossExt := crossAlign(eng.store, c, orient).Position(content.Width, desired[c].Width)
			slot = core.NewRect(content.X+crossOff, content.Y+cursor, max(crossExt, 0), max(extent, 0))
		}
		eng.arrange(c, slot, desired)
		cursor += extent + spacing
	}
}

func (eng *Engine) writeBounds(e core.Entity, r core.Rect) {
	old, err := property.Get(eng.store, e, widget.KeyBounds)
	if err == nil && old == r {
		return
	}
	property.Set(eng.store, e, widget.KeyBounds, r)
}

// insetOf combines padding and the one-cell border frame
func insetOf(s *property.Store, e core.Entity) core.Thickness {
	inset := property.GetOr(s, e, widget.KeyPadding, core.Thickness{})
	if property.GetOr(s, e, widget.KeyBorder, false) {
		inset.Left++
		inset.Top++
		inset.Right++
		inset.Bottom++
	}
	return inset
}

func visibilityOf(s *property.Store, e core.Entity) core.Visibility {
	return property.GetOr(s, e, widget.KeyVisibility, core.Visible)
}

func mainExtent(orient core.Orientation, sz core.Size) int {
	if orient == core.Horizontal {
		return sz.Width
	}
	return sz.Height
}

// mainAlign is the child's alignment along the container's main axis,
// crossAlign along the other
func mainAlign(s *property.Store, e core.Entity, orient core.Orientation) core.Alignment {
	if orient == core.Horizontal {
		return property.GetOr(s, e, widget.KeyHAlign, core.AlignStart)
	}
	return property.GetOr(s, e, widget.KeyVAlign, core.AlignStart)
}

func crossAlign(s *property.Store, e core.Entity, orient core.Orientation) core.Alignment {
	if orient == core.Horizontal {
		return property.GetOr(s, e, widget.KeyVAlign, core.AlignStretch)
	}
	return property.GetOr(s, e, widget.KeyHAlign, core.AlignStretch)
}

// textSize measures multi-line text in terminal cells
func textSize(text string) core.Size {
	if text == "" {
		return core.Size{}
	}
	var w int
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return core.Size{Width: w, Height: len(lines)}
}
