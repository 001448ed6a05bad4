// Package widgets provides the stock widget set: containers, text
// blocks, buttons and progress bars. Widgets are described as plain
// structs and expanded into entities through Build; after building,
// all further behavior flows through properties, events and states
package widgets

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/widget"
)

// Container stacks its children along one axis. The zero value is a
// vertical stack with no spacing
type Container struct {
	Class      string
	Horizontal bool
	Spacing    int
	Padding    core.Thickness
	Margin     core.Thickness
	MinSize    core.Size
	Children   []widget.Widget
}

func (c Container) Build(bc *widget.BuildContext) core.Entity {
	e := bc.CreateEntity()
	store := bc.Store()
	property.Set(store, e, widget.KeyTypeName, "container")
	if c.Class != "" {
		property.Set(store, e, widget.KeyClasses, []string{c.Class})
	}
	if c.Horizontal {
		property.Set(store, e, widget.KeyOrientation, core.Horizontal)
	}
	if c.Spacing != 0 {
		property.Set(store, e, widget.KeySpacing, c.Spacing)
	}
	if c.Padding != (core.Thickness{}) {
		property.Set(store, e, widget.KeyPadding, c.Padding)
	}
	if c.Margin != (core.Thickness{}) {
		property.Set(store, e, widget.KeyMargin, c.Margin)
	}
	if c.MinSize != (core.Size{}) {
		property.Set(store, e, widget.KeyMinSize, c.MinSize)
	}
	for _, child := range c.Children {
		if child == nil {
			continue
		}
		bc.AddChild(e, child.Build(bc))
	}
	return e
}

// Row lays out children left to right
func Row(children ...widget.Widget) Container {
	return Container{Horizontal: true, Children: children}
}

// Column lays out children top to bottom
func Column(children ...widget.Widget) Container {
	return Container{Children: children}
}

// Spacer is an empty stretch of layout space, used to push siblings
// apart
type Spacer struct {
	MinSize core.Size
}

func (s Spacer) Build(bc *widget.BuildContext) core.Entity {
	e := bc.CreateEntity()
	if s.MinSize != (core.Size{}) {
		property.Set(bc.Store(), e, widget.KeyMinSize, s.MinSize)
	}
	return e
}
