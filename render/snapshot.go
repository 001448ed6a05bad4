// Package render turns the committed widget tree into paint-order
// snapshots and draws them onto a terminal screen. The snapshot is
// plain data: building it is the only step that reads the store, so
// painting never races the update loop
package render

import "github.com/weftui/weft/core"

// Node is one widget's resolved visual state. Bounds are absolute
// screen cells; Clip is the intersection with every ancestor's content
// region and bounds all drawing for the node
type Node struct {
	Entity  core.Entity
	Depth   int
	Bounds  core.Rect
	Clip    core.Rect
	Content core.Rect // bounds minus border and padding, holds the text

	Background core.Brush
	Foreground core.Brush
	Border     bool
	BorderHue  core.Brush
	Text       string
	TextHAlign core.Alignment
	TextVAlign core.Alignment
	Focused    bool
	Enabled    bool

	// Damaged nodes changed since the last consumed snapshot; painters
	// may skip the rest
	Damaged bool
}

// Frame is one paint-order snapshot of the visible tree
type Frame struct {
	Seq      int64
	Viewport core.Rect
	Full     bool // repaint everything, ignoring per-node damage
	Nodes    []Node
}

// Damaged reports whether the frame contains any work for a painter
func (f *Frame) Damaged() bool {
	if f.Full {
		return len(f.Nodes) > 0
	}
	for i := range f.Nodes {
		if f.Nodes[i].Damaged {
			return true
		}
	}
	return false
}
