package core

// Visibility controls widget participation in layout and render
type Visibility uint8

const (
	// Visible widgets are laid out and drawn
	Visible Visibility = iota
	// Hidden widgets keep their layout slot but are not drawn
	Hidden
	// Collapsed widgets take no layout space and are not drawn
	Collapsed
)

// String returns the visibility name for diagnostics
func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Collapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Orientation selects the main axis of a container
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// Alignment positions content within available space on one axis
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Position resolves the offset and extent for content of the given
// size within the available extent
func (a Alignment) Position(available, content int) (offset, extent int) {
	if content > available {
		content = available
	}
	switch a {
	case AlignCenter:
		return (available - content) / 2, content
	case AlignEnd:
		return available - content, content
	case AlignStretch:
		return 0, available
	default:
		return 0, content
	}
}
