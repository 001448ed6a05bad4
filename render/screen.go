package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/weftui/weft/core"
)

// Border runes for the one-cell widget frame
const (
	borderHorizontal  = '─'
	borderVertical    = '│'
	borderTopLeft     = '┌'
	borderTopRight    = '┐'
	borderBottomLeft  = '└'
	borderBottomRight = '┘'
)

// ScreenPainter draws snapshots onto a tcell screen. Damaged nodes
// repaint in order; everything else keeps its cells from earlier
// frames
type ScreenPainter struct {
	screen tcell.Screen
}

// NewScreenPainter creates a painter for the given screen
func NewScreenPainter(screen tcell.Screen) *ScreenPainter {
	return &ScreenPainter{screen: screen}
}

// Paint draws one frame and flushes it to the terminal
func (p *ScreenPainter) Paint(f *Frame) {
	if f.Full {
		p.screen.Clear()
	}
	for i := range f.Nodes {
		n := &f.Nodes[i]
		if !f.Full && !n.Damaged {
			continue
		}
		p.paintNode(n)
	}
	p.screen.Show()
}

func (p *ScreenPainter) paintNode(n *Node) {
	if n.Clip.IsEmpty() {
		return
	}

	style := p.nodeStyle(n)
	if n.Background.Solid {
		p.fill(n.Bounds, n.Clip, style)
	}
	if n.Border {
		p.drawBorder(n, style)
	}
	if n.Text != "" {
		p.drawText(n, style)
	}
}

// nodeStyle builds the tcell style for a node's cells
func (p *ScreenPainter) nodeStyle(n *Node) tcell.Style {
	style := tcell.StyleDefault
	if n.Background.Solid {
		style = style.Background(toColor(n.Background))
	}
	if n.Foreground.Solid {
		style = style.Foreground(toColor(n.Foreground))
	}
	if !n.Enabled {
		style = style.Dim(true)
	}
	return style
}

func (p *ScreenPainter) fill(r core.Rect, clip core.Rect, style tcell.Style) {
	area := r.Intersect(clip)
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			p.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (p *ScreenPainter) drawBorder(n *Node, base tcell.Style) {
	style := base
	if n.BorderHue.Solid {
		style = style.Foreground(toColor(n.BorderHue))
	}
	if n.Focused {
		style = style.Bold(true)
	}

	b := n.Bounds
	if b.Width < 2 || b.Height < 2 {
		return
	}
	right, bottom := b.Right()-1, b.Bottom()-1

	p.set(b.X, b.Y, borderTopLeft, style, n.Clip)
	p.set(right, b.Y, borderTopRight, style, n.Clip)
	p.set(b.X, bottom, borderBottomLeft, style, n.Clip)
	p.set(right, bottom, borderBottomRight, style, n.Clip)
	for x := b.X + 1; x < right; x++ {
		p.set(x, b.Y, borderHorizontal, style, n.Clip)
		p.set(x, bottom, borderHorizontal, style, n.Clip)
	}
	for y := b.Y + 1; y < bottom; y++ {
		p.set(b.X, y, borderVertical, style, n.Clip)
		p.set(right, y, borderVertical, style, n.Clip)
	}
}

func (p *ScreenPainter) drawText(n *Node, base tcell.Style) {
	style := base
	if n.Focused {
		style = style.Bold(true)
	}

	box := n.Content.Intersect(n.Clip)
	if box.IsEmpty() {
		return
	}
	lines := strings.Split(n.Text, "\n")
	yOff, _ := n.TextVAlign.Position(n.Content.Height, len(lines))

	for i, line := range lines {
		y := n.Content.Y + yOff + i
		if y < box.Y || y >= box.Bottom() {
			continue
		}
		w := runewidth.StringWidth(line)
		xOff, _ := n.TextHAlign.Position(n.Content.Width, w)
		x := n.Content.X + xOff
		for _, ch := range line {
			cw := runewidth.RuneWidth(ch)
			if x >= box.Right() {
				break
			}
			if x >= box.X && x+cw <= box.Right() {
				p.screen.SetContent(x, y, ch, nil, style)
			}
			x += cw
		}
	}
}

func (p *ScreenPainter) set(x, y int, ch rune, style tcell.Style, clip core.Rect) {
	if !clip.Contains(core.Point{X: x, Y: y}) {
		return
	}
	p.screen.SetContent(x, y, ch, nil, style)
}

// toColor converts a brush to a 24-bit terminal color
func toColor(b core.Brush) tcell.Color {
	return tcell.NewRGBColor(int32(b.R), int32(b.G), int32(b.B))
}
