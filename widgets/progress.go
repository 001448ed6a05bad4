package widgets

import (
	"strings"
	"time"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/widget"
)

// KeyValue holds a progress bar's completion in [0,1]. Writing it
// re-runs the bar's update so the glyphs follow
var KeyValue = property.NewKey[float64]("progress-value", property.DirtyUpdate)

const (
	barFilled = '█'
	barEmpty  = '░'

	pulseWidth = 3
	pulseStep  = 50 * time.Millisecond
)

// ProgressBar renders completion as a row of block glyphs. An
// indeterminate bar ignores its value and bounces a pulse instead
type ProgressBar struct {
	Value         float64
	Indeterminate bool
	Class         string
}

func (p ProgressBar) Build(bc *widget.BuildContext) core.Entity {
	e := bc.CreateEntity()
	store := bc.Store()
	property.Set(store, e, widget.KeyTypeName, "progress-bar")
	property.Set(store, e, widget.KeyMinSize, core.Size{Height: 1})
	property.Set(store, e, KeyValue, clampUnit(p.Value))
	if p.Class != "" {
		property.Set(store, e, widget.KeyClasses, []string{p.Class})
	}
	bc.AttachState(e, &progressState{indeterminate: p.Indeterminate})
	return e
}

// SetProgress writes a bar's completion, clamped to [0,1]
func SetProgress(store *property.Store, e core.Entity, value float64) {
	property.Set(store, e, KeyValue, clampUnit(value))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// progressState regenerates the bar text whenever the value or the
// laid-out width changes. Bounds writes mark update-dirty, so a bar
// that has not been laid out yet simply waits for its first geometry
type progressState struct {
	widget.StateBase
	indeterminate bool
	elapsed       time.Duration
}

func (s *progressState) OnUpdate(c *widget.Context) {
	bounds := widget.GetOr(c, widget.KeyBounds, core.Rect{})
	width := bounds.Width
	if width <= 0 {
		return
	}

	var text string
	if s.indeterminate {
		s.elapsed += c.Tick().Delta
		text = pulseBar(width, int(s.elapsed/pulseStep))
		c.RequestUpdate()
	} else {
		text = fillBar(width, widget.GetOr(c, KeyValue, 0))
	}

	if text != widget.GetOr(c, widget.KeyText, "") {
		widget.Set(c, widget.KeyText, text)
	}
}

func fillBar(width int, value float64) string {
	filled := int(value*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	var b strings.Builder
	b.Grow(width)
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteRune(barFilled)
		} else {
			b.WriteRune(barEmpty)
		}
	}
	return b.String()
}

// pulseBar bounces a short filled run across the width, one cell per
// step
func pulseBar(width, step int) string {
	span := pulseWidth
	if span > width {
		span = width
	}
	travel := width - span
	pos := 0
	if travel > 0 {
		period := 2 * travel
		phase := step % period
		if phase > travel {
			phase = period - phase
		}
		pos = phase
	}
	var b strings.Builder
	b.Grow(width)
	for i := 0; i < width; i++ {
		if i >= pos && i < pos+span {
			b.WriteRune(barFilled)
		} else {
			b.WriteRune(barEmpty)
		}
	}
	return b.String()
}
