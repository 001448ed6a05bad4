package widgets

import (
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/widget"
)

// Button is a focusable action widget. Pointer release and the enter
// or space key activate it; activation is delivered as an event on the
// next frame, so OnPress runs inside the regular dispatch phase
type Button struct {
	Text     string
	Class    string
	Disabled bool
	OnPress  func(self core.Entity)
}

func (b Button) Build(bc *widget.BuildContext) core.Entity {
	e := bc.CreateEntity()
	store := bc.Store()
	property.Set(store, e, widget.KeyTypeName, "button")
	property.Set(store, e, widget.KeyText, b.Text)
	// Declaring the key makes the button part of the focus cycle
	property.Set(store, e, widget.KeyFocused, false)
	if b.Class != "" {
		property.Set(store, e, widget.KeyClasses, []string{b.Class})
	}
	if b.Disabled {
		property.Set(store, e, widget.KeyEnabled, false)
	}

	queue := bc.Queue()
	enabled := func(target core.Entity) bool {
		return property.GetOr(store, target, widget.KeyEnabled, true)
	}
	activate := func(target core.Entity) {
		queue.Push(event.Event{Type: event.TypeActivated, Target: target})
	}

	handlers := bc.Handlers()
	handlers.On(e, event.TypePointerDown, func(d *event.Delivery) {
		if enabled(d.Entity) {
			d.MarkHandled()
		}
	})
	handlers.On(e, event.TypePointerUp, func(d *event.Delivery) {
		if enabled(d.Entity) {
			activate(d.Entity)
			d.MarkHandled()
		}
	})
	handlers.On(e, event.TypeKeyPressed, func(d *event.Delivery) {
		p, ok := d.Event.Payload.(event.KeyPayload)
		if !ok || !enabled(d.Entity) {
			return
		}
		if p.Code == event.KeyEnter || (p.Code == event.KeyRune && p.Rune == ' ') {
			activate(d.Entity)
			d.MarkHandled()
		}
	})
	if b.OnPress != nil {
		onPress := b.OnPress
		handlers.On(e, event.TypeActivated, func(d *event.Delivery) {
			onPress(d.Entity)
			d.MarkHandled()
		})
	}
	return e
}
