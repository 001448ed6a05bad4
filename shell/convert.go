package shell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/event"
)

var keyCodes = map[tcell.Key]event.KeyCode{
	tcell.KeyEnter:      event.KeyEnter,
	tcell.KeyEscape:     event.KeyEscape,
	tcell.KeyTab:        event.KeyTab,
	tcell.KeyBacktab:    event.KeyBacktab,
	tcell.KeyBackspace:  event.KeyBackspace,
	tcell.KeyBackspace2: event.KeyBackspace,
	tcell.KeyDelete:     event.KeyDelete,
	tcell.KeyUp:         event.KeyUp,
	tcell.KeyDown:       event.KeyDown,
	tcell.KeyLeft:       event.KeyLeft,
	tcell.KeyRight:      event.KeyRight,
	tcell.KeyHome:       event.KeyHome,
	tcell.KeyEnd:        event.KeyEnd,
	tcell.KeyPgUp:       event.KeyPageUp,
	tcell.KeyPgDn:       event.KeyPageDown,
}

// convertKey maps a terminal key event onto the toolkit's key
// vocabulary. Keys outside it report false and are dropped
func convertKey(ev *tcell.EventKey) (event.Event, bool) {
	payload := event.KeyPayload{Mod: convertMods(ev.Modifiers())}

	if ev.Key() == tcell.KeyRune {
		payload.Code = event.KeyRune
		payload.Rune = ev.Rune()
	} else {
		code, ok := keyCodes[ev.Key()]
		if !ok {
			return event.Event{}, false
		}
		payload.Code = code
	}

	return event.Event{Type: event.TypeKeyPressed, Payload: payload}, true
}

func convertMods(m tcell.ModMask) event.Modifiers {
	var mods event.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= event.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= event.ModAlt
	}
	return mods
}

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

var buttonOrder = []struct {
	mask   tcell.ButtonMask
	button event.PointerButton
}{
	{tcell.Button1, event.ButtonPrimary},
	{tcell.Button2, event.ButtonSecondary},
	{tcell.Button3, event.ButtonMiddle},
}

// pointerTracker turns tcell's stateless button snapshots into
// press, release and move events by diffing against the previous
// snapshot
type pointerTracker struct {
	buttons tcell.ButtonMask
	pos     core.Point
	started bool
}

func (p *pointerTracker) convert(ev *tcell.EventMouse) []event.Event {
	x, y := ev.Position()
	pos := core.Point{X: x, Y: y}
	mask := ev.Buttons()

	var out []event.Event

	if mask&tcell.WheelUp != 0 {
		out = append(out, scrollEvent(pos, 0, -1))
	}
	if mask&tcell.WheelDown != 0 {
		out = append(out, scrollEvent(pos, 0, 1))
	}
	if mask&tcell.WheelLeft != 0 {
		out = append(out, scrollEvent(pos, -1, 0))
	}
	if mask&tcell.WheelRight != 0 {
		out = append(out, scrollEvent(pos, 1, 0))
	}

	buttons := mask &^ wheelMask
	pressed := buttons &^ p.buttons
	released := p.buttons &^ buttons

	for _, b := range buttonOrder {
		if pressed&b.mask != 0 {
			out = append(out, pointerEvent(event.TypePointerDown, pos, b.button))
		}
	}
	for _, b := range buttonOrder {
		if released&b.mask != 0 {
			out = append(out, pointerEvent(event.TypePointerUp, pos, b.button))
		}
	}

	if pressed == 0 && released == 0 && p.started && pos != p.pos {
		out = append(out, pointerEvent(event.TypePointerMoved, pos, activeButton(buttons)))
	}

	p.buttons = buttons
	p.pos = pos
	p.started = true
	return out
}

func activeButton(buttons tcell.ButtonMask) event.PointerButton {
	for _, b := range buttonOrder {
		if buttons&b.mask != 0 {
			return b.button
		}
	}
	return event.ButtonNone
}

func pointerEvent(t event.Type, pos core.Point, button event.PointerButton) event.Event {
	return event.Event{Type: t, Payload: event.PointerPayload{Pos: pos, Button: button}}
}

func scrollEvent(pos core.Point, dx, dy int) event.Event {
	return event.Event{Type: event.TypeScroll, Payload: event.ScrollPayload{Pos: pos, DeltaX: dx, DeltaY: dy}}
}
