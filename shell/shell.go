// Package shell runs an application on a live terminal. It owns the
// tcell screen, converts terminal input into typed events on the
// application's queue and drives the frame loop at a fixed tick
package shell

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/weftui/weft/app"
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/render"
)

// DefaultTick is the frame interval when Options leaves it zero
const DefaultTick = 16 * time.Millisecond

const eventBuffer = 64

// Options configures a Shell. The zero value creates a real terminal
// screen ticking at DefaultTick
type Options struct {
	// Tick is the frame interval
	Tick time.Duration

	// Screen injects an initialized screen instead of opening the
	// terminal. The caller keeps ownership: the shell will not Fini it
	Screen tcell.Screen
}

// Shell couples one Application to one terminal screen
type Shell struct {
	app     *app.Application
	screen  tcell.Screen
	painter *render.ScreenPainter
	tick    time.Duration

	ownsScreen bool
	pointer    pointerTracker
	closing    bool

	quit     chan struct{}
	stopOnce sync.Once
}

// New builds a shell around the application. Without an injected
// screen it opens and initializes the terminal; the screen is released
// when Run returns
func New(a *app.Application, opts Options) (*Shell, error) {
	s := &Shell{
		app:  a,
		tick: opts.Tick,
		quit: make(chan struct{}),
	}
	if s.tick <= 0 {
		s.tick = DefaultTick
	}

	if opts.Screen != nil {
		s.screen = opts.Screen
	} else {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, err
		}
		s.screen = screen
		s.ownsScreen = true
	}
	s.painter = render.NewScreenPainter(s.screen)
	return s, nil
}

// Run drives the application until Stop is called, the screen closes
// or a close request finishes its frame. It must run on the goroutine
// that owns the application
func (s *Shell) Run() error {
	if s.ownsScreen {
		defer s.screen.Fini()
	}
	s.screen.EnableMouse()

	w, h := s.screen.Size()
	s.app.Resize(core.Size{Width: w, Height: h})

	events := make(chan tcell.Event, eventBuffer)
	go s.poll(events)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-s.quit:
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.handleEvent(ev)

		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now
			stats := s.app.RunFrame(delta)
			if stats.NeedsRender {
				s.painter.Paint(s.app.Snapshot())
			}
			// A close request gets this one frame to react, then the
			// loop ends
			if s.closing {
				return nil
			}
		}
	}
}

// Stop ends Run from application code, typically an event handler.
// Safe to call more than once
func (s *Shell) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
}

// poll ships terminal events to the run loop. PollEvent returns nil
// once the screen is finalized, which closes the channel and ends Run
func (s *Shell) poll(out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-s.quit:
			return
		}
	}
}

func (s *Shell) handleEvent(ev tcell.Event) {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		w, h := tev.Size()
		s.app.Resize(core.Size{Width: w, Height: h})
		s.screen.Sync()

	case *tcell.EventKey:
		if tev.Key() == tcell.KeyCtrlC {
			s.requestClose()
			return
		}
		if converted, ok := convertKey(tev); ok {
			s.app.Events().Push(converted)
		}

	case *tcell.EventMouse:
		for _, converted := range s.pointer.convert(tev) {
			s.app.Events().Push(converted)
		}
	}
}

// requestClose queues a close event for widgets that want to observe
// shutdown, then lets the next frame be the last
func (s *Shell) requestClose() {
	s.app.Events().Push(event.Event{
		Type:   event.TypeCloseRequested,
		Target: s.app.Tree().Root(),
	})
	s.closing = true
}
