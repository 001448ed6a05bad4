package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/weftui/weft/app"
	"github.com/weftui/weft/core"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/shell"
	"github.com/weftui/weft/status"
	"github.com/weftui/weft/theme"
	"github.com/weftui/weft/widget"
	"github.com/weftui/weft/widgets"
)

const (
	logDir      = "logs"
	logFileName = "weft-demo.log"
	maxLogSize  = 10 << 20
)

var (
	themeFlag = flag.String("theme", "", "Theme file (YAML); empty uses the built-in dark theme")
	debugFlag = flag.Bool("debug", false, "Write a debug log under ./logs")
	tickFlag  = flag.Duration("tick", shell.DefaultTick, "Frame interval")
)

func main() {
	// Panic recovery: the shell restores the terminal on unwind, this
	// makes the cause visible afterwards
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nweft-demo crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	th := theme.Default()
	if *themeFlag != "" {
		loaded, err := theme.LoadFile(*themeFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load theme: %v\n", err)
			os.Exit(1)
		}
		th = loaded
	}

	a := app.New(app.Options{Logger: log.Default()})
	a.SetTheme(th)

	sh, err := shell.New(a, shell.Options{Tick: *tickFlag})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open terminal: %v\n", err)
		os.Exit(1)
	}

	buildUI(a, sh)

	if err := sh.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Shell error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging points the standard logger at a file when debugging,
// and at nothing otherwise. Log output must never reach the terminal
// while the screen is active. An oversized log from a previous run is
// rotated aside with a timestamp
func setupLogging(debugEnabled bool) *os.File {
	if !debugEnabled {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir,
			fmt.Sprintf("weft-demo-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(path, rotated)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

// capture wraps a widget so the entity it builds lands in *into,
// letting later code address it
func capture(w widget.Widget, into *core.Entity) widget.Widget {
	return widget.BuildFunc(func(bc *widget.BuildContext) core.Entity {
		e := w.Build(bc)
		*into = e
		return e
	})
}

func buildUI(a *app.Application, sh *shell.Shell) {
	var sweepBar core.Entity
	var message core.Entity
	var statusLine core.Entity

	content := widget.BuildFunc(func(bc *widget.BuildContext) core.Entity {
		column := widgets.Container{
			Padding: core.Thickness{Left: 2, Top: 1, Right: 2, Bottom: 1},
			Spacing: 1,
			Children: []widget.Widget{
				widgets.TextBlock{Text: "weft widget gallery"},
				widgets.TextBlock{
					Text:  "tab cycles focus, enter presses, ctrl-c quits",
					Class: "muted",
				},
				widgets.Row(
					widgets.Button{Text: " Notify ", OnPress: func(self core.Entity) {
						property.Set(a.Store(), message, widget.KeyText,
							fmt.Sprintf("notified at frame %d", a.Frame()))
					}},
					widgets.Spacer{MinSize: core.Size{Width: 2}},
					widgets.Button{Text: " Quit ", Class: "primary", OnPress: func(core.Entity) {
						sh.Stop()
					}},
				),
				capture(widgets.TextBlock{Text: "press a button", Class: "muted"}, &message),
				capture(widgets.ProgressBar{}, &sweepBar),
				widgets.ProgressBar{Indeterminate: true},
				widgets.Spacer{},
				capture(widgets.TextBlock{Class: "muted"}, &statusLine),
			},
		}.Build(bc)

		bc.AttachState(column, &dashboard{
			bar:   &sweepBar,
			line:  &statusLine,
			board: a.Board(),
		})
		return column
	})

	root := a.SetContent(content)

	// Tab reaches the root only when no focused widget claimed it
	a.Handlers().On(root, event.TypeKeyPressed, func(d *event.Delivery) {
		if p, ok := d.Event.Payload.(event.KeyPayload); ok && p.Code == event.KeyTab {
			a.FocusNext()
			d.MarkHandled()
		}
	})
	a.FocusNext()
}

// dashboard drives the demo's moving parts: it sweeps the determinate
// bar and refreshes the status line from the metrics board once a
// second
type dashboard struct {
	widget.StateBase
	bar   *core.Entity
	line  *core.Entity
	board *status.Board

	value   float64
	elapsed time.Duration
}

func (d *dashboard) OnUpdate(c *widget.Context) {
	delta := c.Tick().Delta

	d.value += delta.Seconds() / 8
	for d.value > 1 {
		d.value--
	}
	widgets.SetProgress(c.Store(), *d.bar, d.value)

	d.elapsed += delta
	if d.elapsed >= time.Second {
		d.elapsed = 0
		text := fmt.Sprintf("frames %d | events %d | widgets %d | %.2f ms",
			d.board.Int(status.MetricFrameCount).Load(),
			d.board.Int(status.MetricEventsDispatched).Load(),
			d.board.Int(status.MetricWidgetCount).Load(),
			d.board.Float(status.MetricFrameMillis).Get())
		property.Set(c.Store(), *d.line, widget.KeyText, text)
	}

	c.RequestUpdate()
}
