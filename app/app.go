// Package app owns the frame loop: it drains the event queue, runs
// dispatch and widget updates, commits deferred structural mutations
// and tracks what needs layout and paint. One Application drives one
// widget tree; all of it runs on a single goroutine, frame by frame
package app

import (
	"io"
	"log"
	"sync/atomic"

	"github.com/weftui/weft/core"
	"github.com/weftui/weft/ecs"
	"github.com/weftui/weft/event"
	"github.com/weftui/weft/layout"
	"github.com/weftui/weft/property"
	"github.com/weftui/weft/render"
	"github.com/weftui/weft/status"
	"github.com/weftui/weft/theme"
	"github.com/weftui/weft/tree"
	"github.com/weftui/weft/widget"
)

// Options configures a new Application. The zero value works: a
// default queue, a discarded log and a fresh metrics board
type Options struct {
	QueueCapacity int
	Logger        *log.Logger
	Board         *status.Board
}

// Application wires the world, store, tree and event machinery into
// one frame-stepped unit
//
// Thread-Safety:
//   - RunFrame, Snapshot and all mutators belong to one goroutine
//   - The event queue accepts pushes from any goroutine
//   - The metrics board may be read from any goroutine
type Application struct {
	world     *ecs.World
	store     *property.Store
	tree      *tree.Tree
	queue     *event.Queue
	handlers  *event.HandlerMap
	registry  *widget.Registry
	mutations *widget.MutationQueue
	dispatch  *event.Dispatcher
	builder   *widget.BuildContext
	frames    *render.Builder
	hit       *render.BoundsHitTester
	layouter  *layout.Engine

	theme  *theme.Theme
	logger *log.Logger
	board  *status.Board

	frame       int64
	tick        event.TickInfo
	viewport    core.Rect
	focus       core.Entity
	needsLayout bool
	fullRepaint bool
	damage      map[core.Entity]bool

	onUpdateError func(*widget.UpdateError)

	mFrames    *atomic.Int64
	mEvents    *atomic.Int64
	mDropped   *atomic.Int64
	mUpdates   *atomic.Int64
	mErrors    *atomic.Int64
	mMutations *atomic.Int64
	mWidgets   *atomic.Int64
	mMillis    *status.AtomicFloat
}

// New creates an application with an empty tree and the default theme
func New(opts Options) *Application {
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = event.DefaultQueueCapacity
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Board == nil {
		opts.Board = status.NewBoard()
	}

	a := &Application{
		logger: opts.Logger,
		board:  opts.Board,
		theme:  theme.Default(),
		damage: make(map[core.Entity]bool),

		// Nothing painted yet, the first snapshot covers everything
		fullRepaint: true,
	}
	a.world = ecs.NewWorld()
	a.store = property.NewStore(a.world)
	a.tree = tree.New()
	a.queue = event.NewQueue(opts.QueueCapacity)
	a.handlers = event.NewHandlerMap(a.world)
	a.registry = widget.NewRegistry(a.world)
	a.mutations = widget.NewMutationQueue()
	a.builder = widget.NewBuildContext(a.world, a.store, a.tree, a.handlers, a.queue, a.registry)
	a.frames = render.NewBuilder(a.store, a.tree)
	a.hit = render.NewBoundsHitTester(a.store, a.tree)
	a.layouter = layout.New(a.store, a.tree)
	a.dispatch = event.NewDispatcher(a.tree, a.handlers)
	a.dispatch.SetResolver(a)

	a.onUpdateError = func(err *widget.UpdateError) {
		a.logger.Printf("widget error: %v", err)
	}

	a.mFrames = a.board.Int(status.MetricFrameCount)
	a.mEvents = a.board.Int(status.MetricEventsDispatched)
	a.mDropped = a.board.Int(status.MetricEventsDropped)
	a.mUpdates = a.board.Int(status.MetricUpdatesRun)
	a.mErrors = a.board.Int(status.MetricUpdateErrors)
	a.mMutations = a.board.Int(status.MetricTreeMutations)
	a.mWidgets = a.board.Int(status.MetricWidgetCount)
	a.mMillis = a.board.Float(status.MetricFrameMillis)
	a.board.Str(status.MetricThemeName).Store(a.theme.Name)

	return a
}

// World exposes the entity registry
func (a *Application) World() *ecs.World { return a.world }

// Store exposes the property store
func (a *Application) Store() *property.Store { return a.store }

// Tree exposes the widget tree
func (a *Application) Tree() *tree.Tree { return a.tree }

// Events exposes the frame event queue. Shells push converted input
// here from their own goroutine
func (a *Application) Events() *event.Queue { return a.queue }

// Handlers exposes the event handler map
func (a *Application) Handlers() *event.HandlerMap { return a.handlers }

// Builder exposes the build context for assembling widget subtrees
func (a *Application) Builder() *widget.BuildContext { return a.builder }

// Board exposes the metrics board
func (a *Application) Board() *status.Board { return a.board }

// Frame returns the sequence number of the last run frame
func (a *Application) Frame() int64 { return a.frame }

// Viewport returns the layout viewport set by the last Resize
func (a *Application) Viewport() core.Rect { return a.viewport }

// SetUpdateErrorHook replaces the default error log for failed widget
// callbacks. The metrics counter is maintained either way
func (a *Application) SetUpdateErrorHook(fn func(*widget.UpdateError)) {
	if fn == nil {
		return
	}
	a.onUpdateError = fn
}

// SetContent builds a widget description and makes it the tree root.
// Inits run during the next frame's commit phase
func (a *Application) SetContent(w widget.Widget) core.Entity {
	built := a.builder.Instantiate(w)
	a.builder.MountRoot(built)
	a.styleSubtree(built)
	a.needsLayout = true
	return built
}

// SetTheme switches the theme and restyles the whole tree
func (a *Application) SetTheme(th *theme.Theme) {
	if th == nil {
		return
	}
	a.theme = th
	a.board.Str(status.MetricThemeName).Store(th.Name)
	if root := a.tree.Root(); root != core.NoEntity {
		a.styleSubtree(root)
	}
}

// Theme returns the active theme
func (a *Application) Theme() *theme.Theme { return a.theme }

// Restyle re-resolves the theme over a subtree. Call it after changing
// an entity's style classes; mounts and theme swaps restyle on their own
func (a *Application) Restyle(e core.Entity) {
	a.styleSubtree(e)
}

// Resize sets the layout viewport, schedules a full repaint and
// queues a resize event for interested widgets
func (a *Application) Resize(size core.Size) {
	a.viewport = core.NewRect(0, 0, size.Width, size.Height)
	a.needsLayout = true
	a.fullRepaint = true
	a.queue.Push(event.Event{
		Type:    event.TypeResized,
		Target:  a.tree.Root(),
		Payload: event.ResizePayload{Size: size},
	})
}

// Focus returns the focused entity, or NoEntity
func (a *Application) Focus() core.Entity { return a.focus }

// SetFocus moves keyboard focus. Untargeted key events resolve to the
// focused entity. Focusing an entity outside the tree clears focus
func (a *Application) SetFocus(e core.Entity) {
	if e == a.focus {
		return
	}
	if a.focus != core.NoEntity && a.tree.Contains(a.focus) {
		property.Set(a.store, a.focus, widget.KeyFocused, false)
	}
	if e != core.NoEntity && a.tree.Contains(e) {
		a.focus = e
		property.Set(a.store, e, widget.KeyFocused, true)
	} else {
		a.focus = core.NoEntity
	}
}

// FocusNext moves focus to the next focusable widget in tree order,
// wrapping at the end. Focusable means the widget declared the
// focused key, whatever its current value
func (a *Application) FocusNext() {
	root := a.tree.Root()
	if root == core.NoEntity {
		return
	}
	var order []core.Entity
	w := a.tree.PreOrder(root)
	for e, ok := w.Next(); ok; e, ok = w.Next() {
		if property.Has(a.store, e, widget.KeyFocused) {
			order = append(order, e)
		}
	}
	if len(order) == 0 {
		return
	}
	next := order[0]
	for i, e := range order {
		if e == a.focus && i+1 < len(order) {
			next = order[i+1]
			break
		}
	}
	a.SetFocus(next)
}

// Resolve implements event.TargetResolver: key input goes to the
// focused widget, pointer input through bounds hit testing
func (a *Application) Resolve(ev *event.Event) (core.Entity, bool) {
	if _, ok := ev.Payload.(event.KeyPayload); ok {
		if a.focus != core.NoEntity && a.tree.Contains(a.focus) {
			return a.focus, true
		}
		return core.NoEntity, false
	}
	return a.hit.Resolve(ev)
}

// Snapshot builds the paint-order frame for everything accumulated as
// damage and consumes it: the caller owns painting what it was handed.
// It takes the world lock so a snapshot never observes a frame midway
func (a *Application) Snapshot() *render.Frame {
	a.world.Lock()
	defer a.world.Unlock()

	f := a.frames.Build(a.frame, a.viewport, a.damage, a.fullRepaint)
	if len(a.damage) > 0 {
		a.damage = make(map[core.Entity]bool)
	}
	a.fullRepaint = false
	return f
}

// styleSubtree applies the active theme to a mounted subtree
func (a *Application) styleSubtree(root core.Entity) {
	if a.theme == nil || !a.tree.Contains(root) {
		return
	}
	w := a.tree.PreOrder(root)
	for e, ok := w.Next(); ok; e, ok = w.Next() {
		if err := a.theme.Apply(a.store, e); err != nil {
			a.logger.Printf("theme %q on widget %d: %v", a.theme.Name, e, err)
		}
	}
}

func (a *Application) makeCtx(e core.Entity) *widget.Context {
	return widget.NewContext(widget.ContextParams{
		Entity:    e,
		Store:     a.store,
		Tree:      a.tree,
		Queue:     a.queue,
		Handlers:  a.handlers,
		Mutations: a.mutations,
		Tick:      a.tick,
	})
}
