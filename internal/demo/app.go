package demo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/vango-dev/viewkit/pkg/bridge"
	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/host"
	"github.com/vango-dev/viewkit/pkg/render"
	"github.com/vango-dev/viewkit/pkg/snapshot"
	"github.com/vango-dev/viewkit/pkg/stream"
	"github.com/vango-dev/viewkit/pkg/vdom"
	"github.com/vango-dev/viewkit/pkg/view"
)

var (
	// ErrEmptyTitle is returned when a title is blank.
	ErrEmptyTitle = errors.New("demo: title is empty")

	// ErrItemNotFound is returned when no item has the requested ID.
	ErrItemNotFound = errors.New("demo: item not found")

	// ErrUnknownFilter is returned for a filter outside Filters.
	ErrUnknownFilter = errors.New("demo: unknown filter")

	// ErrUnknownHandler is returned for an event no rendered element handles.
	ErrUnknownHandler = errors.New("demo: no handler for event")
)

// Config configures an App.
type Config struct {
	// Logger receives application logs. Default: slog.Default().
	Logger *slog.Logger

	// Registry receives host and HTTP metrics and backs /metrics.
	// Default: a new registry.
	Registry *prometheus.Registry

	// Namespace prefixes metric names. Default: "viewkit".
	Namespace string

	// Store persists the list. Nil keeps it in memory only.
	Store snapshot.Store

	// SnapshotKey is the key the list is stored under. Default: "todos".
	SnapshotKey string

	// QueueSize bounds pending updates. Default: effect.DefaultQueueSize.
	QueueSize int

	// Tick is the clock interval. Default: one second.
	Tick time.Duration
}

// App is the running todo application.
type App struct {
	logger    *slog.Logger
	registry  *prometheus.Registry
	namespace string
	host      *host.Component[State]
	clock     *stream.Fragment[time.Time]
	live      *Live

	ctx    context.Context
	cancel context.CancelFunc

	// mu guards renderer. The handlers it collected belong to the HTML most
	// recently sent to clients.
	mu       sync.Mutex
	renderer *render.Renderer

	handlerOnce sync.Once
	handler     http.Handler

	closeOnce sync.Once
}

// New starts an application.
func New(cfg Config) (*App, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "viewkit"
	}
	if cfg.SnapshotKey == "" {
		cfg.SnapshotKey = "todos"
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = effect.DefaultQueueSize
	}
	if cfg.Tick <= 0 {
		cfg.Tick = time.Second
	}

	opts := []host.Option{
		host.WithLogger(cfg.Logger),
		host.WithQueueSize(cfg.QueueSize),
		host.WithMetrics(host.NewMetrics(
			host.WithNamespace(cfg.Namespace),
			host.WithRegistry(cfg.Registry),
		)),
	}
	if cfg.Store != nil {
		opts = append(opts, host.WithSnapshots(cfg.Store, cfg.SnapshotKey))
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		logger:    cfg.Logger,
		registry:  cfg.Registry,
		namespace: cfg.Namespace,
		host:      host.New("todo", Initial(), opts...).WithEquals(Equal),
		ctx:       ctx,
		cancel:    cancel,
		renderer:  render.NewRenderer(render.Config{}),
	}
	a.clock = stream.New(stream.Every(cfg.Tick), sameSecond, renderClock,
		stream.WithName("clock"),
		stream.WithLogger(cfg.Logger),
		stream.WithPlaceholder(vdom.Small(vdom.Class("clock"), "--:--:--")),
	)
	a.live = NewLive(LiveConfig{
		Logger:  cfg.Logger,
		OnEvent: a.HandleEvent,
		Hello:   a.contentMessage,
	})

	a.host.Subscribe(func(State) { a.push() })
	a.clock.OnRender(func(*vdom.VNode) { a.push() })
	if err := a.clock.Mount(a.host); err != nil {
		a.Close()
		return nil, fmt.Errorf("mount clock: %w", err)
	}
	return a, nil
}

// Close stops the clock, disconnects clients and unmounts the host, waiting
// for its update loop to exit. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.cancel()
		if a.clock != nil {
			a.clock.Unmount()
		}
		a.live.Close()
		a.host.Unmount()
		<-a.host.Done()
	})
}

// State returns the current state.
func (a *App) State() State {
	return a.host.State()
}

// Registry returns the metrics registry.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Root returns a view over the current state. Build a new one to observe
// later changes.
func (a *App) Root() view.View[State] {
	return bridge.FromHost(a.host, a.host)
}

func (a *App) items() view.View[[]Item] {
	return view.ZoomLens(a.Root(), itemsLens).WithOnMod(func(items []Item) effect.Unit {
		return effect.Lift(func() {
			a.logger.Debug("items changed", "count", len(items))
		})
	})
}

// SetTitle renames the list.
func (a *App) SetTitle(title string) effect.Unit {
	title = strings.TrimSpace(title)
	if title == "" {
		return effect.Fail[struct{}](ErrEmptyTitle)
	}
	return view.ZoomLens(a.Root(), titleLens).Set(title)
}

// SetFilter selects which items are listed.
func (a *App) SetFilter(f Filter) effect.Unit {
	if !slices.Contains(Filters, f) {
		return effect.Fail[struct{}](fmt.Errorf("%w: %q", ErrUnknownFilter, f))
	}
	return view.ZoomLens(a.Root(), filterLens).Set(f)
}

// AddItem appends an open item and yields it.
func (a *App) AddItem(title string) effect.Effect[Item] {
	title = strings.TrimSpace(title)
	if title == "" {
		return effect.Fail[Item](ErrEmptyTitle)
	}
	return view.ModAndExtract(a.items(), func(items []Item) ([]Item, Item) {
		it := Item{ID: nextID(items), Title: title}
		return append(slices.Clone(items), it), it
	})
}

// Toggle flips the done flag of an item and yields the updated item.
func (a *App) Toggle(id int) effect.Effect[Item] {
	entry := view.ZoomOptional(a.Root(), itemByID(id))
	toggled := entry.ModAndGet(func(it Item) Item {
		it.Done = !it.Done
		return it
	})
	return effect.Bind(toggled, func(o mo.Option[Item]) effect.Effect[Item] {
		if it, ok := o.Get(); ok {
			return effect.Pure(it)
		}
		return effect.Fail[Item](fmt.Errorf("%w: %d", ErrItemNotFound, id))
	})
}

// Rename changes an item's title.
func (a *App) Rename(id int, title string) effect.Unit {
	title = strings.TrimSpace(title)
	if title == "" {
		return effect.Fail[struct{}](ErrEmptyTitle)
	}
	entry := view.ZoomOptional(a.Root(), itemByID(id))
	renamed := view.OptZoomLens(entry, itemTitleLens).ModAndGet(func(string) string { return title })
	return effect.Bind(renamed, func(o mo.Option[string]) effect.Unit {
		if o.IsAbsent() {
			return effect.Fail[struct{}](fmt.Errorf("%w: %d", ErrItemNotFound, id))
		}
		return effect.Noop()
	})
}

// Remove deletes an item. Removing a missing item is not an error.
func (a *App) Remove(id int) effect.Unit {
	return a.items().Mod(func(items []Item) []Item {
		return lo.Reject(items, func(it Item, _ int) bool { return it.ID == id })
	})
}

// CompleteAll marks every item done and yields how many items there are.
func (a *App) CompleteAll() effect.Effect[int] {
	flags := view.ZoomTraversal(a.Root(), everyDone)
	return effect.Map(flags.ModAndGet(func(bool) bool { return true }), func(done []bool) int {
		return len(done)
	})
}

// ReopenAll marks every item open.
func (a *App) ReopenAll() effect.Unit {
	return view.ZoomTraversal(a.Root(), everyDone).Set(false)
}

// ClearCompleted removes the items that are done.
func (a *App) ClearCompleted() effect.Unit {
	return a.items().Mod(func(items []Item) []Item {
		return lo.Reject(items, func(it Item, _ int) bool { return it.Done })
	})
}

// run runs e on the calling goroutine, which must not be the host's update
// goroutine, and logs a failure.
func (a *App) run(action string, e effect.Unit) {
	if _, err := e.Run(a.ctx); err != nil {
		a.logger.Warn("action failed", "action", action, "error", err)
	}
}

// content is the part of the page replaced on every push.
func (a *App) content() *vdom.VNode {
	return vdom.Fragment(
		bridge.Render(a.host, a.host, a.todo),
		vdom.Footer(vdom.Class("status"), a.clock),
	)
}

// RenderPage writes the full HTML document.
func (a *App) RenderPage(w io.Writer) error {
	var buf bytes.Buffer
	a.mu.Lock()
	a.renderer.Reset()
	err := a.renderer.RenderPage(&buf, render.PageData{
		Title:   a.host.State().Title,
		Styles:  []string{pageCSS},
		Body:    vdom.Div(vdom.ID("app"), a.content()),
		Scripts: []string{liveScript},
	})
	a.mu.Unlock()
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderContent renders the replaceable part of the page.
func (a *App) RenderContent() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.renderer.Reset()
	return a.renderer.RenderToString(a.content())
}

// HandleEvent invokes the handler registered for ev during the last render.
// The handler runs on the calling goroutine and may block until its effect
// completes.
func (a *App) HandleEvent(ev Event) error {
	a.mu.Lock()
	handler, ok := a.renderer.Handler(ev.HID, ev.Event)
	a.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrUnknownHandler, ev.Event, ev.HID)
	}
	return vdom.Invoke(handler, ev.Value)
}

func (a *App) contentMessage() (Message, error) {
	html, err := a.RenderContent()
	if err != nil {
		return Message{}, err
	}
	return Message{Type: MessageHTML, HTML: html}, nil
}

// push re-renders and broadcasts the content. It runs on the host's update
// goroutine after every state change and clock tick.
func (a *App) push() {
	if a.live.Clients() == 0 {
		return
	}
	msg, err := a.contentMessage()
	if err != nil {
		a.logger.Error("render failed", "error", err)
		return
	}
	a.live.Broadcast(msg)
}

func sameSecond(a, b time.Time) bool {
	return a.Truncate(time.Second).Equal(b.Truncate(time.Second))
}

func renderClock(t time.Time) *vdom.VNode {
	return vdom.Small(vdom.Class("clock"), t.Format(time.TimeOnly))
}
