// Package watch follows a tracker document on disk: it reports external
// edits and keeps a host.MovableLocator pointing at the file when it is
// renamed within its directory.
package watch

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/xolan/stt/internal/host"
)

// EventKind describes what happened to the document.
type EventKind int

const (
	Changed EventKind = iota // content was written
	Moved                    // renamed within its directory; the locator follows
	Removed                  // deleted or moved out of reach
)

func (k EventKind) String() string {
	switch k {
	case Changed:
		return "changed"
	case Moved:
		return "moved"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Event is a debounced change of the watched document.
type Event struct {
	Kind EventKind
	Path string
	// From is the previous path of a Moved document.
	From string
}

// DefaultDebounce is the quiet period before an event is emitted.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors the directory of a document using fsnotify.
type Watcher struct {
	Events   <-chan Event // Read-only external channel
	Debounce time.Duration

	events  chan Event // Internal write channel
	done    chan struct{}
	locator *host.MovableLocator
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// New creates a watcher for the document loc points at.
func New(loc *host.MovableLocator) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Event, 16)
	return &Watcher{
		Events:   ch,
		Debounce: DefaultDebounce,
		events:   ch,
		done:     make(chan struct{}),
		locator:  loc,
		watcher:  fw,
		logger:   slog.Default().With("component", "watch"),
	}, nil
}

// Start begins watching the document's directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.locator.Current())); err != nil {
		_ = w.watcher.Close()
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Events channel.
func (w *Watcher) Stop() {
	_ = w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.events)
}

// pending collects what happened to the document during one debounce window.
type pending struct {
	changed   time.Time
	vanished  time.Time
	candidate string
}

func (w *Watcher) loop() {
	defer close(w.done)

	var p pending
	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.observe(&p, event)

		case <-ticker.C:
			w.settle(&p, time.Now())

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) observe(p *pending, event fsnotify.Event) {
	path := w.locator.Current()
	now := time.Now()

	switch {
	case event.Name == path && (event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)):
		p.vanished = now
	case event.Name == path && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)):
		p.changed = now
	case !p.vanished.IsZero() && event.Has(fsnotify.Create) &&
		filepath.Ext(event.Name) == filepath.Ext(path):
		// A rename within the directory shows up as a Rename of the old
		// name followed by a Create of the new one.
		p.candidate = event.Name
	}
}

// settle emits at most one event once the document has been quiet for the
// debounce period.
func (w *Watcher) settle(p *pending, now time.Time) {
	last := p.changed
	if p.vanished.After(last) {
		last = p.vanished
	}
	if last.IsZero() || now.Sub(last) < w.Debounce {
		return
	}
	defer func() { *p = pending{} }()

	path := w.locator.Current()
	if p.vanished.IsZero() || exists(path) {
		// Editors commonly save by renaming a new file over the old one.
		w.emit(Event{Kind: Changed, Path: path})
		return
	}
	if p.candidate != "" && exists(p.candidate) {
		w.locator.Move(p.candidate)
		w.emit(Event{Kind: Moved, Path: p.candidate, From: path})
		return
	}
	w.emit(Event{Kind: Removed, Path: path})
}

func (w *Watcher) emit(e Event) {
	w.logger.Debug("document event", slog.String("kind", e.Kind.String()), slog.String("path", e.Path))
	select {
	case w.events <- e:
	default:
		w.logger.Warn("dropping document event, consumer is behind", slog.String("kind", e.Kind.String()))
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
