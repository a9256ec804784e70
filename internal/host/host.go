// Package host defines the capabilities the tracker core consumes from its
// hosting environment: confirmation prompts, the current document locator
// and the clock.
package host

import (
	"context"
	"sync"
	"time"
)

// Confirmer asks the user to approve a destructive action. A false answer
// aborts the action with no effect.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// AlwaysConfirm approves every action, as with a --yes flag.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) {
	return true, nil
})

// Locator yields the current location of a tracker's document. The
// location can change while a tracker is displayed.
type Locator interface {
	Current() string
}

// StaticLocator is a Locator that never moves.
type StaticLocator string

// Current returns the locator itself.
func (l StaticLocator) Current() string {
	return string(l)
}

// MovableLocator is a Locator the host updates when the document is
// renamed or moved. It is safe for concurrent use.
type MovableLocator struct {
	mu      sync.RWMutex
	current string
	onMove  []func(from, to string)
}

// NewMovableLocator returns a locator starting at loc.
func NewMovableLocator(loc string) *MovableLocator {
	return &MovableLocator{current: loc}
}

// Current returns the document's current location.
func (l *MovableLocator) Current() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Move records a new location and notifies subscribers.
func (l *MovableLocator) Move(to string) {
	l.mu.Lock()
	from := l.current
	l.current = to
	subs := append([]func(string, string){}, l.onMove...)
	l.mu.Unlock()

	if from == to {
		return
	}
	for _, fn := range subs {
		fn(from, to)
	}
}

// OnMove registers fn to run after every move.
func (l *MovableLocator) OnMove(fn func(from, to string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onMove = append(l.onMove, fn)
}

// Clock abstracts time to keep tracker operations deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
