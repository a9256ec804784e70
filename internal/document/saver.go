package document

import (
	"context"
	"fmt"
	"sync"

	"github.com/xolan/stt/internal/tracker"
)

// Saver serializes read-modify-write cycles per locator, so two saves to
// the same document never interleave and lose an update.
type Saver struct {
	store Store

	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewSaver returns a Saver writing through store.
func NewSaver(store Store) *Saver {
	return &Saver{store: store, locks: make(map[string]chan struct{})}
}

// Store returns the underlying store.
func (s *Saver) Store() Store {
	return s.store
}

func (s *Saver) lock(loc string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[loc]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[loc] = l
	}
	return l
}

// Update reads the document at loc, passes it to fn and writes back what
// fn returns. Updates to the same locator run one at a time; waiting for
// the turn honors ctx. The document is not written when fn fails or
// returns it unchanged.
func (s *Saver) Update(ctx context.Context, loc string, fn func(content string) (string, error)) error {
	l := s.lock(loc)
	select {
	case l <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l }()

	content, err := s.store.Read(ctx, loc)
	if err != nil {
		return err
	}
	updated, err := fn(content)
	if err != nil {
		return err
	}
	if updated == content {
		return nil
	}
	return s.store.Write(ctx, loc, updated)
}

// Mutate loads the n-th tracker block, applies fn and writes a full
// snapshot of the result under the locator's lock. fn also receives the
// document content it was read from, for settings kept in frontmatter.
// The block is looked up at write time, so a block that moved within the
// document is still found by its index. Nothing is written when fn fails.
// The mutated tracker is returned even when the write fails.
func (s *Saver) Mutate(ctx context.Context, loc string, n int, fn func(t *tracker.Tracker, content string) error) (*tracker.Tracker, error) {
	var mutated *tracker.Tracker
	err := s.Update(ctx, loc, func(content string) (string, error) {
		b, err := BlockAt(content, n)
		if err != nil {
			return "", err
		}
		if err := fn(b.Tracker, content); err != nil {
			return "", err
		}
		mutated = b.Tracker
		snapshot, err := b.Tracker.Marshal()
		if err != nil {
			return "", fmt.Errorf("failed to encode tracker: %w", err)
		}
		return ReplaceSection(content, b.Section, snapshot)
	})
	return mutated, err
}
