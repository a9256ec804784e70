package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/document"
	"github.com/xolan/stt/internal/export"
	"github.com/xolan/stt/internal/host"
	"github.com/xolan/stt/internal/timeutil"
	"github.com/xolan/stt/internal/tracker"
)

// TrackerService runs tracker operations against documents. Every mutation
// is a serialized read-modify-write of one tracker block.
type TrackerService struct {
	saver  *document.Saver
	clock  host.Clock
	mu     sync.RWMutex
	config config.Config
	backup func(path string) error
	logger *slog.Logger
}

// NewTrackerService creates a new TrackerService. backup copies a document
// aside before a migration rewrites it; nil disables backups.
func NewTrackerService(store document.Store, clock host.Clock, cfg config.Config, backup func(path string) error) *TrackerService {
	return &TrackerService{
		saver:  document.NewSaver(store),
		clock:  clock,
		config: cfg,
		backup: backup,
		logger: slog.Default().With("component", "service"),
	}
}

// SetConfig replaces the configuration used for documents without
// frontmatter overrides.
func (s *TrackerService) SetConfig(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

func (s *TrackerService) baseConfig() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Now returns the service clock's current time.
func (s *TrackerService) Now() time.Time {
	return s.clock.Now()
}

// Config returns the settings in effect for doc: the configuration with
// the document's frontmatter overrides applied.
func (s *TrackerService) Config(ctx context.Context, doc string) (config.Config, error) {
	content, err := s.saver.Store().Read(ctx, doc)
	if err != nil {
		return config.Config{}, err
	}
	return s.configFor(content)
}

func (s *TrackerService) configFor(content string) (config.Config, error) {
	o, err := document.ReadOverrides(content)
	if err != nil {
		return config.Config{}, err
	}
	if o.IsZero() {
		return s.baseConfig(), nil
	}
	cfg, err := s.baseConfig().WithOverrides(o)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid %s frontmatter: %w", document.OverridesKey, err)
	}
	return cfg, nil
}

// Blocks returns every tracker block of doc. Malformed blocks are skipped.
func (s *TrackerService) Blocks(ctx context.Context, doc string) ([]document.Block, error) {
	content, err := s.saver.Store().Read(ctx, doc)
	if err != nil {
		return nil, err
	}
	return document.LoadAllTrackers(content), nil
}

// Load reads the target's tracker and the settings for its document.
func (s *TrackerService) Load(ctx context.Context, tgt Target) (*Snapshot, error) {
	content, err := s.saver.Store().Read(ctx, tgt.Doc())
	if err != nil {
		return nil, err
	}
	b, err := document.BlockAt(content, tgt.Block)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configFor(content)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Tracker: b.Tracker, Block: b.Index, Config: cfg, Now: s.clock.Now()}, nil
}

// Init appends an empty tracker block to doc, creating the document when
// it does not exist. It returns the new block's index.
func (s *TrackerService) Init(ctx context.Context, doc string) (int, error) {
	if _, err := os.Stat(doc); errors.Is(err, os.ErrNotExist) {
		if err := s.saver.Store().Write(ctx, doc, ""); err != nil {
			return 0, err
		}
	}

	empty, err := tracker.New().Marshal()
	if err != nil {
		return 0, err
	}
	var index int
	err = s.saver.Update(ctx, doc, func(content string) (string, error) {
		updated := document.AppendBlock(content, empty)
		index = len(document.Sections(updated))
		return updated, nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("initialized tracker block", slog.String("doc", doc), slog.Int("block", index))
	return index, nil
}

// Start starts a new top-level entry. It fails with tracker.ErrStateConflict
// while another entry runs.
func (s *TrackerService) Start(ctx context.Context, tgt Target, name string) (*tracker.Entry, error) {
	var started *tracker.Entry
	_, err := s.mutate(ctx, tgt, func(t *tracker.Tracker, now time.Time) error {
		e, err := t.StartNewEntry(strings.TrimSpace(name), now)
		started = e
		return err
	})
	return started, err
}

// Stop ends the running entry.
func (s *TrackerService) Stop(ctx context.Context, tgt Target) (*tracker.Entry, error) {
	var stopped *tracker.Entry
	_, err := s.mutate(ctx, tgt, func(t *tracker.Tracker, now time.Time) error {
		e, err := t.EndRunningEntry(now)
		stopped = e
		return err
	})
	return stopped, err
}

// Continue starts a new running part under the entry at path, splitting a
// finished leaf into a container first.
func (s *TrackerService) Continue(ctx context.Context, tgt Target, path tracker.Path, name string) (*tracker.Entry, error) {
	var started *tracker.Entry
	_, err := s.mutate(ctx, tgt, func(t *tracker.Tracker, now time.Time) error {
		e, err := t.Lookup(path)
		if err != nil {
			return err
		}
		started, err = t.StartSubEntry(e, strings.TrimSpace(name), now)
		return err
	})
	return started, err
}

// Remove deletes the entry at path after confirm approves. A declined
// confirmation returns ErrRemoveCancelled and changes nothing.
func (s *TrackerService) Remove(ctx context.Context, tgt Target, path tracker.Path, confirm host.Confirmer) (*tracker.Entry, error) {
	snap, err := s.Load(ctx, tgt)
	if err != nil {
		return nil, err
	}
	target, err := snap.Tracker.Lookup(path)
	if err != nil {
		return nil, err
	}

	ok, err := confirm.Confirm(ctx, removalMessage(target, path, snap))
	if err != nil {
		return nil, fmt.Errorf("failed to confirm removal: %w", err)
	}
	if !ok {
		return nil, ErrRemoveCancelled
	}

	var removed *tracker.Entry
	_, err = s.mutate(ctx, tgt, func(t *tracker.Tracker, _ time.Time) error {
		e, err := t.Lookup(path)
		if err != nil {
			return err
		}
		if e.Name != target.Name {
			return fmt.Errorf("%w: entry %s changed from %q to %q while confirming", tracker.ErrEntryNotFound, path, target.Name, e.Name)
		}
		removed = e
		t.RemoveEntry(e.ID())
		return nil
	})
	return removed, err
}

func removalMessage(e *tracker.Entry, path tracker.Path, snap *Snapshot) string {
	d := timeutil.FormatDuration(tracker.Duration(e, snap.Now), snap.Config.DurationStyle())
	kind := "entry"
	if e.IsContainer() {
		kind = fmt.Sprintf("entry and its %d parts", len(e.SubEntries))
	}
	msg := fmt.Sprintf("Remove %s %s %q (%s)?", kind, path, e.Name, d)
	if e.IsRunning() {
		msg = fmt.Sprintf("%q is running. %s", e.Name, msg)
	}
	return msg
}

// Edit changes the name or timestamps of the entry at path. Timestamps are
// parsed with the configured format; invalid input wraps
// tracker.ErrInvalidEdit and changes nothing.
func (s *TrackerService) Edit(ctx context.Context, tgt Target, path tracker.Path, in EditInput) (*tracker.Entry, error) {
	if in.Name == nil && in.Start == nil && in.End == nil {
		return nil, ErrNoChangesSpecified
	}

	var edited *tracker.Entry
	_, err := s.mutateWithConfig(ctx, tgt, func(t *tracker.Tracker, cfg config.Config, _ time.Time) error {
		edit, err := parseEdit(in, cfg)
		if err != nil {
			return err
		}
		e, err := t.Lookup(path)
		if err != nil {
			return err
		}
		edited, err = t.EditEntry(e.ID(), edit)
		return err
	})
	return edited, err
}

func parseEdit(in EditInput, cfg config.Config) (tracker.Edit, error) {
	loc, err := timeutil.LoadLocation(cfg.Timezone)
	if err != nil {
		return tracker.Edit{}, err
	}
	edit := tracker.Edit{Name: in.Name}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return tracker.Edit{}, fmt.Errorf("%w: name cannot be empty", tracker.ErrInvalidEdit)
		}
		edit.Name = &name
	}
	parse := func(field string, raw *string) (*time.Time, error) {
		if raw == nil {
			return nil, nil
		}
		ts, err := timeutil.ParseTimestamp(*raw, cfg.TimestampFormat, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", tracker.ErrInvalidEdit, field, err)
		}
		return &ts, nil
	}
	if edit.StartTime, err = parse("start", in.Start); err != nil {
		return tracker.Edit{}, err
	}
	if edit.EndTime, err = parse("end", in.End); err != nil {
		return tracker.Edit{}, err
	}
	return edit, nil
}

// SetCollapsed sets the display-only collapsed flag of the container at path.
func (s *TrackerService) SetCollapsed(ctx context.Context, tgt Target, path tracker.Path, collapsed bool) error {
	_, err := s.mutate(ctx, tgt, func(t *tracker.Tracker, _ time.Time) error {
		e, err := t.Lookup(path)
		if err != nil {
			return err
		}
		return t.SetCollapsed(e.ID(), collapsed)
	})
	return err
}

// Status summarizes the target's tracker now.
func (s *TrackerService) Status(ctx context.Context, tgt Target) (*Status, error) {
	snap, err := s.Load(ctx, tgt)
	if err != nil {
		return nil, err
	}
	return Summarize(snap.Tracker, snap.Block, snap.Config, snap.Now)
}

// StatusAll summarizes every tracker block of doc.
func (s *TrackerService) StatusAll(ctx context.Context, doc string) ([]*Status, error) {
	content, err := s.saver.Store().Read(ctx, doc)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configFor(content)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	var out []*Status
	for _, b := range document.LoadAllTrackers(content) {
		st, err := Summarize(b.Tracker, b.Index, cfg, now)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// Summarize computes the current, total and today durations of t at now.
// "Today" starts at midnight in the configured timezone.
func Summarize(t *tracker.Tracker, block int, cfg config.Config, now time.Time) (*Status, error) {
	loc, err := timeutil.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	st := &Status{
		Block:   block,
		Total:   t.Total(now),
		Today:   t.TotalToday(now, timeutil.StartOfDay(now.In(loc))),
		Entries: len(t.Entries),
		Now:     now,
	}
	if r := t.Running(); r != nil {
		st.Running = r
		st.Current = tracker.Duration(r, now)
		st.RunningPath, _ = t.PathOf(r.ID())
	}
	return st, nil
}

// Options returns the export options for cfg.
func Options(cfg config.Config) export.Options {
	loc, err := timeutil.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return export.Options{
		Reverse:         cfg.ReverseSegmentOrder,
		TimestampFormat: cfg.TimestampFormat,
		Location:        loc,
		Durations:       cfg.DurationStyle(),
		Delimiter:       cfg.Delimiter(),
		Pipes:           cfg.MarkdownTablePipes,
	}
}

// Table renders the target's tracker as a padded table.
func (s *TrackerService) Table(ctx context.Context, tgt Target) (string, error) {
	snap, err := s.Load(ctx, tgt)
	if err != nil {
		return "", err
	}
	opts := Options(snap.Config)
	return export.PaddedTable(export.Rows(snap.Tracker, opts, snap.Now), opts.Pipes), nil
}

// Listing renders the target's tracker as a padded table with a leading
// column of entry paths.
func (s *TrackerService) Listing(ctx context.Context, tgt Target) (string, error) {
	snap, err := s.Load(ctx, tgt)
	if err != nil {
		return "", err
	}
	opts := Options(snap.Config)
	return export.PathTable(export.Rows(snap.Tracker, opts, snap.Now), opts.Pipes), nil
}

// CSV renders the target's tracker as delimited text.
func (s *TrackerService) CSV(ctx context.Context, tgt Target) (string, error) {
	snap, err := s.Load(ctx, tgt)
	if err != nil {
		return "", err
	}
	opts := Options(snap.Config)
	return export.Delimited(export.Rows(snap.Tracker, opts, snap.Now), opts.Delimiter)
}

// Migrate rewrites every tracker block of doc in canonical form. Malformed
// blocks are left as they are and reported in Skipped. With backup set, the
// document is copied aside before it is changed.
func (s *TrackerService) Migrate(ctx context.Context, doc string, backup bool) (*MigrateResult, error) {
	result := &MigrateResult{}
	err := s.saver.Update(ctx, doc, func(content string) (string, error) {
		*result = MigrateResult{}
		lines := strings.Split(content, "\n")
		sections := document.Sections(content)
		result.Blocks = len(sections)

		updated := content
		// Back to front, so earlier sections keep their line numbers.
		for i := len(sections) - 1; i >= 0; i-- {
			sec := sections[i]
			canonical, changed, err := tracker.Migrate(sec.Body(lines))
			if err != nil {
				s.logger.Warn("skipping malformed tracker block", slog.Int("block", i+1), slog.String("error", err.Error()))
				result.Skipped = append([]int{i + 1}, result.Skipped...)
				continue
			}
			if !changed {
				continue
			}
			if updated, err = document.ReplaceSection(updated, sec, canonical); err != nil {
				return "", err
			}
			result.Migrated++
		}

		if result.Migrated > 0 && backup && s.backup != nil {
			if err := s.backup(doc); err != nil {
				return "", fmt.Errorf("failed to back up document: %w", err)
			}
			result.Backup = document.BackupPath(doc, 1)
		}
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *TrackerService) mutate(ctx context.Context, tgt Target, fn func(t *tracker.Tracker, now time.Time) error) (*tracker.Tracker, error) {
	return s.mutateWithConfig(ctx, tgt, func(t *tracker.Tracker, _ config.Config, now time.Time) error {
		return fn(t, now)
	})
}

// mutateWithConfig applies fn to the target's tracker and saves the full
// snapshot under the document's lock. Nothing is written when fn fails.
func (s *TrackerService) mutateWithConfig(ctx context.Context, tgt Target, fn func(t *tracker.Tracker, cfg config.Config, now time.Time) error) (*tracker.Tracker, error) {
	doc := tgt.Doc()
	mutated, err := s.saver.Mutate(ctx, doc, tgt.Block, func(t *tracker.Tracker, content string) error {
		cfg, err := s.configFor(content)
		if err != nil {
			return err
		}
		return fn(t, cfg, s.clock.Now())
	})
	if err != nil {
		s.logger.Debug("tracker update failed", slog.String("doc", doc), slog.Int("block", tgt.Block), slog.String("error", err.Error()))
		return nil, err
	}
	s.logger.Debug("tracker saved", slog.String("doc", doc), slog.Int("block", tgt.Block))
	return mutated, nil
}
