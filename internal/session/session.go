// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the in-memory state of one conversion attempt,
// from source load through completed or failed output.
package session

import (
	"errors"
	"sync"

	"github.com/pdiddy/rasterpdf/pkg/types"
)

var (
	// ErrRunInProgress reports that an operation was attempted while a
	// conversion run is processing.
	ErrRunInProgress = errors.New("conversion run already in progress")

	// ErrNoSource reports that a run was started with no source loaded.
	ErrNoSource = errors.New("no source document loaded")

	// ErrNotIdle reports a quality change outside the idle state.
	ErrNotIdle = errors.New("quality can only be changed while idle")
)

// Source is an open paginated document: a page count plus a per-index
// render capability. raster.Source is the production implementation.
type Source interface {
	Name() string
	PageCount() int
	RenderPage(page int, profile types.QualityProfile) (types.RasterPage, error)
	Close() error
}

// Session tracks the current source, accumulated raster pages, progress,
// lifecycle status, and active quality tier for one conversion attempt.
// It is mutated exclusively by the orchestrator during a run and read-only
// to all other parties until the status leaves Processing.
type Session struct {
	mu       sync.Mutex
	source   Source
	pages    []types.RasterPage
	total    int
	progress float64
	status   types.Status
	quality  types.QualityTier
	err      error
}

// New creates an idle session with the medium quality tier.
func New() *Session {
	return &Session{status: types.StatusIdle, quality: types.QualityMedium}
}

// Load replaces the session's source wholesale, closing the previous one.
// It resets pages, progress, and status to Idle. Loading is rejected with
// ErrRunInProgress while a run is processing.
func (s *Session) Load(src Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == types.StatusProcessing {
		return ErrRunInProgress
	}
	if s.source != nil {
		s.source.Close()
	}
	s.source = src
	s.pages = nil
	s.total = 0
	s.progress = 0
	s.status = types.StatusIdle
	s.err = nil
	return nil
}

// SetQuality selects the rendering tier for the next run. Allowed only
// while the session is idle; changing quality mid-run is not permitted.
func (s *Session) SetQuality(tier types.QualityTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != types.StatusIdle {
		return ErrNotIdle
	}
	s.quality = tier
	return nil
}

// Quality returns the active quality tier.
func (s *Session) Quality() types.QualityTier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quality
}

// SourceName returns the loaded source's name, or "" when none is loaded.
func (s *Session) SourceName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return ""
	}
	return s.source.Name()
}

// Pages returns a copy of the raster pages accumulated so far, in source
// page order.
func (s *Session) Pages() []types.RasterPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	pages := make([]types.RasterPage, len(s.pages))
	copy(pages, s.pages)
	return pages
}

// Snapshot returns an immutable view of the session state.
func (s *Session) Snapshot() types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close releases the loaded source, if any. Rejected while processing.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == types.StatusProcessing {
		return ErrRunInProgress
	}
	if s.source == nil {
		return nil
	}
	err := s.source.Close()
	s.source = nil
	return err
}

// Begin transitions the session into Processing, clearing any pages from a
// previous run. It returns the source and the active rendering profile.
// Begin fails fast with ErrNoSource when no source is loaded and with
// ErrRunInProgress when a run is already processing, so two concurrent
// runs can never mutate the same page list.
func (s *Session) Begin() (Source, types.QualityProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == types.StatusProcessing {
		return nil, types.QualityProfile{}, ErrRunInProgress
	}
	if s.source == nil {
		return nil, types.QualityProfile{}, ErrNoSource
	}
	s.pages = nil
	s.total = s.source.PageCount()
	s.progress = 0
	s.status = types.StatusProcessing
	s.err = nil
	return s.source, types.ProfileFor(s.quality), nil
}

// AppendPage records one rasterized page and recomputes progress.
func (s *Session) AppendPage(page types.RasterPage) types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == types.StatusProcessing {
		s.pages = append(s.pages, page)
		s.progress = 100 * float64(len(s.pages)) / float64(s.total)
	}
	return s.snapshotLocked()
}

// Fail aborts the run. Pages rasterized so far are retained for caller
// inspection; the run is not retried automatically.
func (s *Session) Fail(err error) types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == types.StatusProcessing {
		s.status = types.StatusError
		s.err = err
	}
	return s.snapshotLocked()
}

// Complete marks the run finished after all pages rasterized.
func (s *Session) Complete() types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == types.StatusProcessing {
		s.status = types.StatusCompleted
	}
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() types.Snapshot {
	return types.Snapshot{
		Status:    s.status,
		Progress:  s.progress,
		PagesDone: len(s.pages),
		PageCount: s.total,
		Err:       s.err,
	}
}
