// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"errors"
	"testing"

	"github.com/pdiddy/rasterpdf/pkg/types"
)

// fakeSource implements Source for testing.
type fakeSource struct {
	name   string
	pages  int
	closed bool
}

func (f *fakeSource) Name() string   { return f.name }
func (f *fakeSource) PageCount() int { return f.pages }

func (f *fakeSource) RenderPage(page int, _ types.QualityProfile) (types.RasterPage, error) {
	return types.RasterPage{Page: page, Encoding: types.EncodingJPEG, Width: 100, Height: 100}, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func TestNew_Defaults(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	if snap.Status != types.StatusIdle {
		t.Errorf("status = %q, want %q", snap.Status, types.StatusIdle)
	}
	if snap.Progress != 0 || snap.PagesDone != 0 {
		t.Errorf("progress = %v, pages = %d, want zero", snap.Progress, snap.PagesDone)
	}
	if s.Quality() != types.QualityMedium {
		t.Errorf("quality = %q, want %q", s.Quality(), types.QualityMedium)
	}
}

func TestBegin_NoSource(t *testing.T) {
	s := New()
	if _, _, err := s.Begin(); !errors.Is(err, ErrNoSource) {
		t.Fatalf("Begin() error = %v, want ErrNoSource", err)
	}
}

func TestBegin_RejectedWhileProcessing(t *testing.T) {
	s := New()
	if err := s.Load(&fakeSource{name: "a.pdf", pages: 2}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Begin(); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("second Begin() error = %v, want ErrRunInProgress", err)
	}
}

func TestBegin_UsesActiveQuality(t *testing.T) {
	s := New()
	if err := s.Load(&fakeSource{name: "a.pdf", pages: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetQuality(types.QualityHigh); err != nil {
		t.Fatal(err)
	}
	_, profile, err := s.Begin()
	if err != nil {
		t.Fatal(err)
	}
	if profile.Scale != 2.0 {
		t.Errorf("profile scale = %v, want 2.0", profile.Scale)
	}
}

func TestLoad_RejectedWhileProcessing(t *testing.T) {
	s := New()
	if err := s.Load(&fakeSource{name: "a.pdf", pages: 2}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(&fakeSource{name: "b.pdf", pages: 1}); !errors.Is(err, ErrRunInProgress) {
		t.Fatalf("Load() error = %v, want ErrRunInProgress", err)
	}
}

func TestLoad_ResetsAfterRun(t *testing.T) {
	tests := []struct {
		name   string
		finish func(s *Session)
	}{
		{"after completed", func(s *Session) { s.Complete() }},
		{"after error", func(s *Session) { s.Fail(errors.New("render failed")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			first := &fakeSource{name: "a.pdf", pages: 2}
			if err := s.Load(first); err != nil {
				t.Fatal(err)
			}
			src, profile, err := s.Begin()
			if err != nil {
				t.Fatal(err)
			}
			page, _ := src.RenderPage(1, profile)
			s.AppendPage(page)
			tt.finish(s)

			if err := s.Load(&fakeSource{name: "b.pdf", pages: 3}); err != nil {
				t.Fatalf("Load() after run: %v", err)
			}

			snap := s.Snapshot()
			if snap.Status != types.StatusIdle {
				t.Errorf("status = %q, want %q", snap.Status, types.StatusIdle)
			}
			if snap.Progress != 0 || snap.PagesDone != 0 {
				t.Errorf("progress = %v, pages = %d, want zero", snap.Progress, snap.PagesDone)
			}
			if !first.closed {
				t.Error("previous source should be closed on replacement")
			}
			if s.SourceName() != "b.pdf" {
				t.Errorf("source = %q, want b.pdf", s.SourceName())
			}
		})
	}
}

func TestSetQuality_OnlyWhileIdle(t *testing.T) {
	s := New()
	if err := s.SetQuality(types.QualityLow); err != nil {
		t.Fatalf("SetQuality while idle: %v", err)
	}
	if s.Quality() != types.QualityLow {
		t.Errorf("quality = %q, want %q", s.Quality(), types.QualityLow)
	}

	if err := s.Load(&fakeSource{name: "a.pdf", pages: 1}); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Begin(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetQuality(types.QualityHigh); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("SetQuality while processing error = %v, want ErrNotIdle", err)
	}

	s.Complete()
	if err := s.SetQuality(types.QualityHigh); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("SetQuality after completion error = %v, want ErrNotIdle", err)
	}
	if s.Quality() != types.QualityLow {
		t.Errorf("quality changed mid-run: %q", s.Quality())
	}
}

func TestAppendPage_ProgressRecomputed(t *testing.T) {
	s := New()
	if err := s.Load(&fakeSource{name: "a.pdf", pages: 4}); err != nil {
		t.Fatal(err)
	}
	src, profile, err := s.Begin()
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 4; i++ {
		page, _ := src.RenderPage(i, profile)
		snap := s.AppendPage(page)
		want := 100 * float64(i) / 4
		if snap.Progress != want {
			t.Errorf("progress after page %d = %v, want %v", i, snap.Progress, want)
		}
		if snap.PagesDone != i {
			t.Errorf("pages done after page %d = %d", i, snap.PagesDone)
		}
	}

	snap := s.Complete()
	if snap.Status != types.StatusCompleted {
		t.Errorf("status = %q, want %q", snap.Status, types.StatusCompleted)
	}
	if snap.Progress != 100 {
		t.Errorf("progress = %v, want 100", snap.Progress)
	}
	if got := len(s.Pages()); got != 4 {
		t.Errorf("pages retained = %d, want 4", got)
	}
}

func TestFail_RetainsPartialPages(t *testing.T) {
	s := New()
	if err := s.Load(&fakeSource{name: "a.pdf", pages: 3}); err != nil {
		t.Fatal(err)
	}
	src, profile, err := s.Begin()
	if err != nil {
		t.Fatal(err)
	}
	page, _ := src.RenderPage(1, profile)
	s.AppendPage(page)

	renderErr := errors.New("page 2 failed")
	snap := s.Fail(renderErr)
	if snap.Status != types.StatusError {
		t.Errorf("status = %q, want %q", snap.Status, types.StatusError)
	}
	if !errors.Is(snap.Err, renderErr) {
		t.Errorf("snapshot error = %v, want %v", snap.Err, renderErr)
	}
	if got := len(s.Pages()); got != 1 {
		t.Errorf("partial pages retained = %d, want 1", got)
	}
}

func TestPages_ReturnsCopy(t *testing.T) {
	s := New()
	if err := s.Load(&fakeSource{name: "a.pdf", pages: 2}); err != nil {
		t.Fatal(err)
	}
	src, profile, err := s.Begin()
	if err != nil {
		t.Fatal(err)
	}
	page, _ := src.RenderPage(1, profile)
	s.AppendPage(page)

	pages := s.Pages()
	pages[0].Page = 99
	if s.Pages()[0].Page != 1 {
		t.Error("mutating the returned slice should not affect session state")
	}
}

func TestClose(t *testing.T) {
	s := New()
	src := &fakeSource{name: "a.pdf", pages: 1}
	if err := s.Load(src); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if !src.closed {
		t.Error("Close() should close the loaded source")
	}
	// Closing an empty session is a no-op.
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}
