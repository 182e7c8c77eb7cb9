// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives the page rasterizer across a source document and
// maintains the session's progress model.
package convert

import (
	"context"
	"fmt"

	"github.com/pdiddy/rasterpdf/internal/session"
	"github.com/pdiddy/rasterpdf/pkg/types"
)

// ProgressFunc observes session snapshots. The orchestrator delivers each
// intermediate state before the next page begins, so a progress indicator
// stays live. A nil ProgressFunc disables observation.
type ProgressFunc func(types.Snapshot)

// Run converts the session's source document page by page at the session's
// active quality tier. Pages are rasterized in strict ascending order, one
// at a time, bounding peak memory to one raster surface.
//
// The first render failure aborts the run: the session moves to Error with
// the failing page's error, and pages rasterized so far remain available
// on the session. ctx is checked between pages only, so an in-flight page
// always completes or fails cleanly before the run stops. Calling Run
// while a run is already processing fails fast with
// session.ErrRunInProgress.
func Run(ctx context.Context, sess *session.Session, onProgress ProgressFunc) error {
	src, profile, err := sess.Begin()
	if err != nil {
		return err
	}

	emit := func(snap types.Snapshot) {
		if onProgress != nil {
			onProgress(snap)
		}
	}
	emit(sess.Snapshot())

	total := src.PageCount()
	for page := 1; page <= total; page++ {
		if err := ctx.Err(); err != nil {
			emit(sess.Fail(err))
			return fmt.Errorf("conversion cancelled before page %d: %w", page, err)
		}

		raster, err := src.RenderPage(page, profile)
		if err != nil {
			emit(sess.Fail(err))
			return err
		}
		emit(sess.AppendPage(raster))
	}

	emit(sess.Complete())
	return nil
}
