// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Status is the lifecycle state of a conversion session. Transitions are
// strictly Idle -> Processing -> (Completed | Error); loading a new source
// returns the session to Idle.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// Snapshot is an immutable view of a conversion session's progress,
// emitted after every page so a progress display stays live.
type Snapshot struct {
	// Status is the session state at the time of the snapshot.
	Status Status `json:"status" yaml:"status"`

	// Progress is the completion percentage in [0, 100], recomputed as
	// 100 * PagesDone / PageCount after each page. It never decreases
	// within a single run.
	Progress float64 `json:"progress" yaml:"progress"`

	// PagesDone is the number of pages rasterized so far.
	PagesDone int `json:"pages_done" yaml:"pages_done"`

	// PageCount is the total number of pages in the source document.
	PageCount int `json:"page_count" yaml:"page_count"`

	// Err carries the failure for StatusError snapshots, nil otherwise.
	Err error `json:"-" yaml:"-"`
}
