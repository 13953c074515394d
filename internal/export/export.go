// Package export materializes the print rendering of a CV into a
// downloadable PDF artifact without blocking the editing session.
package export

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Status is the lifecycle state of an export.
type Status string

// Export states. A failed export can be retried; a generating one rejects
// further requests until it settles.
const (
	StatusIdle       Status = "idle"
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

var (
	// ErrExportInProgress is returned when an export is requested while one
	// is already generating.
	ErrExportInProgress = errors.New("export already in progress")

	// ErrNoArtifact is returned when a download is requested before an
	// export has completed successfully.
	ErrNoArtifact = errors.New("no artifact available")
)

// RenderFunc produces the artifact bytes. It runs on a background goroutine.
type RenderFunc func(ctx context.Context) ([]byte, error)

// Export is the per-session export state machine:
// idle → generating → {ready | failed}, with retry allowed from failed.
// A failed or superseded artifact is never offered for download.
type Export struct {
	mu       sync.Mutex
	status   Status
	artifact []byte
	filename string
	err      error
}

// New returns an idle export.
func New() *Export {
	return &Export{status: StatusIdle}
}

// Start begins generating an artifact. It returns ErrExportInProgress if a
// generation is already running; starting over from ready or failed is
// allowed and discards the previous outcome.
func (e *Export) Start(ctx context.Context, filename string, render RenderFunc) error {
	e.mu.Lock()
	if e.status == StatusGenerating {
		e.mu.Unlock()
		return ErrExportInProgress
	}
	e.status = StatusGenerating
	e.artifact = nil
	e.filename = filename
	e.err = nil
	e.mu.Unlock()

	go func() {
		artifact, err := render(ctx)

		e.mu.Lock()
		defer e.mu.Unlock()
		if err != nil {
			log.Printf("export failed for %s: %v", filename, err)
			e.status = StatusFailed
			e.err = err
			return
		}
		e.status = StatusReady
		e.artifact = artifact
	}()

	return nil
}

// Status reports the current state.
func (e *Export) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Err returns the failure cause when the export is failed, nil otherwise.
func (e *Export) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Artifact returns the finished artifact and its filename. It fails with
// ErrNoArtifact unless the export is ready.
func (e *Export) Artifact() ([]byte, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusReady {
		return nil, "", ErrNoArtifact
	}
	return e.artifact, e.filename, nil
}
