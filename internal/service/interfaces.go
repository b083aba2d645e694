// Package service defines the contracts between the reporting engine and
// its upstream collaborators.
package service

import (
	"context"
	"time"

	"github.com/tirtawidya/aruskas/internal/model"
	"github.com/tirtawidya/aruskas/internal/normalize"
)

// Credential is the already-validated caller identity handed down by the
// authorization gate. The engine performs no authorization of its own; the
// credential is passed explicitly to every operation so no session state is
// read ambiently, and it is used only for request logging.
type Credential struct {
	UserID string
	Role   string
}

// FetchPolicy selects how a failing source repository is handled. The
// choice is a product decision made per call, never hard-coded.
type FetchPolicy string

// Fetch policies.
const (
	// PolicyBestEffort lets the sources that did succeed contribute; the
	// result is flagged degraded with the failed module names listed.
	PolicyBestEffort FetchPolicy = "best-effort"
	// PolicyAllOrNothing fails the whole aggregation on any source failure.
	PolicyAllOrNothing FetchPolicy = "all-or-nothing"
)

// Valid reports whether p is a known policy.
func (p FetchPolicy) Valid() bool {
	return p == PolicyBestEffort || p == PolicyAllOrNothing
}

// SourceRepository exposes one subsystem's raw records for a date window.
// The raw shape is module-specific and consumed exclusively by the
// normalizer.
type SourceRepository interface {
	Module() model.SourceModule
	Fetch(ctx context.Context, window model.DateRange) ([]normalize.RawRecord, error)
}

// RetryOptions configures retry behavior for source fetches.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
