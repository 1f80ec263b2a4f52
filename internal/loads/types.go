// Package loads runs load cycles and keeps the catalog the rest of the
// application reads from.
package loads

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCycleNotFound is returned by stores for unknown cycle IDs.
	ErrCycleNotFound = errors.New("load cycle not found")

	// ErrNoCatalog is returned while no load cycle has completed yet.
	ErrNoCatalog = errors.New("no catalog loaded")

	// ErrLoadFailed wraps the cause when the newest applied cycle failed.
	ErrLoadFailed = errors.New("load failed")
)

// Status represents the current status of a load cycle.
type Status string

const (
	// StatusRunning indicates the sources are being read.
	StatusRunning Status = "running"
	// StatusCompleted indicates every table loaded.
	StatusCompleted Status = "completed"
	// StatusFailed indicates at least one table failed to load.
	StatusFailed Status = "failed"
)

// ParseStatus validates a status name; empty is allowed and means any.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case "", StatusRunning, StatusCompleted, StatusFailed:
		return st, true
	default:
		return "", false
	}
}

// Trigger records what started a cycle.
type Trigger string

const (
	TriggerStartup  Trigger = "startup"
	TriggerManual   Trigger = "manual"
	TriggerSchedule Trigger = "schedule"
)

// Cycle is one attempt at loading all three tables.
type Cycle struct {
	// ID is the unique identifier for this cycle.
	ID string `json:"id"`

	// Seq orders cycles by start; later cycles have larger numbers.
	Seq uint64 `json:"seq"`

	Trigger Trigger `json:"trigger"`
	Status  Status  `json:"status"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains the failure message if the cycle failed.
	Error string `json:"error,omitempty"`

	Clients  int `json:"clients"`
	Accounts int `json:"accounts"`
	Branches int `json:"branches"`

	// Applied is set when the cycle's outcome became the current state. A
	// cycle that finishes after a later-started one has been applied is
	// recorded but not applied.
	Applied bool `json:"applied"`
}

// Duration is how long the cycle ran, zero while it is still running.
func (c *Cycle) Duration() time.Duration {
	if c.CompletedAt == nil {
		return 0
	}
	return c.CompletedAt.Sub(c.StartedAt)
}

// Store keeps the history of load cycles.
type Store interface {
	// Save saves or updates a cycle.
	Save(ctx context.Context, cycle *Cycle) error

	// Get retrieves a cycle by ID.
	Get(ctx context.Context, id string) (*Cycle, error)

	// List retrieves cycles, newest first, with optional filtering.
	List(ctx context.Context, filter Filter) ([]*Cycle, error)
}

// Filter defines filtering criteria for listing cycles.
type Filter struct {
	// Status filters cycles by status.
	Status Status

	// AppliedOnly keeps only cycles whose outcome became the current state.
	AppliedOnly bool

	// Limit limits the number of results.
	Limit int

	// Offset for pagination.
	Offset int
}
