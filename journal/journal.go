// Package journal keeps a record of every decision an instance made, for
// replaying and debugging games after the fact.
package journal

import (
	"context"
	"time"
)

// Entry is one answered decision.
type Entry struct {
	Instance   string
	DecisionID string
	Turn       int
	Phase      string
	Kind       string
	Prompt     string
	Chosen     string
	Category   string
	Pass       bool
	Score      float64
	Rationale  string
	Accepted   *bool
	At         time.Time
}

// Store persists entries.
type Store interface {
	Record(ctx context.Context, e Entry) error
	// Outcome attaches the game's verdict to an earlier entry.
	Outcome(ctx context.Context, instance, decisionID string, accepted bool) error
	Recent(ctx context.Context, instance string, n int) ([]Entry, error)
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error                  { return nil }
func (Nop) Outcome(context.Context, string, string, bool) error  { return nil }
func (Nop) Recent(context.Context, string, int) ([]Entry, error) { return nil, nil }
func (Nop) Close() error                                         { return nil }
