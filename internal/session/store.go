// Package session holds per-user wizard state between interactions. Every
// request recomputes its page from this state, so the store is the only
// mutable thing the portal owns.
package session

import (
	"context"

	"rep-score-portal/internal/models"
)

// State is everything the wizard keeps for one user: the in-progress draft
// and the completion markers accumulated so far.
type State struct {
	Draft   models.AssetDraft `json:"draft"`
	Markers []string          `json:"markers"`
}

// NewState returns the state of a user who has not started a submission.
func NewState() State {
	return State{Draft: models.NewAssetDraft()}
}

// Store persists State keyed by username. Load returns a fresh State when
// the user has none; Reset discards it entirely.
type Store interface {
	Load(ctx context.Context, username string) (State, error)
	Save(ctx context.Context, username string, state State) error
	Reset(ctx context.Context, username string) error
}
