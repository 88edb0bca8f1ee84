// Package interfaces defines service contracts for WealthFlow
package interfaces

import (
	"context"

	"github.com/10543610-ai/WealthFlow-AI/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	IdentityStore() IdentityStore
	AggregateStore() AggregateStore

	// Lifecycle
	Close() error
}

// IdentityStore manages identity records keyed by opaque user ID.
type IdentityStore interface {
	GetIdentity(ctx context.Context, userID string) (*models.IdentityRecord, error)
	GetIdentityByEmail(ctx context.Context, email string) (*models.IdentityRecord, error)
	SaveIdentity(ctx context.Context, rec *models.IdentityRecord) error
	DeleteIdentity(ctx context.Context, userID string) error
}

// AggregateStore persists the per-identity financial aggregate as a
// single document keyed by user ID.
//
// Read returns storage.ErrNotFound (wrapped) when no document exists for
// the identity, the caller's cue to run the new-identity bootstrap.
//
// Merge performs a partial-field upsert: fields absent from the write
// are preserved server-side, never deleted. The store must not offer a
// destructive full-document replace to the synchronizer.
type AggregateStore interface {
	Read(ctx context.Context, userID string) (*models.Aggregate, error)
	Merge(ctx context.Context, userID string, write *AggregateWrite) error
}

// AggregateWrite is the merge-write payload for one flush. Seq is a
// session-local monotonic sequence; with UpdatedAt it gives the store a
// last-write-wins ordering should two flushes race past the debounce
// window.
type AggregateWrite struct {
	Accounts     []models.Account      `json:"accounts"`
	Transactions []models.Transaction  `json:"transactions"`
	Stocks       []models.StockHolding `json:"stocks"`
	Seq          uint64                `json:"seq"`
	UpdatedAt    string                `json:"updated_at"`
}
