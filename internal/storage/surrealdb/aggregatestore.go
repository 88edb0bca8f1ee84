package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/10543610-ai/WealthFlow-AI/internal/common"
	"github.com/10543610-ai/WealthFlow-AI/internal/interfaces"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
	"github.com/10543610-ai/WealthFlow-AI/internal/storage"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// AggregateStore persists one financial document per identity in the
// aggregate table, keyed by user ID.
type AggregateStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewAggregateStore(db *surrealdb.DB, logger *common.Logger) *AggregateStore {
	return &AggregateStore{
		db:     db,
		logger: logger,
	}
}

// aggregateDocument is the stored shape. Seq and UpdatedAt ride along
// with each merge so concurrent flushes resolve last-write-wins.
type aggregateDocument struct {
	UserID       string                `json:"user_id"`
	Accounts     []models.Account      `json:"accounts"`
	Transactions []models.Transaction  `json:"transactions"`
	Stocks       []models.StockHolding `json:"stocks"`
	Seq          uint64                `json:"seq"`
	UpdatedAt    string                `json:"updated_at"`
}

func (s *AggregateStore) Read(ctx context.Context, userID string) (*models.Aggregate, error) {
	doc, err := surrealdb.Select[aggregateDocument](ctx, s.db, surrealmodels.NewRecordID("aggregate", userID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("aggregate %s: %w", userID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to select aggregate: %w", err)
	}
	if doc == nil || doc.UserID == "" {
		return nil, fmt.Errorf("aggregate %s: %w", userID, storage.ErrNotFound)
	}
	return &models.Aggregate{
		Accounts:     doc.Accounts,
		Transactions: doc.Transactions,
		Stocks:       doc.Stocks,
	}, nil
}

// Merge upserts the document with MERGE semantics: fields absent from
// the write survive server-side. The flush path never issues a
// destructive replace.
//
// Writes are ordered by updated_at: a write stamped before the stored
// document is dropped without touching it, so a superseded flush can
// never regress the aggregate. The write is attempted once; the caller
// owns failure handling.
func (s *AggregateStore) Merge(ctx context.Context, userID string, write *interfaces.AggregateWrite) error {
	rid := surrealmodels.NewRecordID("aggregate", userID)

	current, err := surrealdb.Select[aggregateDocument](ctx, s.db, rid)
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to read aggregate before merge: %w", err)
	}
	if current != nil && staleWrite(current.UpdatedAt, write.UpdatedAt) {
		s.logger.Warn().
			Str("user_id", userID).
			Str("stored_updated_at", current.UpdatedAt).
			Str("write_updated_at", write.UpdatedAt).
			Msg("Stale aggregate write dropped")
		return nil
	}

	sql := "UPSERT $rid MERGE $doc"
	doc := aggregateDocument{
		UserID:       userID,
		Accounts:     write.Accounts,
		Transactions: write.Transactions,
		Stocks:       write.Stocks,
		Seq:          write.Seq,
		UpdatedAt:    write.UpdatedAt,
	}
	vars := map[string]any{"rid": rid, "doc": doc}

	if _, err := surrealdb.Query[[]aggregateDocument](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to merge aggregate: %w", err)
	}
	return nil
}

// staleWrite reports whether a write stamped at writeAt would regress a
// document stored at storedAt. Equal stamps are writable; Seq is
// session-local, so the wall-clock stamp is the cross-session order.
func staleWrite(storedAt, writeAt string) bool {
	stored, err := time.Parse(time.RFC3339, storedAt)
	if err != nil {
		return false
	}
	incoming, err := time.Parse(time.RFC3339, writeAt)
	if err != nil {
		return false
	}
	return incoming.Before(stored)
}
