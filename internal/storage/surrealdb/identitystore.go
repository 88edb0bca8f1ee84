package surrealdb

import (
	"context"
	"fmt"

	"github.com/10543610-ai/WealthFlow-AI/internal/common"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
	"github.com/10543610-ai/WealthFlow-AI/internal/storage"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// IdentityStore persists registered identities in the identity table,
// keyed by user ID.
type IdentityStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewIdentityStore(db *surrealdb.DB, logger *common.Logger) *IdentityStore {
	return &IdentityStore{
		db:     db,
		logger: logger,
	}
}

func (s *IdentityStore) GetIdentity(ctx context.Context, userID string) (*models.IdentityRecord, error) {
	record, err := surrealdb.Select[models.IdentityRecord](ctx, s.db, surrealmodels.NewRecordID("identity", userID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("identity %s: %w", userID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to select identity: %w", err)
	}
	if record == nil || record.UserID == "" {
		return nil, fmt.Errorf("identity %s: %w", userID, storage.ErrNotFound)
	}
	return record, nil
}

func (s *IdentityStore) GetIdentityByEmail(ctx context.Context, email string) (*models.IdentityRecord, error) {
	sql := "SELECT * FROM identity WHERE email = $email LIMIT 1"
	vars := map[string]any{"email": email}

	results, err := surrealdb.Query[[]models.IdentityRecord](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query identity by email: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return &(*results)[0].Result[0], nil
	}
	return nil, fmt.Errorf("identity email %s: %w", email, storage.ErrNotFound)
}

func (s *IdentityStore) SaveIdentity(ctx context.Context, record *models.IdentityRecord) error {
	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{"rid": surrealmodels.NewRecordID("identity", record.UserID), "record": record}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[[]models.IdentityRecord](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save identity after retries: %w", lastErr)
}

func (s *IdentityStore) DeleteIdentity(ctx context.Context, userID string) error {
	_, err := surrealdb.Delete[models.IdentityRecord](ctx, s.db, surrealmodels.NewRecordID("identity", userID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return nil
}
