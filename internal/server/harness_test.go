package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/10543610-ai/WealthFlow-AI/internal/app"
	"github.com/10543610-ai/WealthFlow-AI/internal/common"
	"github.com/10543610-ai/WealthFlow-AI/internal/interfaces"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
	"github.com/10543610-ai/WealthFlow-AI/internal/services/advisor"
	"github.com/10543610-ai/WealthFlow-AI/internal/session"
	"github.com/10543610-ai/WealthFlow-AI/internal/storage"
)

// --- in-memory storage fakes ---

type memIdentityStore struct {
	mu   sync.Mutex
	recs map[string]*models.IdentityRecord
}

func newMemIdentityStore() *memIdentityStore {
	return &memIdentityStore{recs: make(map[string]*models.IdentityRecord)}
}

func (m *memIdentityStore) GetIdentity(_ context.Context, userID string) (*models.IdentityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.recs[userID]
	if !ok {
		return nil, fmt.Errorf("identity %s: %w", userID, storage.ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (m *memIdentityStore) GetIdentityByEmail(_ context.Context, email string) (*models.IdentityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.recs {
		if rec.Email == email {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("identity email %s: %w", email, storage.ErrNotFound)
}

func (m *memIdentityStore) SaveIdentity(_ context.Context, rec *models.IdentityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.recs[rec.UserID] = &cp
	return nil
}

func (m *memIdentityStore) DeleteIdentity(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, userID)
	return nil
}

type memAggregateStore struct {
	mu     sync.Mutex
	docs   map[string]*models.Aggregate
	merges int
}

func newMemAggregateStore() *memAggregateStore {
	return &memAggregateStore{docs: make(map[string]*models.Aggregate)}
}

func (m *memAggregateStore) Read(_ context.Context, userID string) (*models.Aggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agg, ok := m.docs[userID]
	if !ok {
		return nil, fmt.Errorf("aggregate %s: %w", userID, storage.ErrNotFound)
	}
	return agg.Clone(), nil
}

func (m *memAggregateStore) Merge(_ context.Context, userID string, write *interfaces.AggregateWrite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.merges++
	m.docs[userID] = &models.Aggregate{
		Accounts:     write.Accounts,
		Transactions: write.Transactions,
		Stocks:       write.Stocks,
	}
	return nil
}

type memStorageManager struct {
	identities *memIdentityStore
	aggregates *memAggregateStore
}

func newMemStorageManager() *memStorageManager {
	return &memStorageManager{
		identities: newMemIdentityStore(),
		aggregates: newMemAggregateStore(),
	}
}

func (m *memStorageManager) IdentityStore() interfaces.IdentityStore   { return m.identities }
func (m *memStorageManager) AggregateStore() interfaces.AggregateStore { return m.aggregates }
func (m *memStorageManager) Close() error                              { return nil }

// --- test server ---

func newTestServer(t *testing.T) (*Server, *memStorageManager) {
	t.Helper()

	config := common.NewDefaultConfig()
	config.Auth.JWTSecret = "test-secret-key"
	config.Sync.Debounce = "20ms"

	logger := common.NewSilentLogger()
	storageManager := newMemStorageManager()

	a := &app.App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		Advisor:     advisor.NewService(nil, config, logger),
		Sessions:    session.NewManager(storageManager.AggregateStore(), logger, config.Sync.GetDebounce()),
		StartupTime: time.Now(),
	}

	return NewServer(a), storageManager
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
}

// registerIdentity creates an identity through the API and returns its token.
func registerIdentity(t *testing.T, h http.Handler, name, email string) string {
	t.Helper()

	rr := doJSON(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "correct-horse-battery",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rr, &resp)
	if resp.Token == "" {
		t.Fatal("expected a token from register")
	}
	return resp.Token
}
