//nolint:errcheck // unchecked errors are acceptable in test files
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/messhub/ledger/internal/auth"
	"github.com/messhub/ledger/internal/config"
	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/repository"
	"github.com/messhub/ledger/internal/service"
)

const testJWTSecret = "test-secret"

// TestServer wraps the HTTP test server and database for end-to-end tests.
type TestServer struct {
	Server   *httptest.Server
	Database *db.DB
	Admin    *service.AdminService
	Tokens   *auth.Tokens
}

// SetupTest creates a test server over a fresh, migrated SQLite database.
func SetupTest(t *testing.T) *TestServer {
	t.Helper()
	return setupWithConfig(t, func(*config.Config) {})
}

func setupWithConfig(t *testing.T, adjust func(*config.Config)) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.App.RetryBackoff = time.Millisecond
	adjust(cfg)

	database := db.NewTestDB(t)

	router, err := NewRouter(database, cfg, testLogger())
	require.NoError(t, err, "failed to build router")

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{
		Server:   server,
		Database: database,
		Admin:    service.NewAdminService(repository.NewUserRepository(database), repository.NewCardRepository(database)),
		Tokens:   auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
	}
}

// URL returns the full URL for a given path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// SeedCard creates a user owning one card with the given balance
func (ts *TestServer) SeedCard(t *testing.T, balanceCents int64) (*models.User, *models.Card) {
	t.Helper()
	ctx := context.Background()

	user, err := ts.Admin.AddUser(ctx, "user-"+uuid.NewString(), models.RoleUser)
	require.NoError(t, err)

	card, err := ts.Admin.IssueCard(ctx, service.IssueCardRequest{OwnerUserID: user.ID, BalanceCents: balanceCents})
	require.NoError(t, err)

	return user, card
}

// Token signs a bearer token for the user
func (ts *TestServer) Token(t *testing.T, userID int64, role models.Role) string {
	t.Helper()

	token, err := ts.Tokens.Issue(userID, role, time.Hour)
	require.NoError(t, err)
	return token
}

// Recharge sends a POST request to recharge a card.
func (ts *TestServer) Recharge(t *testing.T, token string, body map[string]any, idempotencyKey string) *http.Response {
	t.Helper()

	jsonBody, _ := json.Marshal(body)

	req, err := http.NewRequest(http.MethodPost, ts.URL("/api/v1/recharges"), bytes.NewReader(jsonBody))
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

// Get sends an authenticated GET request.
func (ts *TestServer) Get(t *testing.T, token, path string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL(path), nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	return resp
}

func rechargePayload(user *models.User, card *models.Card, amount, paymentType string) map[string]any {
	return map[string]any{
		"user_id":      user.ID,
		"card_id":      card.ID,
		"amount":       amount,
		"payment_type": paymentType,
	}
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
