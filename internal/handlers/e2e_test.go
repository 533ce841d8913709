//nolint:errcheck // unchecked errors are acceptable in test files
package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messhub/ledger/internal/config"
	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/repository"
)

func assertLinksIntact(t *testing.T, ts *TestServer) {
	t.Helper()

	auditor := repository.NewLinkageAuditor(ts.Database)
	incomplete, err := auditor.FindIncompleteRecharges(context.Background())
	require.NoError(t, err)
	assert.Empty(t, incomplete)

	broken, err := auditor.FindBrokenLinks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, broken)
}

func TestRechargeAndRead(t *testing.T) {
	ts := SetupTest(t)
	user, card := ts.SeedCard(t, 10000)
	token := ts.Token(t, user.ID, models.RoleUser)

	resp := ts.Recharge(t, token, rechargePayload(user, card, "50.00", "Cash"), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)

	assert.Equal(t, "150.00", created["new_balance"])
	assert.Equal(t, "150.00", created["new_lifetime_total"])
	assert.NotEmpty(t, created["reference"])
	rechargeID := int64(created["recharge_id"].(float64))
	transactionID := int64(created["transaction_id"].(float64))

	cardResp := ts.Get(t, token, fmt.Sprintf("/api/v1/cards/%d", card.ID))
	require.Equal(t, http.StatusOK, cardResp.StatusCode)
	cardBody := decodeBody(t, cardResp)
	assert.Equal(t, "150.00", cardBody["balance"])
	assert.Equal(t, "150.00", cardBody["lifetime_total"])
	assert.Equal(t, float64(rechargeID), cardBody["last_recharge_id"])

	rechargeResp := ts.Get(t, token, fmt.Sprintf("/api/v1/recharges/%d", rechargeID))
	require.Equal(t, http.StatusOK, rechargeResp.StatusCode)
	rechargeBody := decodeBody(t, rechargeResp)
	assert.Equal(t, float64(transactionID), rechargeBody["transaction_id"])
	assert.Equal(t, "50.00", rechargeBody["amount"])
	assert.Equal(t, "CASH", rechargeBody["payment_type"])

	listResp := ts.Get(t, token, fmt.Sprintf("/api/v1/cards/%d/recharges?limit=10", card.ID))
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	listBody := decodeBody(t, listResp)
	assert.Len(t, listBody["recharges"], 1)

	assertLinksIntact(t, ts)
}

func TestRecharge_Rejections(t *testing.T) {
	ts := SetupTest(t)
	user, card := ts.SeedCard(t, 10000)
	other, _ := ts.SeedCard(t, 0)
	token := ts.Token(t, user.ID, models.RoleUser)

	tests := []struct {
		name       string
		token      string
		payload    map[string]any
		wantStatus int
		wantKind   string
		wantCode   string
	}{
		{
			name:       "zero amount",
			token:      token,
			payload:    rechargePayload(user, card, "0", "CASH"),
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
			wantCode:   "invalid_amount",
		},
		{
			name:       "too many decimals",
			token:      token,
			payload:    rechargePayload(user, card, "1.999", "CASH"),
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
			wantCode:   "invalid_amount",
		},
		{
			name:       "amount in exponent notation",
			token:      token,
			payload:    rechargePayload(user, card, "1e10000000", "CASH"),
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
			wantCode:   "invalid_request",
		},
		{
			name:       "unknown payment type",
			token:      token,
			payload:    rechargePayload(user, card, "1.00", "BARTER"),
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
			wantCode:   "invalid_payment_type",
		},
		{
			name:       "amount sent as number",
			token:      token,
			payload:    map[string]any{"user_id": user.ID, "card_id": card.ID, "amount": 5, "payment_type": "CASH"},
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
			wantCode:   "invalid_request",
		},
		{
			name:       "unknown card",
			token:      token,
			payload:    map[string]any{"user_id": user.ID, "card_id": 999999, "amount": "1.00", "payment_type": "CASH"},
			wantStatus: http.StatusNotFound,
			wantKind:   "card_not_found",
			wantCode:   "card_not_found",
		},
		{
			name:       "user does not own the card",
			token:      ts.Token(t, other.ID, models.RoleUser),
			payload:    rechargePayload(other, card, "1.00", "CASH"),
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation_error",
			wantCode:   "card_owner_mismatch",
		},
		{
			name:       "recharging for another user",
			token:      ts.Token(t, other.ID, models.RoleUser),
			payload:    rechargePayload(user, card, "1.00", "CASH"),
			wantStatus: http.StatusForbidden,
			wantKind:   "forbidden",
			wantCode:   "forbidden",
		},
		{
			name:       "no token",
			token:      "",
			payload:    rechargePayload(user, card, "1.00", "CASH"),
			wantStatus: http.StatusUnauthorized,
			wantKind:   "unauthorized",
			wantCode:   "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Recharge(t, tt.token, tt.payload, "")
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeBody(t, resp)
			assert.Equal(t, tt.wantKind, body["error_kind"])
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}

	cardResp := ts.Get(t, token, fmt.Sprintf("/api/v1/cards/%d", card.ID))
	cardBody := decodeBody(t, cardResp)
	assert.Equal(t, "100.00", cardBody["balance"], "rejected recharges must not move the balance")
	assert.Nil(t, cardBody["last_recharge_id"])

	assertLinksIntact(t, ts)
}

func TestRecharge_AdminForAnyUser(t *testing.T) {
	ts := SetupTest(t)
	user, card := ts.SeedCard(t, 0)
	admin, err := ts.Admin.AddUser(context.Background(), "cashier", models.RoleAdmin)
	require.NoError(t, err)

	resp := ts.Recharge(t, ts.Token(t, admin.ID, models.RoleAdmin), rechargePayload(user, card, "20", "upi"), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "20.00", body["new_balance"])
}

func TestRecharge_IdempotentReplay(t *testing.T) {
	ts := SetupTest(t)
	user, card := ts.SeedCard(t, 0)
	token := ts.Token(t, user.ID, models.RoleUser)

	first := ts.Recharge(t, token, rechargePayload(user, card, "10.00", "CARD"), "replay-key")
	require.Equal(t, http.StatusCreated, first.StatusCode)
	firstBody, _ := io.ReadAll(first.Body)
	first.Body.Close()

	second := ts.Recharge(t, token, rechargePayload(user, card, "10.00", "CARD"), "replay-key")
	require.Equal(t, http.StatusCreated, second.StatusCode)
	assert.Equal(t, "true", second.Header.Get("X-Idempotent-Replayed"))
	secondBody, _ := io.ReadAll(second.Body)
	second.Body.Close()
	assert.JSONEq(t, string(firstBody), string(secondBody))

	reused := ts.Recharge(t, token, rechargePayload(user, card, "99.00", "CARD"), "replay-key")
	assert.Equal(t, http.StatusUnprocessableEntity, reused.StatusCode)
	reusedBody := decodeBody(t, reused)
	assert.Equal(t, "idempotency_key_reused", reusedBody["code"])

	cardBody := decodeBody(t, ts.Get(t, token, fmt.Sprintf("/api/v1/cards/%d", card.ID)))
	assert.Equal(t, "10.00", cardBody["balance"], "replay must not recharge twice")
}

func TestRecharge_ConcurrentRequests(t *testing.T) {
	ts := SetupTest(t)
	user, card := ts.SeedCard(t, 0)
	token := ts.Token(t, user.ID, models.RoleUser)

	const workers = 10
	var wg sync.WaitGroup
	statuses := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := ts.Recharge(t, token, rechargePayload(user, card, "1.00", "CASH"), "")
			statuses <- resp.StatusCode
			resp.Body.Close()
		}()
	}
	wg.Wait()
	close(statuses)

	for status := range statuses {
		assert.Equal(t, http.StatusCreated, status)
	}

	cardBody := decodeBody(t, ts.Get(t, token, fmt.Sprintf("/api/v1/cards/%d", card.ID)))
	assert.Equal(t, "10.00", cardBody["balance"])
	assert.Equal(t, "10.00", cardBody["lifetime_total"])

	listBody := decodeBody(t, ts.Get(t, token, fmt.Sprintf("/api/v1/cards/%d/recharges?limit=100", card.ID)))
	assert.Len(t, listBody["recharges"], workers)

	assertLinksIntact(t, ts)
}

func TestReads_NotFoundAndForbidden(t *testing.T) {
	ts := SetupTest(t)
	user, card := ts.SeedCard(t, 0)
	other, _ := ts.SeedCard(t, 0)
	token := ts.Token(t, user.ID, models.RoleUser)

	resp := ts.Get(t, token, "/api/v1/recharges/424242")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "recharge_not_found", decodeBody(t, resp)["code"])

	resp = ts.Get(t, ts.Token(t, other.ID, models.RoleUser), fmt.Sprintf("/api/v1/cards/%d", card.ID))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = ts.Get(t, token, "/api/v1/cards/not-a-number")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_request", decodeBody(t, resp)["code"])
}

func TestAuthDisabled(t *testing.T) {
	ts := setupWithConfig(t, func(cfg *config.Config) {
		cfg.Auth.Enabled = false
	})
	user, card := ts.SeedCard(t, 0)

	resp := ts.Recharge(t, "", rechargePayload(user, card, "3.50", "CASH"), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "3.50", decodeBody(t, resp)["new_balance"])
}

func TestPublicEndpoints(t *testing.T) {
	ts := SetupTest(t)

	resp := ts.Get(t, "", "/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decodeBody(t, resp)["status"])

	resp = ts.Get(t, "", "/docs/openapi")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// one recharge so the recharge collectors have samples
	user, card := ts.SeedCard(t, 0)
	rresp := ts.Recharge(t, ts.Token(t, user.ID, models.RoleUser), rechargePayload(user, card, "1.00", "CASH"), "")
	require.Equal(t, http.StatusCreated, rresp.StatusCode)
	rresp.Body.Close()

	resp = ts.Get(t, "", "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	metricsBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(metricsBody), "messledger_recharge_requests_total")
	assert.Contains(t, string(metricsBody), "messledger_http_request_duration_seconds")
}
