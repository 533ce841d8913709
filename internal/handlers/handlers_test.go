package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/messhub/ledger/internal/api"
	"github.com/messhub/ledger/internal/auth"
	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/service"
	"github.com/messhub/ledger/internal/service/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func asUser(userID int64) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UserID: userID, Role: models.RoleUser})
}

func asAdmin() context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{UserID: 1, Role: models.RoleAdmin})
}

func rechargeBody(userID, cardID int64, amount, paymentType string) api.CreateRechargeRequestObject {
	return api.CreateRechargeRequestObject{
		Body: &api.CreateRechargeJSONRequestBody{
			UserId:      userID,
			CardId:      cardID,
			Amount:      amount,
			PaymentType: paymentType,
		},
	}
}

func TestCreateRecharge_Success(t *testing.T) {
	mockRecharger := mocks.NewMockRecharger(t)
	handler := NewHandler(mockRecharger, nil, nil, testLogger())

	ref := uuid.New()
	mockRecharger.On("ProcessRecharge", mock.Anything, service.RechargeRequest{
		UserID:      7,
		CardID:      3,
		AmountCents: 5000,
		PaymentType: models.PaymentTypeCash,
	}).Return(&service.RechargeResult{
		RechargeID:            11,
		TransactionID:         12,
		NewBalanceCents:       15000,
		NewLifetimeTotalCents: 25000,
		Reference:             ref,
	}, nil)

	resp, err := handler.CreateRecharge(asUser(7), rechargeBody(7, 3, "50.00", "Cash"))

	require.NoError(t, err)
	created, ok := resp.(api.CreateRecharge201JSONResponse)
	require.True(t, ok)
	assert.Equal(t, int64(11), created.RechargeId)
	assert.Equal(t, int64(12), created.TransactionId)
	assert.Equal(t, "150.00", created.NewBalance)
	assert.Equal(t, "250.00", created.NewLifetimeTotal)
	assert.Equal(t, ref, created.Reference)
}

func TestCreateRecharge_PassesOccurredAt(t *testing.T) {
	mockRecharger := mocks.NewMockRecharger(t)
	handler := NewHandler(mockRecharger, nil, nil, testLogger())

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mockRecharger.On("ProcessRecharge", mock.Anything, mock.MatchedBy(func(req service.RechargeRequest) bool {
		return req.OccurredAt.Equal(at) && req.PaymentType == models.PaymentTypeUPI
	})).Return(&service.RechargeResult{RechargeID: 1, TransactionID: 1}, nil)

	req := rechargeBody(7, 3, "1", "upi")
	req.Body.OccurredAt = &at

	resp, err := handler.CreateRecharge(asAdmin(), req)

	require.NoError(t, err)
	_, ok := resp.(api.CreateRecharge201JSONResponse)
	assert.True(t, ok)
}

func TestCreateRecharge_RejectedBeforeService(t *testing.T) {
	tests := []struct {
		name         string
		ctx          context.Context
		req          api.CreateRechargeRequestObject
		expectedCode int
		expectedKind api.ErrorErrorKind
		expectedErr  string
	}{
		{"no identity", context.Background(), rechargeBody(7, 3, "1.00", "CASH"), http.StatusUnauthorized, api.ErrorKindUnauthorized, "unauthorized"},
		{"other user's card", asUser(8), rechargeBody(7, 3, "1.00", "CASH"), http.StatusForbidden, api.ErrorKindForbidden, "forbidden"},
		{"zero amount", asUser(7), rechargeBody(7, 3, "0", "CASH"), http.StatusBadRequest, api.ErrorKindValidationError, service.ErrCodeInvalidAmount},
		{"negative amount", asUser(7), rechargeBody(7, 3, "-5.00", "CASH"), http.StatusBadRequest, api.ErrorKindValidationError, service.ErrCodeInvalidAmount},
		{"exponent amount", asUser(7), rechargeBody(7, 3, "1e2", "CASH"), http.StatusBadRequest, api.ErrorKindValidationError, service.ErrCodeInvalidAmount},
		{"three decimals", asUser(7), rechargeBody(7, 3, "1.005", "CASH"), http.StatusBadRequest, api.ErrorKindValidationError, service.ErrCodeInvalidAmount},
		{"not a number", asUser(7), rechargeBody(7, 3, "ten", "CASH"), http.StatusBadRequest, api.ErrorKindValidationError, service.ErrCodeInvalidAmount},
		{"unknown payment type", asUser(7), rechargeBody(7, 3, "1.00", "CHEQUE"), http.StatusBadRequest, api.ErrorKindValidationError, service.ErrCodeInvalidPaymentType},
		{"missing body", asUser(7), api.CreateRechargeRequestObject{}, http.StatusBadRequest, api.ErrorKindValidationError, service.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRecharger := mocks.NewMockRecharger(t)
			handler := NewHandler(mockRecharger, nil, nil, testLogger())

			resp, err := handler.CreateRecharge(tt.ctx, tt.req)

			require.NoError(t, err)
			errResp, ok := resp.(api.CreateRechargedefaultJSONResponse)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, errResp.StatusCode)
			assert.Equal(t, tt.expectedKind, errResp.Body.ErrorKind)
			assert.Equal(t, tt.expectedErr, errResp.Body.Code)
			mockRecharger.AssertNotCalled(t, "ProcessRecharge", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRecharge_ServiceErrors(t *testing.T) {
	tests := []struct {
		name         string
		serviceErr   error
		expectedCode int
		expectedKind api.ErrorErrorKind
	}{
		{"owner mismatch", &service.ServiceError{Kind: service.KindValidation, Code: service.ErrCodeCardOwnerMismatch}, http.StatusBadRequest, api.ErrorKindValidationError},
		{"card not found", &service.ServiceError{Kind: service.KindCardNotFound, Code: service.ErrCodeCardNotFound}, http.StatusNotFound, api.ErrorKindCardNotFound},
		{"conflict", &service.ServiceError{Kind: service.KindConflict, Code: service.ErrCodeConflict}, http.StatusConflict, api.ErrorKindConflict},
		{"timed out", &service.ServiceError{Kind: service.KindTimedOut, Code: service.ErrCodeTimedOut}, http.StatusGatewayTimeout, api.ErrorKindTimedOut},
		{"store error", &service.ServiceError{Kind: service.KindStore, Code: service.ErrCodeCommitFailed}, http.StatusInternalServerError, api.ErrorKindStoreError},
		{"unexpected error", errors.New("boom"), http.StatusInternalServerError, api.ErrorKindStoreError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRecharger := mocks.NewMockRecharger(t)
			handler := NewHandler(mockRecharger, nil, nil, testLogger())

			mockRecharger.On("ProcessRecharge", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)

			resp, err := handler.CreateRecharge(asUser(7), rechargeBody(7, 3, "1.00", "CARD"))

			require.NoError(t, err)
			errResp, ok := resp.(api.CreateRechargedefaultJSONResponse)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, errResp.StatusCode)
			assert.Equal(t, tt.expectedKind, errResp.Body.ErrorKind)
		})
	}
}

func TestCreateRecharge_StoreErrorHidesCause(t *testing.T) {
	mockRecharger := mocks.NewMockRecharger(t)
	handler := NewHandler(mockRecharger, nil, nil, testLogger())

	mockRecharger.On("ProcessRecharge", mock.Anything, mock.Anything).Return(nil, &service.ServiceError{
		Kind:    service.KindStore,
		Code:    service.ErrCodeRechargeInsertFailed,
		Message: "could not record the recharge",
		Err:     errors.New(`pq: relation "recharges" does not exist`),
	})

	resp, err := handler.CreateRecharge(asUser(7), rechargeBody(7, 3, "1.00", "CARD"))

	require.NoError(t, err)
	errResp := resp.(api.CreateRechargedefaultJSONResponse)
	assert.Equal(t, "could not record the recharge", errResp.Body.Message)
	assert.NotContains(t, errResp.Body.Message, "pq:")
}

func TestGetRecharge(t *testing.T) {
	txID := int64(21)
	details := &service.RechargeDetails{
		Recharge: &models.Recharge{
			ID:            20,
			UserID:        7,
			CardID:        3,
			AmountCents:   1250,
			Type:          models.PaymentTypeCard,
			TransactionID: &txID,
			Reference:     uuid.New(),
		},
		Transaction: &models.Transaction{ID: txID, RechargeID: 20},
	}

	t.Run("owner", func(t *testing.T) {
		mockReader := mocks.NewMockLedgerReader(t)
		handler := NewHandler(nil, mockReader, nil, testLogger())
		mockReader.On("GetRecharge", mock.Anything, int64(20)).Return(details, nil)

		resp, err := handler.GetRecharge(asUser(7), api.GetRechargeRequestObject{RechargeId: 20})

		require.NoError(t, err)
		ok, isOK := resp.(api.GetRecharge200JSONResponse)
		require.True(t, isOK)
		assert.Equal(t, int64(21), ok.TransactionId)
		assert.Equal(t, "12.50", ok.Amount)
		assert.Equal(t, api.CARD, ok.PaymentType)
	})

	t.Run("another user", func(t *testing.T) {
		mockReader := mocks.NewMockLedgerReader(t)
		handler := NewHandler(nil, mockReader, nil, testLogger())
		mockReader.On("GetRecharge", mock.Anything, int64(20)).Return(details, nil)

		resp, err := handler.GetRecharge(asUser(9), api.GetRechargeRequestObject{RechargeId: 20})

		require.NoError(t, err)
		errResp, isErr := resp.(api.GetRechargedefaultJSONResponse)
		require.True(t, isErr)
		assert.Equal(t, http.StatusForbidden, errResp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockReader := mocks.NewMockLedgerReader(t)
		handler := NewHandler(nil, mockReader, nil, testLogger())
		mockReader.On("GetRecharge", mock.Anything, int64(99)).
			Return(nil, &service.ServiceError{Kind: service.KindNotFound, Code: service.ErrCodeRechargeNotFound})

		resp, err := handler.GetRecharge(asAdmin(), api.GetRechargeRequestObject{RechargeId: 99})

		require.NoError(t, err)
		errResp, isErr := resp.(api.GetRechargedefaultJSONResponse)
		require.True(t, isErr)
		assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
		assert.Equal(t, service.ErrCodeRechargeNotFound, errResp.Body.Code)
	})
}

func TestGetCard(t *testing.T) {
	expires := time.Date(2030, 6, 30, 0, 0, 0, 0, time.UTC)
	card := &models.Card{
		ID:                 3,
		OwnerUserID:        7,
		Status:             models.CardStatusActive,
		BalanceCents:       10050,
		LifetimeTotalCents: 20000,
		ExpiresAt:          &expires,
	}

	mockReader := mocks.NewMockLedgerReader(t)
	handler := NewHandler(nil, mockReader, nil, testLogger())
	mockReader.On("GetCard", mock.Anything, int64(3)).Return(card, nil)

	resp, err := handler.GetCard(asUser(7), api.GetCardRequestObject{CardId: 3})
	require.NoError(t, err)
	got, ok := resp.(api.GetCard200JSONResponse)
	require.True(t, ok)
	assert.Equal(t, "100.50", got.Balance)
	assert.Equal(t, "200.00", got.LifetimeTotal)
	assert.Equal(t, api.CardStatusACTIVE, got.Status)
	require.NotNil(t, got.ExpiresAt)
	assert.Equal(t, "2030-06-30", got.ExpiresAt.String())

	resp, err = handler.GetCard(asUser(8), api.GetCardRequestObject{CardId: 3})
	require.NoError(t, err)
	errResp, ok := resp.(api.GetCarddefaultJSONResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, errResp.StatusCode)
}

func TestGetCard_NotFound(t *testing.T) {
	mockReader := mocks.NewMockLedgerReader(t)
	handler := NewHandler(nil, mockReader, nil, testLogger())
	mockReader.On("GetCard", mock.Anything, int64(404)).
		Return(nil, &service.ServiceError{Kind: service.KindCardNotFound, Code: service.ErrCodeCardNotFound, Message: "card not found"})

	resp, err := handler.GetCard(asAdmin(), api.GetCardRequestObject{CardId: 404})

	require.NoError(t, err)
	errResp, ok := resp.(api.GetCarddefaultJSONResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
	assert.Equal(t, api.ErrorKindCardNotFound, errResp.Body.ErrorKind)
}

func TestListCardRecharges(t *testing.T) {
	txID := int64(2)
	recharges := []*models.Recharge{
		{ID: 1, UserID: 7, CardID: 3, AmountCents: 100, Type: models.PaymentTypeCash, TransactionID: &txID},
	}

	t.Run("admin skips ownership lookup", func(t *testing.T) {
		mockReader := mocks.NewMockLedgerReader(t)
		handler := NewHandler(nil, mockReader, nil, testLogger())
		mockReader.On("ListCardRecharges", mock.Anything, int64(3), 5).Return(recharges, nil)

		limit := 5
		resp, err := handler.ListCardRecharges(asAdmin(), api.ListCardRechargesRequestObject{
			CardId: 3,
			Params: api.ListCardRechargesParams{Limit: &limit},
		})

		require.NoError(t, err)
		got, ok := resp.(api.ListCardRecharges200JSONResponse)
		require.True(t, ok)
		require.Len(t, got.Recharges, 1)
		assert.Equal(t, "1.00", got.Recharges[0].Amount)
		mockReader.AssertNotCalled(t, "GetCard", mock.Anything, mock.Anything)
	})

	t.Run("owner", func(t *testing.T) {
		mockReader := mocks.NewMockLedgerReader(t)
		handler := NewHandler(nil, mockReader, nil, testLogger())
		mockReader.On("GetCard", mock.Anything, int64(3)).Return(&models.Card{ID: 3, OwnerUserID: 7}, nil)
		mockReader.On("ListCardRecharges", mock.Anything, int64(3), 0).Return([]*models.Recharge{}, nil)

		resp, err := handler.ListCardRecharges(asUser(7), api.ListCardRechargesRequestObject{CardId: 3})

		require.NoError(t, err)
		got, ok := resp.(api.ListCardRecharges200JSONResponse)
		require.True(t, ok)
		assert.NotNil(t, got.Recharges)
		assert.Empty(t, got.Recharges)
	})

	t.Run("another user", func(t *testing.T) {
		mockReader := mocks.NewMockLedgerReader(t)
		handler := NewHandler(nil, mockReader, nil, testLogger())
		mockReader.On("GetCard", mock.Anything, int64(3)).Return(&models.Card{ID: 3, OwnerUserID: 7}, nil)

		resp, err := handler.ListCardRecharges(asUser(8), api.ListCardRechargesRequestObject{CardId: 3})

		require.NoError(t, err)
		errResp, ok := resp.(api.ListCardRechargesdefaultJSONResponse)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, errResp.StatusCode)
	})
}

func TestGetHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		checker := mocks.NewMockHealthChecker(t)
		handler := NewHandler(nil, nil, checker, testLogger())
		checker.On("PingContext", mock.Anything).Return(nil)

		resp, err := handler.GetHealth(context.Background(), api.GetHealthRequestObject{})

		require.NoError(t, err)
		got, ok := resp.(api.GetHealth200JSONResponse)
		require.True(t, ok)
		assert.Equal(t, api.Healthy, got.Status)
	})

	t.Run("database down", func(t *testing.T) {
		checker := mocks.NewMockHealthChecker(t)
		handler := NewHandler(nil, nil, checker, testLogger())
		checker.On("PingContext", mock.Anything).Return(errors.New("connection refused"))

		resp, err := handler.GetHealth(context.Background(), api.GetHealthRequestObject{})

		require.NoError(t, err)
		got, ok := resp.(api.GetHealth503JSONResponse)
		require.True(t, ok)
		assert.Equal(t, api.Unhealthy, got.Status)
	})
}
