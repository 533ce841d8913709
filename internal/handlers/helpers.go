package handlers

import (
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/messhub/ledger/internal/api"
	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/service"
)

// Error codes produced by the HTTP layer itself
const (
	errCodeUnauthorized = "unauthorized"
	errCodeForbidden    = "forbidden"
)

func statusForKind(kind string) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindCardNotFound, service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	case service.KindTimedOut:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse maps err to a status and a body that never carries driver text
func (h *Handler) errorResponse(err error, op string) (int, api.Error) {
	svcErr := extractServiceError(err)
	if svcErr == nil {
		h.logger.Error("unexpected error", "operation", op, "error", err)
		return http.StatusInternalServerError, api.Error{
			ErrorKind: api.ErrorKindStoreError,
			Code:      service.ErrCodeInternalError,
			Message:   "internal error",
		}
	}

	status := statusForKind(svcErr.Kind)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "operation", op, "code", svcErr.Code, "error", svcErr.Err)
	}

	return status, api.Error{
		ErrorKind: api.ErrorErrorKind(svcErr.Kind),
		Code:      svcErr.Code,
		Message:   svcErr.Message,
	}
}

func unauthorized() (int, api.Error) {
	return http.StatusUnauthorized, api.Error{
		ErrorKind: api.ErrorKindUnauthorized,
		Code:      errCodeUnauthorized,
		Message:   "caller identity is missing",
	}
}

func forbidden(message string) (int, api.Error) {
	return http.StatusForbidden, api.Error{
		ErrorKind: api.ErrorKindForbidden,
		Code:      errCodeForbidden,
		Message:   message,
	}
}

func invalid(code, message string) (int, api.Error) {
	return http.StatusBadRequest, api.Error{
		ErrorKind: api.ErrorKindValidationError,
		Code:      code,
		Message:   message,
	}
}

func toAPICard(card *models.Card) api.Card {
	out := api.Card{
		Id:             card.ID,
		OwnerUserId:    card.OwnerUserID,
		Status:         api.CardStatus(card.Status),
		Balance:        service.FormatCents(card.BalanceCents),
		LifetimeTotal:  service.FormatCents(card.LifetimeTotalCents),
		LastRechargeId: card.LastRechargeID,
	}
	if card.ExpiresAt != nil {
		out.ExpiresAt = &openapi_types.Date{Time: *card.ExpiresAt}
	}
	return out
}

// toAPIRecharge renders a completed recharge
func toAPIRecharge(r *models.Recharge) api.Recharge {
	var transactionID int64
	if r.TransactionID != nil {
		transactionID = *r.TransactionID
	}
	return api.Recharge{
		Id:            r.ID,
		UserId:        r.UserID,
		CardId:        r.CardID,
		TransactionId: transactionID,
		Amount:        service.FormatCents(r.AmountCents),
		PaymentType:   api.RechargePaymentType(r.Type),
		Reference:     r.Reference,
		OccurredAt:    r.OccurredAt,
		CreatedAt:     r.CreatedAt,
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}
