package handlers

import (
	"context"

	"github.com/messhub/ledger/internal/api"
	"github.com/messhub/ledger/internal/auth"
	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/service"
)

// CreateRecharge handles POST /api/v1/recharges
func (h *Handler) CreateRecharge(
	ctx context.Context,
	request api.CreateRechargeRequestObject,
) (api.CreateRechargeResponseObject, error) {
	caller, ok := auth.FromContext(ctx)
	if !ok {
		status, body := unauthorized()
		return api.CreateRechargedefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	req, status, body, ok := h.parseRecharge(caller, request.Body)
	if !ok {
		return api.CreateRechargedefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	result, err := h.recharger.ProcessRecharge(ctx, req)
	if err != nil {
		status, body := h.errorResponse(err, "CreateRecharge")
		return api.CreateRechargedefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	return api.CreateRecharge201JSONResponse{
		RechargeId:       result.RechargeID,
		TransactionId:    result.TransactionID,
		Reference:        result.Reference,
		NewBalance:       service.FormatCents(result.NewBalanceCents),
		NewLifetimeTotal: service.FormatCents(result.NewLifetimeTotalCents),
	}, nil
}

// parseRecharge turns the wire body into a service request on behalf of caller
func (h *Handler) parseRecharge(caller auth.Identity, body *api.RechargeRequest) (service.RechargeRequest, int, api.Error, bool) {
	if body == nil {
		status, errBody := invalid(service.ErrCodeInvalidRequest, "request body is required")
		return service.RechargeRequest{}, status, errBody, false
	}

	if !caller.CanActFor(body.UserId) {
		status, errBody := forbidden("callers may only recharge their own cards")
		return service.RechargeRequest{}, status, errBody, false
	}

	amount, err := service.ParseAmount(body.Amount)
	if err != nil {
		status, errBody := invalid(service.ErrCodeInvalidAmount, err.Error())
		return service.RechargeRequest{}, status, errBody, false
	}

	paymentType, err := models.ParsePaymentType(body.PaymentType)
	if err != nil {
		status, errBody := invalid(service.ErrCodeInvalidPaymentType, "payment type must be one of CASH, CARD, UPI")
		return service.RechargeRequest{}, status, errBody, false
	}

	req := service.RechargeRequest{
		UserID:      body.UserId,
		CardID:      body.CardId,
		AmountCents: amount,
		PaymentType: paymentType,
	}
	if body.OccurredAt != nil {
		req.OccurredAt = *body.OccurredAt
	}

	return req, 0, api.Error{}, true
}

// GetRecharge handles GET /api/v1/recharges/{rechargeId}
func (h *Handler) GetRecharge(
	ctx context.Context,
	request api.GetRechargeRequestObject,
) (api.GetRechargeResponseObject, error) {
	caller, ok := auth.FromContext(ctx)
	if !ok {
		status, body := unauthorized()
		return api.GetRechargedefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	details, err := h.reader.GetRecharge(ctx, request.RechargeId)
	if err != nil {
		status, body := h.errorResponse(err, "GetRecharge")
		return api.GetRechargedefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	if !caller.CanActFor(details.Recharge.UserID) {
		status, body := forbidden("callers may only read their own recharges")
		return api.GetRechargedefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	return api.GetRecharge200JSONResponse(toAPIRecharge(details.Recharge)), nil
}
