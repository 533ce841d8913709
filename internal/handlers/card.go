package handlers

import (
	"context"

	"github.com/messhub/ledger/internal/api"
	"github.com/messhub/ledger/internal/auth"
)

// GetCard handles GET /api/v1/cards/{cardId}
func (h *Handler) GetCard(
	ctx context.Context,
	request api.GetCardRequestObject,
) (api.GetCardResponseObject, error) {
	caller, ok := auth.FromContext(ctx)
	if !ok {
		status, body := unauthorized()
		return api.GetCarddefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	card, err := h.reader.GetCard(ctx, request.CardId)
	if err != nil {
		status, body := h.errorResponse(err, "GetCard")
		return api.GetCarddefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	if !caller.CanActFor(card.OwnerUserID) {
		status, body := forbidden("callers may only read their own cards")
		return api.GetCarddefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	return api.GetCard200JSONResponse(toAPICard(card)), nil
}

// ListCardRecharges handles GET /api/v1/cards/{cardId}/recharges
func (h *Handler) ListCardRecharges(
	ctx context.Context,
	request api.ListCardRechargesRequestObject,
) (api.ListCardRechargesResponseObject, error) {
	caller, ok := auth.FromContext(ctx)
	if !ok {
		status, body := unauthorized()
		return api.ListCardRechargesdefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	if !caller.IsAdmin() {
		card, err := h.reader.GetCard(ctx, request.CardId)
		if err != nil {
			status, body := h.errorResponse(err, "ListCardRecharges")
			return api.ListCardRechargesdefaultJSONResponse{StatusCode: status, Body: body}, nil
		}
		if card.OwnerUserID != caller.UserID {
			status, body := forbidden("callers may only read their own cards")
			return api.ListCardRechargesdefaultJSONResponse{StatusCode: status, Body: body}, nil
		}
	}

	var limit int
	if request.Params.Limit != nil {
		limit = *request.Params.Limit
	}

	recharges, err := h.reader.ListCardRecharges(ctx, request.CardId, limit)
	if err != nil {
		status, body := h.errorResponse(err, "ListCardRecharges")
		return api.ListCardRechargesdefaultJSONResponse{StatusCode: status, Body: body}, nil
	}

	out := api.ListCardRecharges200JSONResponse{Recharges: make([]api.Recharge, 0, len(recharges))}
	for _, r := range recharges {
		out.Recharges = append(out.Recharges, toAPIRecharge(r))
	}
	return out, nil
}
