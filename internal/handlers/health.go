package handlers

import (
	"context"
	"time"

	"github.com/messhub/ledger/internal/api"
)

// healthTimeout bounds the database ping of a health check
const healthTimeout = 2 * time.Second

// GetHealth handles GET /health
func (h *Handler) GetHealth(
	ctx context.Context,
	request api.GetHealthRequestObject,
) (api.GetHealthResponseObject, error) {
	pingCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := h.healthChecker.PingContext(pingCtx); err != nil {
		h.logger.Error("health check failed: database unreachable", "error", err)
		return api.GetHealth503JSONResponse{
			Status: api.Unhealthy,
		}, nil
	}

	return api.GetHealth200JSONResponse{
		Status: api.Healthy,
	}, nil
}
