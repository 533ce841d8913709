// Package handlers implements HTTP handlers for the ledger API.
package handlers

import (
	"log/slog"

	"github.com/messhub/ledger/internal/api"
	"github.com/messhub/ledger/internal/service"
)

// Handler implements the api.StrictServerInterface for all endpoints
type Handler struct {
	recharger     service.Recharger
	reader        service.LedgerReader
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

var _ api.StrictServerInterface = (*Handler)(nil)

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	recharger service.Recharger,
	reader service.LedgerReader,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		recharger:     recharger,
		reader:        reader,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
