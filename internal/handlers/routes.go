package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/messhub/ledger/internal/api"
	"github.com/messhub/ledger/internal/auth"
	"github.com/messhub/ledger/internal/config"
	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/middleware"
	"github.com/messhub/ledger/internal/repository"
	"github.com/messhub/ledger/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	database *db.DB,
	cfg *config.Config,
	logger *slog.Logger,
) (http.Handler, error) {
	rechargeService := service.NewRechargeService(service.NewRepositories(database), cfg.App, logger)

	handler := NewHandler(rechargeService, rechargeService, database, logger)
	strictHandler := api.NewStrictHandlerWithOptions(handler,
		[]api.StrictMiddlewareFunc{operationLogger(logger)},
		api.StrictHTTPServerOptions{
			RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
				status, body := invalid(service.ErrCodeInvalidRequest, err.Error())
				api.WriteError(w, status, body)
			},
			ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
				status, body := handler.errorResponse(err, "write response")
				api.WriteError(w, status, body)
			},
		},
	)

	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)
	api.HandlerFromMux(strictHandler, mux)
	if cfg.Server.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := middleware.ValidateRequests(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	var verifier middleware.TokenVerifier
	if cfg.Auth.Enabled {
		verifier = auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	} else {
		logger.Warn("bearer token verification is disabled, every caller is treated as admin")
	}

	var finalHandler http.Handler = mux

	idempotencyRepo := repository.NewIdempotencyRepository(database)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger)(finalHandler)
	finalHandler = validate(finalHandler)
	finalHandler = middleware.Authenticate(verifier, logger)(finalHandler)
	finalHandler = middleware.Instrument(mux)(finalHandler)

	if len(cfg.Server.AllowedOrigins) > 0 {
		finalHandler = cors.New(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
			ExposedHeaders: []string{"X-Idempotent-Replayed"},
		}).Handler(finalHandler)
	}

	finalHandler = chimw.Recoverer(finalHandler)
	finalHandler = middleware.AccessLog(logger)(finalHandler)
	finalHandler = chimw.RequestID(finalHandler)

	return finalHandler, nil
}

// operationLogger logs the duration of every API operation at debug level
func operationLogger(logger *slog.Logger) api.StrictMiddlewareFunc {
	return func(f api.StrictHandlerFunc, operationID string) api.StrictHandlerFunc {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
			started := time.Now()
			response, err := f(ctx, w, r, request)
			logger.Debug("api operation finished",
				"operation", operationID,
				"request_id", chimw.GetReqID(ctx),
				"duration_ms", time.Since(started).Milliseconds(),
			)
			return response, err
		}
	}
}
