// Package middleware provides HTTP middleware components for the ledger API.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/messhub/ledger/internal/api"
	"github.com/messhub/ledger/internal/auth"
	"github.com/messhub/ledger/internal/models"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"
)

// recharge creation is the only POST that moves money
var idempotentPaths = []string{
	"/api/v1/recharges",
}

// IdempotencyRepository stores the first successful response per key
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

// keyLocks tracks keys whose first request has not finished yet
type keyLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func (l *keyLocks) tryLock(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return false
	}
	l.held[key] = struct{}{}
	return true
}

func (l *keyLocks) unlock(key string) {
	l.mu.Lock()
	delete(l.held, key)
	l.mu.Unlock()
}

// Idempotency creates middleware that replays the stored response of a
// recharge sent again with the same Idempotency-Key. Keys are scoped to the
// caller, so one user can never receive another user's response. A key
// reused with a different body is rejected with 422 instead of replayed.
//
// It must run after Authenticate.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	locks := &keyLocks{held: make(map[string]struct{})}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headerKey := r.Header.Get(idempotencyKeyHeader)
			if headerKey == "" || !requiresIdempotency(r) {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, api.Error{
					ErrorKind: api.ErrorKindValidationError,
					Code:      "invalid_request",
					Message:   "failed to read request body",
				})
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			hash := requestHash(body)

			ctx := r.Context()
			key := scopeKey(ctx, headerKey)
			path := normalizeRequestPath(r.URL.Path)

			lockName := path + " " + key
			if !locks.tryLock(lockName) {
				api.WriteError(w, http.StatusConflict, api.Error{
					ErrorKind: api.ErrorKindConflict,
					Code:      "conflict",
					Message:   "a request with this idempotency key is still being processed",
				})
				return
			}
			defer locks.unlock(lockName)

			stored, err := repo.Get(ctx, key, path)
			if err != nil {
				// fail open: a lookup failure must not block recharges
				logger.Error("failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if stored != nil && stored.RequestHash != "" && stored.RequestHash != hash {
				logger.Warn("idempotency key reused with a different body", "key", key)
				api.WriteError(w, http.StatusUnprocessableEntity, api.Error{
					ErrorKind: api.ErrorKindValidationError,
					Code:      "idempotency_key_reused",
					Message:   "this idempotency key was already used for a different request",
				})
				return
			}
			if stored != nil {
				logger.Debug("replaying idempotent response", "key", key, "status", stored.ResponseStatus)
				replay(w, stored)
				return
			}

			var response bytes.Buffer
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&response)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status < 200 || status >= 300 {
				return
			}

			err = repo.Store(ctx, &models.IdempotencyKey{
				Key:            key,
				RequestPath:    path,
				RequestHash:    hash,
				ResponseStatus: status,
				ResponseBody:   response.String(),
				CreatedAt:      time.Now().UTC(),
			})
			if err != nil {
				logger.Error("failed to store idempotency key", "error", err, "key", key)
			}
		})
	}
}

func replay(w http.ResponseWriter, stored *models.IdempotencyKey) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(stored.ResponseStatus)
	_, _ = w.Write([]byte(stored.ResponseBody)) //nolint:errcheck // client went away
}

// requestHash fingerprints a body; JSON whitespace does not count
func requestHash(body []byte) string {
	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err == nil {
		body = compact.Bytes()
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func requiresIdempotency(r *http.Request) bool {
	return r.Method == http.MethodPost && slices.Contains(idempotentPaths, normalizeRequestPath(r.URL.Path))
}

// scopeKey prefixes the client key with the caller's user id
func scopeKey(ctx context.Context, key string) string {
	var userID int64
	if id, ok := auth.FromContext(ctx); ok {
		userID = id.UserID
	}
	return strconv.FormatInt(userID, 10) + ":" + key
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}
