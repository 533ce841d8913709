// Package service implements the recharge coordinator and the read side of
// the card ledger.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/messhub/ledger/internal/config"
	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/metrics"
	"github.com/messhub/ledger/internal/models"
	"github.com/messhub/ledger/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// RechargeRequest is one top-up of a card
type RechargeRequest struct {
	OccurredAt  time.Time // zero means now
	PaymentType models.PaymentType
	UserID      int64
	CardID      int64
	AmountCents int64
}

// RechargeResult describes a committed recharge
type RechargeResult struct {
	RechargeID            int64
	TransactionID         int64
	NewBalanceCents       int64
	NewLifetimeTotalCents int64
	Reference             uuid.UUID
}

// RechargeDetails is a completed recharge together with its transaction
type RechargeDetails struct {
	Recharge    *models.Recharge
	Transaction *models.Transaction
}

// AuditReport lists committed data that breaks the recharge/transaction link
type AuditReport struct {
	IncompleteRecharges []*models.Recharge
	BrokenLinks         []repository.BrokenLink
}

// Clean reports whether the audit found nothing
func (r *AuditReport) Clean() bool {
	return len(r.IncompleteRecharges) == 0 && len(r.BrokenLinks) == 0
}

// Stage is how far a recharge got inside its unit of work
type Stage string

const (
	StageStarted             Stage = "started"
	StageCardLoaded          Stage = "card_loaded"
	StageBalanceUpdated      Stage = "balance_updated"
	StageRechargeInserted    Stage = "recharge_inserted"
	StageTransactionInserted Stage = "transaction_inserted"
	StageLinked              Stage = "linked"
	StageCommitted           Stage = "committed"
)

// Repositories groups the data access the recharge service needs
type Repositories struct {
	Store        repository.Store
	Cards        repository.CardRepository
	Recharges    repository.RechargeRepository
	Transactions repository.TransactionRepository
	Auditor      repository.LinkageAuditor
}

// NewRepositories binds all repositories to the connection pool
func NewRepositories(database *db.DB) Repositories {
	return Repositories{
		Store:        repository.NewStore(database),
		Cards:        repository.NewCardRepository(database),
		Recharges:    repository.NewRechargeRepository(database),
		Transactions: repository.NewTransactionRepository(database),
		Auditor:      repository.NewLinkageAuditor(database),
	}
}

// RechargeService coordinates the recharge protocol: the card balance update,
// the Recharge row and the Transaction row are written in one unit of work
// and the two rows end up referencing each other.
type RechargeService struct {
	repos      Repositories
	logger     *slog.Logger
	now        func() time.Time
	timeout    time.Duration
	backoff    time.Duration
	maxRetries int
}

// NewRechargeService creates a new RechargeService
func NewRechargeService(repos Repositories, cfg config.AppConfig, logger *slog.Logger) *RechargeService {
	return &RechargeService{
		repos:      repos,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		timeout:    cfg.RechargeTimeout,
		backoff:    cfg.RetryBackoff,
		maxRetries: cfg.RechargeMaxRetries,
	}
}

// ProcessRecharge adds req.AmountCents to the card's balance and lifetime
// total and records the matching Recharge and Transaction. Either all of it
// is committed or none of it is.
//
// Conflicts with concurrent writers are retried from the start up to the
// configured number of times.
func (s *RechargeService) ProcessRecharge(ctx context.Context, req RechargeRequest) (*RechargeResult, error) {
	started := time.Now()

	result, err := s.processRecharge(ctx, req)

	outcome := metrics.OutcomeCommitted
	if err != nil {
		outcome = KindStore
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			outcome = svcErr.Kind
		}
	}
	metrics.ObserveRecharge(outcome, started)

	return result, err
}

func (s *RechargeService) processRecharge(ctx context.Context, req RechargeRequest) (*RechargeResult, error) {
	if err := s.validateRechargeRequest(req); err != nil {
		return nil, err
	}

	if req.OccurredAt.IsZero() {
		req.OccurredAt = s.now()
	}
	req.OccurredAt = req.OccurredAt.UTC()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for attempt := 1; ; attempt++ {
		result, err := s.attemptRecharge(ctx, req, attempt)
		if err == nil {
			return result, nil
		}

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.Kind != KindConflict || attempt > s.maxRetries {
			return nil, err
		}

		metrics.RechargeRetries.Inc()
		s.logger.Warn("recharge conflicted with a concurrent writer, retrying",
			"card_id", req.CardID,
			"attempt", attempt,
		)

		select {
		case <-ctx.Done():
			return nil, interrupted(ctx, ctx.Err())
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}
}

// attemptRecharge runs the protocol once in a fresh unit of work
func (s *RechargeService) attemptRecharge(ctx context.Context, req RechargeRequest, attempt int) (*RechargeResult, error) {
	ledger, err := s.repos.Store.Begin(ctx)
	if err != nil {
		return nil, s.abort(req, attempt, StageStarted, storeFailure(ctx, ErrCodeBeginFailed, err))
	}
	defer func() {
		_ = ledger.Rollback() //nolint:errcheck // no-op after commit
	}()

	stage := StageStarted
	result, err := s.performRecharge(ctx, ledger, req, &stage)
	if err != nil {
		return nil, s.abort(req, attempt, stage, err)
	}

	if err := ledger.Commit(); err != nil {
		return nil, s.abort(req, attempt, stage, storeFailure(ctx, ErrCodeCommitFailed, err))
	}

	metrics.RechargedCents.WithLabelValues(string(req.PaymentType)).Add(float64(req.AmountCents))
	s.logger.Info("recharge committed",
		"recharge_id", result.RechargeID,
		"transaction_id", result.TransactionID,
		"reference", result.Reference,
		"card_id", req.CardID,
		"amount_cents", req.AmountCents,
		"payment_type", req.PaymentType,
		"attempt", attempt,
	)

	return result, nil
}

// performRecharge contains the core recharge business logic. stage is
// advanced after every write so a failure can be reported with how far the
// unit of work got.
func (s *RechargeService) performRecharge(
	ctx context.Context,
	ledger repository.Ledger,
	req RechargeRequest,
	stage *Stage,
) (*RechargeResult, error) {
	card, err := ledger.GetCard(ctx, req.CardID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, newError(KindCardNotFound, ErrCodeCardNotFound, err)
		}
		return nil, storeFailure(ctx, ErrCodeCardReadFailed, err)
	}
	*stage = StageCardLoaded

	if card.OwnerUserID != req.UserID {
		return nil, validationError(ErrCodeCardOwnerMismatch, "card does not belong to the user")
	}

	newBalance, err := addCents(card.BalanceCents, req.AmountCents)
	if err != nil {
		return nil, validationError(ErrCodeInvalidAmount, err.Error())
	}
	newLifetimeTotal, err := addCents(card.LifetimeTotalCents, req.AmountCents)
	if err != nil {
		return nil, validationError(ErrCodeInvalidAmount, err.Error())
	}

	if err := ledger.UpdateCardBalance(ctx, card.ID, newBalance, newLifetimeTotal); err != nil {
		return nil, storeFailure(ctx, ErrCodeBalanceUpdateFailed, err)
	}
	*stage = StageBalanceUpdated

	recharge := &models.Recharge{
		Reference:   uuid.New(),
		Type:        req.PaymentType,
		UserID:      req.UserID,
		CardID:      card.ID,
		AmountCents: req.AmountCents,
		OccurredAt:  req.OccurredAt,
	}
	rechargeID, err := ledger.InsertRecharge(ctx, recharge)
	if err != nil {
		return nil, storeFailure(ctx, ErrCodeRechargeInsertFailed, err)
	}
	*stage = StageRechargeInserted

	transactionID, err := ledger.InsertTransaction(ctx, &models.Transaction{
		Type:        req.PaymentType,
		UserID:      req.UserID,
		CardID:      card.ID,
		RechargeID:  rechargeID,
		AmountCents: req.AmountCents,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		return nil, storeFailure(ctx, ErrCodeTransactionInsertFailed, err)
	}
	*stage = StageTransactionInserted

	if err := ledger.PatchRechargeTransactionRef(ctx, rechargeID, transactionID); err != nil {
		return nil, storeFailure(ctx, ErrCodeLinkPatchFailed, err)
	}
	*stage = StageLinked

	return &RechargeResult{
		RechargeID:            rechargeID,
		TransactionID:         transactionID,
		NewBalanceCents:       newBalance,
		NewLifetimeTotalCents: newLifetimeTotal,
		Reference:             recharge.Reference,
	}, nil
}

func (s *RechargeService) validateRechargeRequest(req RechargeRequest) error {
	if err := ValidateAmount(req.AmountCents); err != nil {
		return validationError(ErrCodeInvalidAmount, err.Error())
	}

	if !req.PaymentType.Valid() {
		return validationError(ErrCodeInvalidPaymentType, "payment type must be one of CASH, CARD, UPI")
	}

	return nil
}

// abort logs a rolled back unit of work and passes err through
func (s *RechargeService) abort(req RechargeRequest, attempt int, stage Stage, err error) error {
	metrics.RechargeAborts.WithLabelValues(string(stage)).Inc()

	attrs := []any{
		"stage", stage,
		"card_id", req.CardID,
		"user_id", req.UserID,
		"amount_cents", req.AmountCents,
		"attempt", attempt,
		"error", err,
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		attrs = append(attrs, "kind", svcErr.Kind, "code", svcErr.Code)
		if svcErr.Kind == KindValidation || svcErr.Kind == KindCardNotFound {
			s.logger.Info("recharge rejected", attrs...)
			return err
		}
	}

	s.logger.Error("recharge rolled back", attrs...)
	return err
}

// storeFailure classifies a Ledger Store error. A finished or cancelled
// context wins over whatever the driver reported.
func storeFailure(ctx context.Context, code string, err error) *ServiceError {
	switch {
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return interrupted(ctx, err)
	case errors.Is(err, models.ErrConflict):
		return newError(KindConflict, ErrCodeConflict, err)
	default:
		return newError(KindStore, code, err)
	}
}

// interrupted tells a caller that gave up apart from a deadline that ran out.
// Both keep the timed_out kind so they stay retryable.
func interrupted(ctx context.Context, err error) *ServiceError {
	cause := ctx.Err()
	if cause == nil {
		cause = err
	}
	if errors.Is(cause, context.Canceled) {
		return newError(KindTimedOut, ErrCodeCanceled, err)
	}
	return newError(KindTimedOut, ErrCodeTimedOut, err)
}

// GetCard retrieves a card by ID
func (s *RechargeService) GetCard(ctx context.Context, cardID int64) (*models.Card, error) {
	card, err := s.repos.Cards.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, newError(KindCardNotFound, ErrCodeCardNotFound, err)
		}
		return nil, storeFailure(ctx, ErrCodeInternalError, err)
	}

	return card, nil
}

// GetRecharge retrieves a completed recharge and its transaction
func (s *RechargeService) GetRecharge(ctx context.Context, rechargeID int64) (*RechargeDetails, error) {
	recharge, err := s.repos.Recharges.FindByID(ctx, rechargeID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, newError(KindNotFound, ErrCodeRechargeNotFound, err)
		}
		return nil, storeFailure(ctx, ErrCodeInternalError, err)
	}

	txn, err := s.repos.Transactions.FindByID(ctx, *recharge.TransactionID)
	if err != nil {
		return nil, storeFailure(ctx, ErrCodeInternalError, err)
	}

	return &RechargeDetails{Recharge: recharge, Transaction: txn}, nil
}

// ListCardRecharges returns the latest completed recharges of a card, newest
// first
func (s *RechargeService) ListCardRecharges(ctx context.Context, cardID int64, limit int) ([]*models.Recharge, error) {
	if _, err := s.GetCard(ctx, cardID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	recharges, err := s.repos.Recharges.ListByCard(ctx, cardID, limit)
	if err != nil {
		return nil, storeFailure(ctx, ErrCodeInternalError, err)
	}

	return recharges, nil
}

// Audit reports recharges without a transaction and recharge/transaction
// pairs that do not reference each other
func (s *RechargeService) Audit(ctx context.Context) (*AuditReport, error) {
	incomplete, err := s.repos.Auditor.FindIncompleteRecharges(ctx)
	if err != nil {
		return nil, storeFailure(ctx, ErrCodeInternalError, err)
	}

	broken, err := s.repos.Auditor.FindBrokenLinks(ctx)
	if err != nil {
		return nil, storeFailure(ctx, ErrCodeInternalError, err)
	}

	report := &AuditReport{IncompleteRecharges: incomplete, BrokenLinks: broken}
	if !report.Clean() {
		s.logger.Warn("ledger audit found problems",
			"incomplete_recharges", len(incomplete),
			"broken_links", len(broken),
		)
	}

	return report, nil
}
