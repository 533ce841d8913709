package service

import (
	"context"

	"github.com/messhub/ledger/internal/models"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Recharger tops up cards
type Recharger interface {
	ProcessRecharge(ctx context.Context, req RechargeRequest) (*RechargeResult, error)
}

// LedgerReader serves committed ledger data
type LedgerReader interface {
	GetCard(ctx context.Context, cardID int64) (*models.Card, error)
	GetRecharge(ctx context.Context, rechargeID int64) (*RechargeDetails, error)
	ListCardRecharges(ctx context.Context, cardID int64, limit int) ([]*models.Recharge, error)
}

// Ensure concrete types implement interfaces
var (
	_ Recharger    = (*RechargeService)(nil)
	_ LedgerReader = (*RechargeService)(nil)
)
