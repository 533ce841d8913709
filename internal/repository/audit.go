package repository

import (
	"context"
	"fmt"

	"github.com/messhub/ledger/internal/db"
	"github.com/messhub/ledger/internal/models"
)

// BrokenLink is a recharge/transaction pair whose references do not point at
// each other
type BrokenLink struct {
	Reason        string
	RechargeID    int64
	TransactionID int64
}

// LinkageAuditor checks the mutual recharge/transaction references of
// committed data
type LinkageAuditor interface {
	FindIncompleteRecharges(ctx context.Context) ([]*models.Recharge, error)
	FindBrokenLinks(ctx context.Context) ([]BrokenLink, error)
}

type linkageAuditor struct {
	exec      db.Executor
	recharges RechargeRepository
}

// NewLinkageAuditor creates a LinkageAuditor
func NewLinkageAuditor(exec db.Executor) LinkageAuditor {
	return &linkageAuditor{
		exec:      exec,
		recharges: NewRechargeRepository(exec),
	}
}

func (a *linkageAuditor) FindIncompleteRecharges(ctx context.Context) ([]*models.Recharge, error) {
	return a.recharges.FindIncomplete(ctx)
}

// FindBrokenLinks reports recharges whose transaction points elsewhere and
// transactions whose recharge does not point back
func (a *linkageAuditor) FindBrokenLinks(ctx context.Context) ([]BrokenLink, error) {
	query := `
		SELECT r.id, r.transaction_id, 'recharge references a transaction that does not reference it'
		FROM recharges r
		JOIN transactions t ON t.id = r.transaction_id
		WHERE t.recharge_id <> r.id
		UNION ALL
		SELECT t.recharge_id, t.id, 'transaction references a recharge that does not reference it'
		FROM transactions t
		JOIN recharges r ON r.id = t.recharge_id
		WHERE r.transaction_id IS NULL OR r.transaction_id <> t.id
		ORDER BY 1, 2
	`

	rows, err := a.exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query broken links: %w", classify(err))
	}
	defer rows.Close()

	var links []BrokenLink
	for rows.Next() {
		var link BrokenLink
		if err := rows.Scan(&link.RechargeID, &link.TransactionID, &link.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan broken link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate broken links: %w", classify(err))
	}

	return links, nil
}
