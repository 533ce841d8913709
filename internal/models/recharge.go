package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentType is the method used to fund a recharge
type PaymentType string

const (
	PaymentTypeCash PaymentType = "CASH"
	PaymentTypeCard PaymentType = "CARD"
	PaymentTypeUPI  PaymentType = "UPI"
)

// ParsePaymentType normalizes user input such as "Cash" or "upi".
func ParsePaymentType(s string) (PaymentType, error) {
	pt := PaymentType(strings.ToUpper(strings.TrimSpace(s)))
	if !pt.Valid() {
		return "", fmt.Errorf("unknown payment type %q", s)
	}
	return pt, nil
}

// Valid reports whether pt is one of the supported payment methods
func (pt PaymentType) Valid() bool {
	switch pt {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeUPI:
		return true
	}
	return false
}

// Recharge is the immutable record of one top-up event.
//
// TransactionID is nil only while the recharge is being written; a committed
// recharge always points at the Transaction that points back at it.
type Recharge struct {
	OccurredAt    time.Time   `db:"occurred_at"`
	CreatedAt     time.Time   `db:"created_at"`
	TransactionID *int64      `db:"transaction_id"`
	Type          PaymentType `db:"type"`
	ID            int64       `db:"id"`
	UserID        int64       `db:"user_id"`
	CardID        int64       `db:"card_id"`
	AmountCents   int64       `db:"amount_cents"`
	Reference     uuid.UUID   `db:"reference"`
}

// Completed reports whether the recharge has been linked to its transaction
func (r *Recharge) Completed() bool {
	return r.TransactionID != nil
}
