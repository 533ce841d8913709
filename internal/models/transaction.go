package models

import "time"

// Transaction is the immutable record of the financial movement caused by a recharge
type Transaction struct {
	OccurredAt  time.Time   `db:"occurred_at"`
	CreatedAt   time.Time   `db:"created_at"`
	Type        PaymentType `db:"type"`
	ID          int64       `db:"id"`
	UserID      int64       `db:"user_id"`
	CardID      int64       `db:"card_id"`
	RechargeID  int64       `db:"recharge_id"`
	AmountCents int64       `db:"amount_cents"`
}

// IdempotencyKey tracks processed requests to prevent duplicate recharges
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	RequestHash    string    `db:"request_hash"` // hex SHA-256 of the compacted request body
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
}
