package models

import "time"

// CardStatus represents whether a card may be spent from
type CardStatus string

const (
	CardStatusActive   CardStatus = "ACTIVE"
	CardStatusInactive CardStatus = "INACTIVE"
)

// Card is a prepaid balance instrument owned by a user
type Card struct {
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	ExpiresAt          *time.Time `db:"expires_at"`
	LastRechargeID     *int64     `db:"last_recharge_id"`
	Status             CardStatus `db:"status"`
	ID                 int64      `db:"id"`
	OwnerUserID        int64      `db:"owner_user_id"`
	BalanceCents       int64      `db:"balance_cents"`
	LifetimeTotalCents int64      `db:"lifetime_total_cents"`
	Version            int64      `db:"version"`
}
