package models

import "time"

// Role is the access level of a user of the admin application
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the minimal user row that cards, recharges and transactions refer to
type User struct {
	CreatedAt time.Time `db:"created_at"`
	Username  string    `db:"username"`
	Role      Role      `db:"role"`
	ID        int64     `db:"id"`
}
