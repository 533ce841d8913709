package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for CardStatus.
const (
	CardStatusACTIVE   CardStatus = "ACTIVE"
	CardStatusINACTIVE CardStatus = "INACTIVE"
)

// Defines values for ErrorErrorKind.
const (
	ErrorKindValidationError ErrorErrorKind = "validation_error"
	ErrorKindCardNotFound    ErrorErrorKind = "card_not_found"
	ErrorKindNotFound        ErrorErrorKind = "not_found"
	ErrorKindStoreError      ErrorErrorKind = "store_error"
	ErrorKindConflict        ErrorErrorKind = "conflict"
	ErrorKindTimedOut        ErrorErrorKind = "timed_out"
	ErrorKindUnauthorized    ErrorErrorKind = "unauthorized"
	ErrorKindForbidden       ErrorErrorKind = "forbidden"
)

// Defines values for HealthResponseStatus.
const (
	Healthy   HealthResponseStatus = "healthy"
	Unhealthy HealthResponseStatus = "unhealthy"
)

// Defines values for RechargePaymentType.
const (
	CASH RechargePaymentType = "CASH"
	CARD RechargePaymentType = "CARD"
	UPI  RechargePaymentType = "UPI"
)

// Card defines model for Card.
type Card struct {
	ExpiresAt      *openapi_types.Date `json:"expires_at,omitempty"`
	LastRechargeId *int64              `json:"last_recharge_id,omitempty"`
	Balance        string              `json:"balance"`
	LifetimeTotal  string              `json:"lifetime_total"`
	Status         CardStatus          `json:"status"`
	Id             int64               `json:"id"`
	OwnerUserId    int64               `json:"owner_user_id"`
}

// CardStatus defines model for Card.Status.
type CardStatus string

// Error defines model for Error.
type Error struct {
	Code      string         `json:"code"`
	ErrorKind ErrorErrorKind `json:"error_kind"`
	Message   string         `json:"message"`
}

// ErrorErrorKind defines model for Error.ErrorKind.
type ErrorErrorKind string

// HealthResponse defines model for HealthResponse.
type HealthResponse struct {
	Status HealthResponseStatus `json:"status"`
}

// HealthResponseStatus defines model for HealthResponse.Status.
type HealthResponseStatus string

// Recharge defines model for Recharge.
type Recharge struct {
	CreatedAt     time.Time           `json:"created_at"`
	OccurredAt    time.Time           `json:"occurred_at"`
	Amount        string              `json:"amount"`
	PaymentType   RechargePaymentType `json:"payment_type"`
	Id            int64               `json:"id"`
	UserId        int64               `json:"user_id"`
	CardId        int64               `json:"card_id"`
	TransactionId int64               `json:"transaction_id"`
	Reference     openapi_types.UUID  `json:"reference"`
}

// RechargePaymentType defines model for Recharge.PaymentType.
type RechargePaymentType string

// RechargeList defines model for RechargeList.
type RechargeList struct {
	Recharges []Recharge `json:"recharges"`
}

// RechargeRequest defines model for RechargeRequest.
type RechargeRequest struct {
	OccurredAt *time.Time `json:"occurred_at,omitempty"`

	// Amount Decimal amount such as "50.00"
	Amount string `json:"amount"`

	// PaymentType CASH, CARD or UPI, case-insensitive
	PaymentType string `json:"payment_type"`
	UserId      int64  `json:"user_id"`
	CardId      int64  `json:"card_id"`
}

// RechargeResponse defines model for RechargeResponse.
type RechargeResponse struct {
	NewBalance       string             `json:"new_balance"`
	NewLifetimeTotal string             `json:"new_lifetime_total"`
	RechargeId       int64              `json:"recharge_id"`
	TransactionId    int64              `json:"transaction_id"`
	Reference        openapi_types.UUID `json:"reference"`
}

// CardId defines model for CardId.
type CardId = int64

// RechargeId defines model for RechargeId.
type RechargeId = int64

// CreateRechargeParams defines parameters for CreateRecharge.
type CreateRechargeParams struct {
	// IdempotencyKey Replays the first successful response for a repeated key
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

// ListCardRechargesParams defines parameters for ListCardRecharges.
type ListCardRechargesParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateRechargeJSONRequestBody defines body for CreateRecharge for application/json ContentType.
type CreateRechargeJSONRequestBody = RechargeRequest
