package service

import "fmt"

// ServiceError represents a business logic error with a kind and a code.
//
// Message is safe to show to callers. Err carries the underlying cause and
// is only meant for logs.
type ServiceError struct {
	Err     error
	Message string
	Kind    string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same request may succeed if sent again
func (e *ServiceError) Retryable() bool {
	return e.Kind == KindConflict || e.Kind == KindTimedOut
}

// Error kinds
const (
	KindValidation   = "validation_error"
	KindCardNotFound = "card_not_found"
	KindNotFound     = "not_found"
	KindStore        = "store_error"
	KindConflict     = "conflict"
	KindTimedOut     = "timed_out"
)

// Common error codes
const (
	ErrCodeInvalidAmount           = "invalid_amount"
	ErrCodeInvalidPaymentType      = "invalid_payment_type"
	ErrCodeCardOwnerMismatch       = "card_owner_mismatch"
	ErrCodeInvalidRequest          = "invalid_request"
	ErrCodeCardNotFound            = "card_not_found"
	ErrCodeRechargeNotFound        = "recharge_not_found"
	ErrCodeCardReadFailed          = "card_read_failed"
	ErrCodeBeginFailed             = "begin_failed"
	ErrCodeBalanceUpdateFailed     = "balance_update_failed"
	ErrCodeRechargeInsertFailed    = "recharge_insert_failed"
	ErrCodeTransactionInsertFailed = "transaction_insert_failed"
	ErrCodeLinkPatchFailed         = "link_patch_failed"
	ErrCodeCommitFailed            = "commit_failed"
	ErrCodeConflict                = "conflict"
	ErrCodeTimedOut                = "timed_out"
	ErrCodeCanceled                = "canceled"
	ErrCodeInternalError           = "internal_error"
)

// messages holds the caller-facing text for each code
var messages = map[string]string{
	ErrCodeCardNotFound:            "card not found",
	ErrCodeRechargeNotFound:        "recharge not found",
	ErrCodeBeginFailed:             "could not start the recharge",
	ErrCodeCardReadFailed:          "could not read the card",
	ErrCodeBalanceUpdateFailed:     "could not update the card balance",
	ErrCodeRechargeInsertFailed:    "could not record the recharge",
	ErrCodeTransactionInsertFailed: "could not record the transaction",
	ErrCodeLinkPatchFailed:         "could not link the recharge to its transaction",
	ErrCodeCommitFailed:            "could not commit the recharge",
	ErrCodeConflict:                "the card was modified concurrently, retry the request",
	ErrCodeTimedOut:                "the recharge did not finish in time",
	ErrCodeCanceled:                "the recharge was cancelled before it finished",
	ErrCodeInternalError:           "internal error",
}

func validationError(code, message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Code: code, Message: message}
}

func newError(kind, code string, err error) *ServiceError {
	return &ServiceError{Kind: kind, Code: code, Message: messages[code], Err: err}
}
