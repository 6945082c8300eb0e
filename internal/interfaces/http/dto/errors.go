package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeValidation = "VALIDATION_ERROR"
)

// Auth error codes
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "INVALID_TOKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountInactive    = "ACCOUNT_INACTIVE"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Ledger codes map here directly; the domain layer is the source of truth for
// what each code means.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountInactive:    http.StatusForbidden,

	"NOT_FOUND":                 http.StatusNotFound,
	"STUDENT_NOT_FOUND":         http.StatusNotFound,
	"PENDING_PAYMENT_NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":           http.StatusConflict,
	"ALREADY_LINKED":           http.StatusConflict,
	"DUPLICATE_RECEIPT_NUMBER": http.StatusConflict,
	"DUPLICATE_YEAR_RECORD":    http.StatusConflict,

	"INVALID_INPUT":     http.StatusBadRequest,
	"INVALID_AMOUNT":    http.StatusBadRequest,
	"MISSING_TOTAL_FEE": http.StatusUnprocessableEntity,
	"INVALID_STATE":     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes fall back to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
