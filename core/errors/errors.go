package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/lib/pq"
)

type ErrorCode string

const (
	// Generic codes
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"

	// Engagement domain codes
	ErrAlreadyJoined         ErrorCode = "ALREADY_JOINED"
	ErrAlreadyInvited        ErrorCode = "ALREADY_INVITED"
	ErrAlreadyMember         ErrorCode = "ALREADY_MEMBER"
	ErrAlreadyRequested      ErrorCode = "ALREADY_REQUESTED"
	ErrAlreadyLeft           ErrorCode = "ALREADY_LEFT"
	ErrPrivateEvent          ErrorCode = "PRIVATE_EVENT"
	ErrInviteRequired        ErrorCode = "INVITE_REQUIRED"
	ErrNotAMember            ErrorCode = "NOT_A_MEMBER"
	ErrHostCannotLeave       ErrorCode = "HOST_CANNOT_LEAVE"
	ErrInvalidMessage        ErrorCode = "INVALID_MESSAGE"
	ErrCannotFavoriteDeleted ErrorCode = "CANNOT_FAVORITE_DELETED"
)

// AppError is the typed result every service returns for expected business
// conditions. Only unexpected storage failures travel inside Err.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// uniqueViolation is the Postgres error code raised when a concurrent insert
// loses the race against a uniqueness constraint.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a storage-level duplicate. Call
// sites translate it into a domain code instead of leaking the raw pq
// error. Most duplicate paths are absorbed by ON CONFLICT upserts; this
// covers the constraints that are not, such as the event slug.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
