package domain

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failure independently of its wire status.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindBadRequest
	KindConflict
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindExpired
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBadRequest:
		return "bad_request"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindExpired:
		return "expired"
	default:
		return "internal"
	}
}

// Status is the HTTP status a kind maps to unless the error overrides it.
func (k ErrorKind) Status() int {
	switch k {
	case KindValidation, KindBadRequest, KindExpired:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a client-safe failure: a message plus the status it is reported with.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Status: kind.Status(), Message: msg}
}

// WithStatus returns a copy reported with a different status.
func (e *Error) WithStatus(status int) *Error {
	c := *e
	c.Status = status
	return &c
}

func NewValidationError(msg string) *Error   { return newError(KindValidation, msg) }
func NewBadRequestError(msg string) *Error   { return newError(KindBadRequest, msg) }
func NewConflictError(msg string) *Error     { return newError(KindConflict, msg) }
func NewUnauthorizedError(msg string) *Error { return newError(KindUnauthorized, msg) }
func NewForbiddenError(msg string) *Error    { return newError(KindForbidden, msg) }
func NewNotFoundError(msg string) *Error     { return newError(KindNotFound, msg) }
func NewExpiredError(msg string) *Error      { return newError(KindExpired, msg) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// StatusOf returns the wire status for err.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Authentication errors
var (
	ErrInvalidCredentials   = NewUnauthorizedError("Invalid email or password")
	ErrAccountDeactivated   = NewForbiddenError("Your account has been deactivated")
	ErrInvalidRefreshToken  = NewUnauthorizedError("Invalid refresh token")
	ErrUserNotFound         = NewNotFoundError("User not found")
	ErrUserAlreadyExists    = NewConflictError("User with this email already exists")
	ErrPhoneAlreadyUsed     = NewConflictError("User with this phone number already exists")
	ErrPhoneAlreadyVerified = NewBadRequestError("Phone already verified")
	ErrNoPhoneOnFile        = NewBadRequestError("No phone number on file")
)

// OTP errors. Both are reported as 400 on the wire.
var (
	ErrOTPInvalid = NewNotFoundError("Invalid OTP code").WithStatus(http.StatusBadRequest)
	ErrOTPExpired = NewExpiredError("OTP code has expired")
)

// Token codec errors
var (
	ErrTokenInvalid = NewUnauthorizedError("invalid token")
	ErrTokenExpired = NewUnauthorizedError("token has expired")
)

// Request authorization errors
var (
	ErrAuthRequired          = NewUnauthorizedError("Authentication required")
	ErrInvalidToken          = NewUnauthorizedError("Invalid token")
	ErrInvalidOrExpiredToken = NewUnauthorizedError("Invalid or expired token")
	ErrStaffOnly             = NewForbiddenError("Staff access required")
	ErrUserOnly              = NewForbiddenError("User access required")
	ErrInsufficientRole      = NewForbiddenError("Access denied - insufficient permissions")
)

// Staff administration errors
var (
	ErrStaffNotFound        = NewNotFoundError("Staff member not found")
	ErrStaffEmailTaken      = NewConflictError("Staff member with this email already exists")
	ErrStaffPhoneTaken      = NewConflictError("Staff member with this phone number already exists")
	ErrCannotDeactivateSelf = NewBadRequestError("You cannot deactivate your own account")
	ErrInvalidRole          = NewValidationError("Invalid staff role")
)
