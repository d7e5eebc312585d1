package domain

import "errors"

// Common domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrValidation      = errors.New("validation error")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInternalServer  = errors.New("internal server error")
	ErrDuplicateEntry  = errors.New("duplicate entry")
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Catalog errors
var (
	ErrAuthorNotFound = errors.New("author not found")
	ErrBookNotFound   = errors.New("book not found")
)

// Loan errors
var (
	ErrIssueNotFound       = errors.New("book issue not found")
	ErrAlreadyReturned     = errors.New("book already returned")
	ErrInvalidRentalPeriod = errors.New("rental period must be a positive number of days")
)

// Rating and comment errors
var (
	ErrRatingNotFound  = errors.New("rating not found")
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrAlreadyRated    = errors.New("already rated")
	ErrCommentNotFound = errors.New("comment not found")
)
