package domain

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateIdentity  = errors.New("identity already has an account")
	ErrInvalidIdentity    = errors.New("identity is empty")
	ErrInvalidTier        = errors.New("invalid subscription tier")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExists      = errors.New("session already exists")
	ErrSubscriptionFailed = errors.New("subscription not active")
)
