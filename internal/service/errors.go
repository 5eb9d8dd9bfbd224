package service

import "errors"

// --- Error Definitions ---
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDailyLimitReached  = errors.New("daily AI limit reached")
	ErrNotFound           = errors.New("not found")
	ErrArchiveUnavailable = errors.New("raw response archive is not configured")
)
