package models

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrTicketStorageUnavailable is reported when the configured storage
	// driver has no ticket/chat capability (the in-memory store only covers
	// users and activities).
	ErrTicketStorageUnavailable = errors.New("ticket storage unavailable: durable storage required")
)
