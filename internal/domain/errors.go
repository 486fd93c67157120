package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserInactive           = errors.New("user is inactive")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrUnsupportedFormat      = errors.New("unsupported file format")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrExtractionUnavailable  = errors.New("document extraction service unavailable")
	ErrNoExtractableVesselRow = errors.New("no extractable vessel row in table")
	ErrValidationFailed       = errors.New("extraction result failed validation")
	ErrWorkspaceEmpty         = errors.New("no extraction result in workspace")
	ErrEventNotFound          = errors.New("event not found in current result")
	ErrRecordNotFound         = errors.New("saved record not found")
)
