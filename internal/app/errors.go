package app

import "errors"

// Sentinel errors for common application errors
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRunInFlight       = errors.New("an auto-apply run is already in progress")
	ErrNotEligible       = errors.New("auto-apply requirements not met")
	ErrNoResumeSelected  = errors.New("no resume selected")
	ErrNothingToRetry    = errors.New("entry is not eligible for manual submission")
	ErrNoExternalListing = errors.New("entry has no external job URL")
)
