package domain

import "errors"

var (
	// ErrInvalidRequest is returned when a product or argument is unusable
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMissingColumn is returned when a tabular file lacks a required header
	ErrMissingColumn = errors.New("required column missing")

	// ErrInvalidArchive is returned when a .wpress archive cannot be walked
	ErrInvalidArchive = errors.New("invalid wpress archive")

	// ErrNoRedirects is returned when a redirect file holds no rules
	ErrNoRedirects = errors.New("no redirects loaded")
)
