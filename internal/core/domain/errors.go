package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidReference indicates a URL or reference string that does
	// not identify a GitHub issue, pull request, or commit.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrMissingCredential indicates no scraping API key is configured.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrNoContent indicates the scraping service returned an empty page.
	ErrNoContent = errors.New("no content returned")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
