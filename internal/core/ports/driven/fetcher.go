package driven

import (
	"context"

	"github.com/octotext/octotext/internal/core/domain"
)

// Fetcher retrieves the rendered content of one GitHub item through an
// external scraping service. The single operation keeps traversal and
// extraction testable with a substitute implementation.
type Fetcher interface {
	// Fetch returns the rendered markdown for the referenced item.
	// Failures (transport, credentials, rate limiting, non-success
	// responses) are returned as errors and never retried here.
	Fetch(ctx context.Context, ref domain.Reference) (string, error)
}
