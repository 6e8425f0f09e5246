package driving

import (
	"context"

	"github.com/octotext/octotext/internal/core/domain"
)

// ExtractService is the programmatic surface for extracting GitHub
// issue and pull request content.
type ExtractService interface {
	// Extract fetches and extracts a single item. A fetch failure is
	// fatal: no partial result is returned.
	Extract(ctx context.Context, ref domain.Reference) (*domain.ExtractedContent, error)

	// ExtractWithRelated extracts the item and expands references
	// discovered in its text, breadth-first, bounded by opts.MaxDepth
	// and filtered by opts.Include. A fetch failure on a related item
	// records the item without content and the walk continues; only a
	// root failure aborts.
	ExtractWithRelated(ctx context.Context, ref domain.Reference, opts domain.Options) (*domain.ExtractedContent, error)
}
