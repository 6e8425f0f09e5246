package services

import (
	"context"
	"fmt"

	"github.com/octotext/octotext/internal/core/domain"
	"github.com/octotext/octotext/internal/core/ports/driven"
	"github.com/octotext/octotext/internal/core/ports/driving"
	"github.com/octotext/octotext/internal/extract"
	"github.com/octotext/octotext/internal/logger"
)

// Ensure ExtractService implements the interface.
var _ driving.ExtractService = (*ExtractService)(nil)

// ExtractService fetches GitHub items through the scraping port and
// turns them into structured records, optionally expanding the
// references they contain.
type ExtractService struct {
	fetcher driven.Fetcher
}

// NewExtractService creates a new extract service.
func NewExtractService(fetcher driven.Fetcher) *ExtractService {
	return &ExtractService{fetcher: fetcher}
}

// Extract fetches and extracts a single item. The fetch failure is
// fatal here: this is the root item, there is nothing to fall back to.
func (s *ExtractService) Extract(ctx context.Context, ref domain.Reference) (*domain.ExtractedContent, error) {
	if s.fetcher == nil {
		return nil, domain.ErrInvalidInput
	}

	raw, err := s.fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}

	content := extract.Document(raw, ref)
	return &content, nil
}

// pending is one discovered reference waiting to be processed,
// attached to the content whose text discovered it.
type pending struct {
	ref    domain.Reference
	parent *domain.ExtractedContent
	depth  int
}

// ExtractWithRelated extracts the root item and expands the references
// discovered in its text breadth-first, one depth level at a time.
//
// Each distinct reference is fetched and expanded at most once per
// call: the visited set is seeded with the root and grows with every
// expansion, which also makes cyclic cross-references terminate.
// References whose kind is outside opts.Include, and references whose
// fetch fails, are recorded without content and never abort the walk.
// Links are only discovered in items that were actually expanded, so
// nothing beyond opts.MaxDepth is ever reported.
func (s *ExtractService) ExtractWithRelated(ctx context.Context, ref domain.Reference, opts domain.Options) (*domain.ExtractedContent, error) {
	root, err := s.Extract(ctx, ref)
	if err != nil {
		return nil, err
	}
	if opts.MaxDepth <= 0 {
		return root, nil
	}

	visited := map[string]bool{ref.Key(): true}

	level := make([]pending, 0, len(root.References))
	for _, r := range root.References {
		level = append(level, pending{ref: r, parent: root, depth: 1})
	}

	for depth := 1; depth <= opts.MaxDepth && len(level) > 0; depth++ {
		var next []pending
		for _, p := range level {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			item := domain.RelatedItem{Reference: p.ref, Depth: p.depth}

			switch {
			case visited[p.ref.Key()]:
				// Already fetched (or it is the root): record the link
				// once more on this parent, never re-expand.
			case !opts.Include.Contains(p.ref.Kind):
				logger.Debug("skipping %s: kind %s not included", p.ref, p.ref.Kind)
			default:
				visited[p.ref.Key()] = true
				content, ferr := s.Extract(ctx, p.ref)
				if ferr != nil {
					// A related item that fails to fetch stays in the
					// tree without content; siblings still get walked.
					logger.Warn("related item %s: %v", p.ref, ferr)
					break
				}
				item.Content = content
				for _, r := range content.References {
					next = append(next, pending{ref: r, parent: content, depth: p.depth + 1})
				}
			}

			p.parent.Related = append(p.parent.Related, item)
		}
		level = next
	}

	return root, nil
}
