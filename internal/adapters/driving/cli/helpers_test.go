package cli

import (
	"context"
	"errors"

	"github.com/octotext/octotext/internal/adapters/driven/config/memory"
	"github.com/octotext/octotext/internal/core/domain"
)

// mockExtractService returns a canned record and captures what it was
// asked for.
type mockExtractService struct {
	content *domain.ExtractedContent
	err     error

	lastRef  domain.Reference
	lastOpts domain.Options
	related  bool
}

func (m *mockExtractService) Extract(_ context.Context, ref domain.Reference) (*domain.ExtractedContent, error) {
	m.lastRef = ref
	m.related = false
	if m.err != nil {
		return nil, m.err
	}
	if m.content != nil {
		return m.content, nil
	}
	return &domain.ExtractedContent{Reference: ref, Title: "Mock item"}, nil
}

func (m *mockExtractService) ExtractWithRelated(_ context.Context, ref domain.Reference, opts domain.Options) (*domain.ExtractedContent, error) {
	m.lastRef = ref
	m.lastOpts = opts
	m.related = true
	if m.err != nil {
		return nil, m.err
	}
	if m.content != nil {
		return m.content, nil
	}
	return &domain.ExtractedContent{Reference: ref, Title: "Mock item"}, nil
}

type mockExtractServiceError struct{}

func (m *mockExtractServiceError) Extract(context.Context, domain.Reference) (*domain.ExtractedContent, error) {
	return nil, errors.New("extraction failed")
}

func (m *mockExtractServiceError) ExtractWithRelated(context.Context, domain.Reference, domain.Options) (*domain.ExtractedContent, error) {
	return nil, errors.New("extraction failed")
}

// setupTestServices swaps the package-level services for fakes and
// returns a cleanup that restores the originals.
func setupTestServices() func() {
	oldExtract := extractService
	oldConfig := configStore

	extractService = &mockExtractService{}
	configStore = memory.NewConfigStore()

	return func() {
		extractService = oldExtract
		configStore = oldConfig
	}
}
