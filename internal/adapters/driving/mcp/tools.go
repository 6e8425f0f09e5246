package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/octotext/octotext/internal/core/domain"
	"github.com/octotext/octotext/internal/format"
)

// ExtractInput is the input schema for the extract tool.
type ExtractInput struct {
	URL   string `json:"url" jsonschema:"the GitHub issue or pull request URL to extract"`
	Depth int    `json:"depth,omitempty" jsonschema:"how many link-following hops to expand related items (default 0, none)"`
	Types string `json:"types,omitempty" jsonschema:"comma-separated kinds to expand: issue, pull_request, commit (default all)"`
}

// ExtractOutput is the output of the extract tool.
type ExtractOutput struct {
	ExtractionID string           `json:"extraction_id"`
	Document     *format.Document `json:"document"`
	Markdown     string           `json:"markdown"`
}

// extractOutputSchema is declared by hand: format.Document nests
// related documents recursively, which schema inference cannot
// express, so the document property stays an open object.
var extractOutputSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"extraction_id", "document", "markdown"},
	Properties: map[string]*jsonschema.Schema{
		"extraction_id": {
			Type:        "string",
			Description: "unique identifier for this extraction",
		},
		"document": {
			Type:        "object",
			Description: "the extracted record, with related items nested recursively",
		},
		"markdown": {
			Type:        "string",
			Description: "the same record rendered as one markdown document",
		},
	},
}

// ParseReferenceInput is the input schema for the parse_reference tool.
type ParseReferenceInput struct {
	URL string `json:"url" jsonschema:"the GitHub URL to parse"`
}

// ParseReferenceOutput is the output schema for the parse_reference tool.
type ParseReferenceOutput struct {
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
	Kind       string `json:"kind"`
	Identifier string `json:"identifier"`
	URL        string `json:"url"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:         "extract",
		Description:  "Extract the content of a GitHub issue or pull request, optionally expanding related items",
		OutputSchema: extractOutputSchema,
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "parse_reference",
		Description: "Parse a GitHub issue, pull request, or commit URL into its components",
	}, s.handleParseReference)
}

// handleExtract handles the extract tool invocation.
func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	ref, err := domain.ParseURL(input.URL)
	if err != nil {
		return nil, ExtractOutput{}, err
	}
	if input.Depth < 0 {
		return nil, ExtractOutput{}, fmt.Errorf("%w: depth must be >= 0", domain.ErrInvalidInput)
	}
	include, err := domain.ParseKindSet(input.Types)
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	var content *domain.ExtractedContent
	if input.Depth > 0 {
		content, err = s.ports.Extract.ExtractWithRelated(ctx, ref, domain.Options{
			MaxDepth: input.Depth,
			Include:  include,
		})
	} else {
		content, err = s.ports.Extract.Extract(ctx, ref)
	}
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	output := ExtractOutput{
		ExtractionID: uuid.New().String(),
		Document:     format.Build(content),
		Markdown:     format.Markdown(content),
	}
	return nil, output, nil
}

// handleParseReference handles the parse_reference tool invocation.
func (s *Server) handleParseReference(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ParseReferenceInput,
) (*mcp.CallToolResult, ParseReferenceOutput, error) {
	ref, err := domain.ParseURL(input.URL)
	if err != nil {
		return nil, ParseReferenceOutput{}, err
	}

	return nil, ParseReferenceOutput{
		Owner:      ref.Owner,
		Repo:       ref.Repo,
		Kind:       string(ref.Kind),
		Identifier: ref.Ident(),
		URL:        ref.URL(),
	}, nil
}
