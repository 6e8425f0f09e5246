package mcp

import (
	"github.com/octotext/octotext/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Extract provides issue/PR extraction and traversal.
	Extract driving.ExtractService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Extract == nil {
		return ErrMissingExtractService
	}
	return nil
}
