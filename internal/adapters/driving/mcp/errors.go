// Package mcp provides an MCP (Model Context Protocol) server adapter
// for octotext. It lets AI assistants extract GitHub issue and pull
// request content directly, without shelling out to the CLI.
package mcp

import "errors"

// ErrMissingExtractService is returned when the extract service is not provided.
var ErrMissingExtractService = errors.New("mcp: extract service is required")
