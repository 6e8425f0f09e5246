// Package domain defines the core business entities for octotext.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Reference: An identified GitHub issue, pull request or commit
//   - ExtractedContent: The structured record extracted from one item
//   - RelatedItem: A reference discovered while extracting another item
//   - Options: Bounds and filters for related-item traversal
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
