// Package services implements the driving port interfaces.
// Services contain the core business logic - extraction and the
// related-item traversal - and orchestrate calls to driven ports.
package services
