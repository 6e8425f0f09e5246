package domain

// ExtractedContent is the structured record produced from one fetched
// item. Every field except Reference is optional: the scraped page
// layout is not contractually stable, so missing sections degrade to
// empty values rather than errors.
type ExtractedContent struct {
	// Reference identifies the item this content was extracted from.
	Reference Reference

	// Title is the item title, without the "Issue #N:" style prefix.
	Title string

	// Description is the opening body text.
	Description string

	// State is the item state if it could be recovered (open, closed,
	// merged). Empty when unknown.
	State string

	// Author is the login of the item author, without the "@".
	Author string

	// CreatedAt is the creation timestamp as scraped. Timestamps on
	// rendered pages are free-form text, so no parsing is attempted.
	CreatedAt string

	// UpdatedAt is the last-updated timestamp as scraped.
	UpdatedAt string

	// MergedAt is the merge timestamp as scraped. Pull requests only.
	MergedAt string

	// Labels attached to the item.
	Labels []string

	// Conversation holds comment turns in document order.
	Conversation []ConversationTurn

	// Commits lists commits on a pull request, in document order.
	Commits []Commit

	// Files lists file changes on a pull request, in document order.
	Files []FileChange

	// References are the distinct items this item links to, in order
	// of first occurrence.
	References []Reference

	// Related holds the expanded (or deliberately unexpanded) items
	// discovered during traversal. Empty unless traversal ran.
	Related []RelatedItem
}

// ConversationTurn is one comment in an item's discussion.
type ConversationTurn struct {
	Author    string
	Body      string
	CreatedAt string
}

// Commit is one commit listed on a pull request page.
type Commit struct {
	SHA     string
	Message string
}

// FileChange is one changed file on a pull request page.
type FileChange struct {
	Path string
	Diff string
}

// RelatedItem is a reference discovered while extracting another item.
// Content is nil when the item was not expanded: its kind failed the
// traversal filter, the depth bound was reached, the reference was
// already visited, or its fetch failed.
type RelatedItem struct {
	Reference Reference
	Depth     int
	Content   *ExtractedContent
}

// Expanded reports whether the related item carries fetched content.
func (r RelatedItem) Expanded() bool {
	return r.Content != nil
}

// Options bounds a related-item traversal.
type Options struct {
	// MaxDepth is the number of link-following hops from the root.
	// Zero means no expansion.
	MaxDepth int

	// Include filters which reference kinds get expanded. References
	// of other kinds are still recorded, without content. The zero
	// value expands every kind.
	Include KindSet
}
