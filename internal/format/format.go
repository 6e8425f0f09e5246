// Package format renders extracted GitHub content for consumption by
// a language model, either as stable machine-parseable JSON or as a
// single markdown document. Both renderings are deterministic: the
// same record always produces byte-identical output.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/octotext/octotext/internal/core/domain"
)

// Kind selects the output rendering.
type Kind string

const (
	KindJSON     Kind = "json"
	KindMarkdown Kind = "markdown"
)

// ParseKind parses an output format name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return KindJSON, nil
	case "markdown", "md":
		return KindMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want json or markdown)", domain.ErrInvalidInput, s)
	}
}

// Document is the prompt-friendly JSON shape. Conversation turns and
// commits are pre-rendered strings so a model consumes them without
// reassembling fields.
type Document struct {
	Type         string        `json:"type"`
	Reference    string        `json:"reference"`
	URL          string        `json:"url"`
	Title        string        `json:"title"`
	State        string        `json:"state,omitempty"`
	Author       string        `json:"author,omitempty"`
	CreatedAt    string        `json:"created_at,omitempty"`
	UpdatedAt    string        `json:"updated_at,omitempty"`
	MergedAt     string        `json:"merged_at,omitempty"`
	Description  string        `json:"description,omitempty"`
	Labels       []string      `json:"labels,omitempty"`
	Conversation []string      `json:"conversation,omitempty"`
	Commits      []string      `json:"commits,omitempty"`
	FileChanges  []FileChange  `json:"file_changes,omitempty"`
	RelatedItems []RelatedItem `json:"related_items,omitempty"`
}

// FileChange is one changed file in the JSON shape.
type FileChange struct {
	Path string `json:"path"`
	Diff string `json:"diff,omitempty"`
}

// RelatedItem is one related reference in the JSON shape. Content is
// present only for items the traversal expanded.
type RelatedItem struct {
	Reference string    `json:"reference"`
	URL       string    `json:"url"`
	Kind      string    `json:"kind"`
	Depth     int       `json:"depth"`
	Content   *Document `json:"content,omitempty"`
}

// Build converts a domain record into the prompt-friendly document.
func Build(c *domain.ExtractedContent) *Document {
	doc := &Document{
		Type:        string(c.Reference.Kind),
		Reference:   c.Reference.String(),
		URL:         c.Reference.URL(),
		Title:       c.Title,
		State:       c.State,
		Author:      c.Author,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		MergedAt:    c.MergedAt,
		Description: c.Description,
		Labels:      c.Labels,
	}

	for _, turn := range c.Conversation {
		doc.Conversation = append(doc.Conversation, renderTurn(turn))
	}
	for _, commit := range c.Commits {
		doc.Commits = append(doc.Commits, fmt.Sprintf("%s: %s", shortSHA(commit.SHA), commit.Message))
	}
	for _, file := range c.Files {
		doc.FileChanges = append(doc.FileChanges, FileChange{Path: file.Path, Diff: file.Diff})
	}
	for _, rel := range c.Related {
		item := RelatedItem{
			Reference: rel.Reference.String(),
			URL:       rel.Reference.URL(),
			Kind:      string(rel.Reference.Kind),
			Depth:     rel.Depth,
		}
		if rel.Content != nil {
			item.Content = Build(rel.Content)
		}
		doc.RelatedItems = append(doc.RelatedItems, item)
	}

	return doc
}

// JSON renders the record as indented JSON.
func JSON(c *domain.ExtractedContent) ([]byte, error) {
	return json.MarshalIndent(Build(c), "", "  ")
}

// Raw renders the domain record itself as indented JSON, without the
// prompt-oriented reshaping.
func Raw(c *domain.ExtractedContent) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Markdown renders the record as one readable document. Related items
// appear as nested sections labelled by depth and reference.
func Markdown(c *domain.ExtractedContent) string {
	var sb strings.Builder
	writeMarkdown(&sb, c, 1)
	return sb.String()
}

func writeMarkdown(sb *strings.Builder, c *domain.ExtractedContent, level int) {
	h := strings.Repeat("#", level)

	fmt.Fprintf(sb, "%s %s: %s\n\n", h, headingLabel(c.Reference), c.Title)

	var meta []string
	if c.State != "" {
		meta = append(meta, fmt.Sprintf("**State:** %s", c.State))
	}
	if c.Author != "" {
		meta = append(meta, fmt.Sprintf("**Author:** @%s", c.Author))
	}
	if c.CreatedAt != "" {
		meta = append(meta, fmt.Sprintf("**Created:** %s", c.CreatedAt))
	}
	if c.UpdatedAt != "" {
		meta = append(meta, fmt.Sprintf("**Updated:** %s", c.UpdatedAt))
	}
	if c.MergedAt != "" {
		meta = append(meta, fmt.Sprintf("**Merged:** %s", c.MergedAt))
	}
	if len(meta) > 0 {
		sb.WriteString(strings.Join(meta, "  \n") + "\n\n")
	}

	if c.Description != "" {
		fmt.Fprintf(sb, "%s# Description\n\n%s\n\n", h, c.Description)
	}

	if len(c.Labels) > 0 {
		fmt.Fprintf(sb, "%s# Labels\n\n", h)
		quoted := make([]string, len(c.Labels))
		for i, l := range c.Labels {
			quoted[i] = "`" + l + "`"
		}
		sb.WriteString(strings.Join(quoted, ", ") + "\n\n")
	}

	if len(c.Conversation) > 0 {
		fmt.Fprintf(sb, "%s# Conversation\n\n", h)
		for _, turn := range c.Conversation {
			sb.WriteString(renderTurn(turn) + "\n\n---\n\n")
		}
	}

	if len(c.Commits) > 0 {
		fmt.Fprintf(sb, "%s# Commits\n\n", h)
		for _, commit := range c.Commits {
			fmt.Fprintf(sb, "* %s: %s\n", shortSHA(commit.SHA), commit.Message)
		}
		sb.WriteString("\n")
	}

	if len(c.Files) > 0 {
		fmt.Fprintf(sb, "%s# File Changes\n\n", h)
		for _, file := range c.Files {
			fmt.Fprintf(sb, "%s## %s\n\n", h, file.Path)
			if file.Diff != "" {
				fmt.Fprintf(sb, "```diff\n%s\n```\n\n", file.Diff)
			}
		}
	}

	if len(c.Related) > 0 {
		fmt.Fprintf(sb, "%s# Related Items\n\n", h)
		wroteBullet := false
		for _, rel := range c.Related {
			if rel.Content == nil {
				fmt.Fprintf(sb, "* [depth %d] %s %s (%s): not expanded\n",
					rel.Depth, rel.Reference.Kind, rel.Reference, rel.Reference.URL())
				wroteBullet = true
			}
		}
		if wroteBullet {
			sb.WriteString("\n")
		}
		for _, rel := range c.Related {
			if rel.Content != nil {
				fmt.Fprintf(sb, "%s# Related [depth %d]: %s\n\n", h, rel.Depth, rel.Reference)
				writeMarkdown(sb, rel.Content, level+2)
			}
		}
	}
}

func renderTurn(turn domain.ConversationTurn) string {
	header := "**" + turn.Author + "**"
	if turn.CreatedAt != "" {
		header += " (" + turn.CreatedAt + ")"
	}
	return header + ":\n" + turn.Body
}

func headingLabel(ref domain.Reference) string {
	switch ref.Kind {
	case domain.KindPullRequest:
		return fmt.Sprintf("Pull Request %s", ref)
	case domain.KindCommit:
		return fmt.Sprintf("Commit %s", ref)
	default:
		return fmt.Sprintf("Issue %s", ref)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// Render renders the record in the requested output kind.
func Render(c *domain.ExtractedContent, kind Kind) ([]byte, error) {
	switch kind {
	case KindMarkdown:
		return []byte(Markdown(c)), nil
	default:
		return JSON(c)
	}
}
