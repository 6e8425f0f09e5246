package extract

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/octotext/octotext/internal/core/domain"
)

var md = goldmark.New()

// section names are matched case-insensitively against heading text.
type sectionKind int

const (
	sectionDescription sectionKind = iota
	sectionConversation
	sectionCommits
	sectionFiles
	sectionOther
)

var (
	// titlePrefix strips "Issue #12:", "Pull Request #12:", "PR #12:"
	// style prefixes the rendered page puts in front of the title.
	titlePrefix = regexp.MustCompile(`^(?:Issue|Pull Request|PR|Commit)\s+#?\S+:\s*`)

	// turnHeading matches comment-boundary headings: "@alice (2024-01-02 15:04)".
	turnHeading = regexp.MustCompile(`^@?([A-Za-z0-9][A-Za-z0-9-]*)\s*\(([^)]+)\)$`)

	// turnParagraph matches comment boundaries rendered inline:
	// "**alice** (2024-01-02):" on the first line of a paragraph.
	turnParagraph = regexp.MustCompile(`^\*\*@?([^*]+)\*\*\s*\(([^)]+)\):?\s*$`)

	// commitLine matches "abc1234: message" or "abc1234 message" list entries.
	commitLine = regexp.MustCompile(`^[*\-]?\s*` + "`?" + `([0-9a-f]{7,40})` + "`?" + `[:\s]\s*(.+)$`)

	// filePath strips trailing annotations like "(modified, +3 -1)".
	filePathSuffix = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

	// diffGitHeader recovers a path from a unified diff when the page
	// didn't render a per-file heading.
	diffGitHeader = regexp.MustCompile(`(?m)^diff --git a/(\S+) b/(\S+)`)

	metaAuthor  = regexp.MustCompile(`\*\*Author:?\*\*\s*@?([^\s|*]+)`)
	metaState   = regexp.MustCompile(`\*\*State:?\*\*\s*([A-Za-z_]+)`)
	metaLabels  = regexp.MustCompile(`\*\*Labels:?\*\*\s*([^|\n]+)`)
	metaCreated = regexp.MustCompile(`(?i)\bCreated:?\*{0,2}\s*:?\s*([^\s|*][^|\n*]*)`)
	metaUpdated = regexp.MustCompile(`(?i)\bUpdated:?\*{0,2}\s*:?\s*([^\s|*][^|\n*]*)`)
	metaMerged  = regexp.MustCompile(`(?i)\bMerged:?\*{0,2}\s*:?\s*([^\s|*][^|\n*]*)`)
)

// Document converts scraped markdown into an ExtractedContent for ref.
// It never fails: content that matches nothing yields a record with
// empty fields.
func Document(raw string, ref domain.Reference) domain.ExtractedContent {
	out := domain.ExtractedContent{Reference: ref}

	src := []byte(raw)
	doc := md.Parser().Parse(text.NewReader(src))

	st := &state{out: &out, src: src}
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		st.block(node)
	}
	st.flushTurn()
	st.flushFile()

	out.Description = strings.TrimSpace(st.description.String())
	parseMetadata(&out)
	out.References = DiscoverReferences(raw, ref)

	return out
}

// state carries the section the walk is currently inside.
type state struct {
	out *domain.ExtractedContent
	src []byte

	sawTitle     bool
	titleLevel   int
	section      sectionKind
	sectionLevel int

	description strings.Builder

	turn     *domain.ConversationTurn
	turnBody strings.Builder

	filePath string
	fileDiff strings.Builder
}

func (s *state) block(node ast.Node) {
	switch n := node.(type) {
	case *ast.Heading:
		s.heading(n)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		s.code(node)
	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			s.text(rawText(item, s.src))
		}
	case *ast.ThematicBreak:
		// Horizontal rules separate comments in some renderings; they
		// carry no content either way.
	default:
		s.text(rawText(n, s.src))
	}
}

func (s *state) heading(h *ast.Heading) {
	txt := strings.TrimSpace(nodeText(h, s.src))

	if !s.sawTitle {
		s.sawTitle = true
		s.titleLevel = h.Level
		s.out.Title = strings.TrimSpace(titlePrefix.ReplaceAllString(txt, ""))
		s.section = sectionDescription
		s.sectionLevel = h.Level
		return
	}

	// A comment boundary is a heading in its own right.
	if m := turnHeading.FindStringSubmatch(txt); m != nil {
		s.flushTurn()
		s.flushFile()
		s.section = sectionConversation
		s.turn = &domain.ConversationTurn{Author: m[1], CreatedAt: strings.TrimSpace(m[2])}
		return
	}

	// Sub-headings under "Files changed" name the file, whatever the
	// path happens to contain.
	if s.section == sectionFiles && h.Level > s.sectionLevel {
		s.flushFile()
		s.filePath = strings.TrimSpace(filePathSuffix.ReplaceAllString(txt, ""))
		return
	}

	s.closeSection(classifyHeading(txt), h.Level)
}

func (s *state) closeSection(kind sectionKind, level int) {
	s.flushTurn()
	s.flushFile()
	s.section = kind
	s.sectionLevel = level
}

func (s *state) text(txt string) {
	txt = strings.TrimSpace(txt)
	if txt == "" {
		return
	}

	// Inline comment boundaries can appear in any section.
	lines := strings.SplitN(txt, "\n", 2)
	if m := turnParagraph.FindStringSubmatch(strings.TrimSpace(lines[0])); m != nil {
		s.flushTurn()
		s.section = sectionConversation
		s.turn = &domain.ConversationTurn{Author: strings.TrimSpace(m[1]), CreatedAt: strings.TrimSpace(m[2])}
		if len(lines) > 1 {
			s.turnBody.WriteString(strings.TrimSpace(lines[1]))
		}
		return
	}

	switch s.section {
	case sectionDescription:
		if s.description.Len() > 0 {
			s.description.WriteString("\n\n")
		}
		s.description.WriteString(txt)
	case sectionConversation:
		if s.turn == nil {
			return
		}
		if s.turnBody.Len() > 0 {
			s.turnBody.WriteString("\n\n")
		}
		s.turnBody.WriteString(txt)
	case sectionCommits:
		for _, line := range strings.Split(txt, "\n") {
			if m := commitLine.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
				s.out.Commits = append(s.out.Commits, domain.Commit{SHA: m[1], Message: strings.TrimSpace(m[2])})
			}
		}
	case sectionFiles:
		// Bare paragraphs between diff blocks name the next file.
		if s.filePath == "" && !strings.Contains(txt, "\n") {
			s.filePath = strings.TrimSpace(filePathSuffix.ReplaceAllString(txt, ""))
		}
	}
}

func (s *state) code(node ast.Node) {
	content := codeText(node, s.src)

	if s.section != sectionFiles {
		// Diff-looking code outside an explicit files section still
		// counts; pages for single commits render this way.
		if !looksLikeDiff(node, s.src, content) {
			s.text(content)
			return
		}
		s.closeSection(sectionFiles, s.sectionLevel)
	}

	if s.filePath == "" {
		if m := diffGitHeader.FindStringSubmatch(content); m != nil {
			s.filePath = m[2]
		}
	}
	if s.fileDiff.Len() > 0 {
		s.fileDiff.WriteString("\n")
	}
	s.fileDiff.WriteString(strings.TrimRight(content, "\n"))
	s.flushFile()
}

func (s *state) flushTurn() {
	if s.turn == nil {
		return
	}
	s.turn.Body = strings.TrimSpace(s.turnBody.String())
	s.out.Conversation = append(s.out.Conversation, *s.turn)
	s.turn = nil
	s.turnBody.Reset()
}

func (s *state) flushFile() {
	if s.filePath == "" && s.fileDiff.Len() == 0 {
		return
	}
	if s.fileDiff.Len() == 0 {
		// Path with no diff yet: wait for the code block.
		return
	}
	s.out.Files = append(s.out.Files, domain.FileChange{
		Path: s.filePath,
		Diff: strings.TrimSpace(s.fileDiff.String()),
	})
	s.filePath = ""
	s.fileDiff.Reset()
}

func classifyHeading(txt string) sectionKind {
	t := strings.ToLower(strings.TrimSpace(txt))
	switch {
	case strings.Contains(t, "conversation"), strings.Contains(t, "comment"), strings.Contains(t, "discussion"):
		return sectionConversation
	case strings.Contains(t, "commit"):
		return sectionCommits
	case strings.Contains(t, "files changed"), strings.Contains(t, "file changes"), strings.Contains(t, "changed files"):
		return sectionFiles
	case strings.Contains(t, "description"):
		return sectionDescription
	default:
		return sectionOther
	}
}

func looksLikeDiff(node ast.Node, src []byte, content string) bool {
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		if string(fenced.Language(src)) == "diff" {
			return true
		}
	}
	return strings.HasPrefix(content, "diff --git") || strings.HasPrefix(content, "@@ ")
}

// parseMetadata pulls author/state/labels/timestamp out of the
// description when the rendering put them there as bold key-value
// pairs, then removes pure metadata lines from the description.
func parseMetadata(out *domain.ExtractedContent) {
	desc := out.Description
	if m := metaAuthor.FindStringSubmatch(desc); m != nil {
		out.Author = m[1]
	}
	if m := metaState.FindStringSubmatch(desc); m != nil {
		out.State = strings.ToLower(m[1])
	}
	if m := metaLabels.FindStringSubmatch(desc); m != nil {
		for _, l := range strings.Split(m[1], ",") {
			l = strings.Trim(strings.TrimSpace(l), "`")
			if l != "" {
				out.Labels = append(out.Labels, l)
			}
		}
	}
	if m := metaCreated.FindStringSubmatch(desc); m != nil {
		out.CreatedAt = strings.TrimSpace(m[1])
	}
	if m := metaUpdated.FindStringSubmatch(desc); m != nil {
		out.UpdatedAt = strings.TrimSpace(m[1])
	}
	if m := metaMerged.FindStringSubmatch(desc); m != nil {
		out.MergedAt = strings.TrimSpace(m[1])
	}

	var kept []string
	for _, para := range strings.Split(desc, "\n\n") {
		if isMetadataParagraph(para) {
			continue
		}
		kept = append(kept, para)
	}
	out.Description = strings.Join(kept, "\n\n")
}

func isMetadataParagraph(para string) bool {
	for _, line := range strings.Split(para, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "**Author"), strings.HasPrefix(line, "**State"),
			strings.HasPrefix(line, "**Labels"), strings.HasPrefix(line, "**Assignees"),
			strings.HasPrefix(line, "**Branch"), strings.HasPrefix(line, "**Changes"),
			strings.HasPrefix(line, "**Milestone"), strings.HasPrefix(line, "**Merged"),
			strings.HasPrefix(line, "*Created"), strings.HasPrefix(line, "**Created"),
			strings.HasPrefix(line, "*Updated"), strings.HasPrefix(line, "**Updated"):
		default:
			return false
		}
	}
	return true
}

// rawText returns the source text of a block node with inline markup
// intact. Inline markers matter here: comment boundaries and metadata
// lines are recognised by their bold markers, which the parsed inline
// tree no longer carries.
func rawText(node ast.Node, src []byte) string {
	if node.Lines().Len() > 0 {
		var sb strings.Builder
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(src))
		}
		return strings.TrimRight(sb.String(), "\n")
	}

	var parts []string
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if t := rawText(child, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

// nodeText collects the plain text of a node and its children.
func nodeText(node ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.URL(src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// codeText collects the literal lines of a code block.
func codeText(node ast.Node, src []byte) string {
	var sb strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return sb.String()
}
