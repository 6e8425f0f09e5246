// Package extract converts scraped markdown renderings of GitHub
// issues, pull requests, and commits into structured records.
//
// The scraping service returns whatever the page happened to render
// as, so nothing here treats a missing section as an error: every
// field of the result degrades to its zero value when the content
// doesn't match. Section boundaries are found by walking the markdown
// AST (goldmark); embedded cross-references are found by scanning the
// raw text.
package extract
