package core

import "context"

// FrontMatterParser turns the text between the front-matter delimiters into
// an ordered mapping. Implementations are best-effort: recoverable problems
// (malformed lines) are skipped, and only an undecodable block fails with an
// error wrapping ErrParse.
type FrontMatterParser interface {
	Parse(block string) (*FrontMatter, error)
}

// BodyAnalyzer extracts synthetic fields from a document body.
type BodyAnalyzer interface {
	Analyze(body string) []DerivedField
}

// Splitter separates a document into its front-matter block and its body.
// ok is false when the document has no delimited header block.
type Splitter interface {
	Split(content string) (block, body string, ok bool)
}

// SplitterFunc adapts a function to the Splitter interface.
type SplitterFunc func(content string) (block, body string, ok bool)

// Split calls f.
func (f SplitterFunc) Split(content string) (string, string, bool) { return f(content) }

// Source resolves the root node of a document tree.
// Adapters (filesystem, fixtures) implement it so the Service can stay
// independent of where documents live.
type Source interface {
	Root(ctx context.Context) (Node, error)
}
