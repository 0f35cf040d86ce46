// Package frontmatter extracts and decodes the delimited metadata header of
// content documents.
package frontmatter

import (
	"regexp"

	"github.com/aretw0/strata/pkg/core"
)

var (
	// blockPattern captures the text between an opening "---" line at the
	// very start of a document and the next "---".
	blockPattern = regexp.MustCompile(`\A---\n((?s:.*?))\n---`)
	// headerPattern is the header including the newline after the closing
	// delimiter. Only that form is stripped from the body.
	headerPattern = regexp.MustCompile(`\A---\n(?s:.*?)\n---\n`)
)

// Split separates content into its front-matter block and its body.
//
// A document whose closing delimiter is the very last line (no trailing
// newline) still yields a block, but its body is the whole content.
func Split(content string) (block, body string, ok bool) {
	m := blockPattern.FindStringSubmatch(content)
	if m == nil {
		return "", content, false
	}
	return m[1], headerPattern.ReplaceAllLiteralString(content, ""), true
}

// Splitter is Split as a core.Splitter.
var Splitter core.Splitter = core.SplitterFunc(Split)
