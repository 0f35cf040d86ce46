// Package markdown derives synthetic schema fields from Markdown bodies.
package markdown

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/strata/pkg/core"
)

// WordsPerMinute is the reading rate used for the reading time estimate.
const WordsPerMinute = 200

// Names of the derived fields, in the order they are produced.
const (
	FieldImages      = "images"
	FieldLinks       = "links"
	FieldHeadings    = "headings"
	FieldWordCount   = "wordCount"
	FieldReadingTime = "readingTime"
)

var (
	imagePattern   = regexp.MustCompile(`!\[.*?\]\((.*?)\)`)
	linkPattern    = regexp.MustCompile(`\[.*?\]\((.*?)\)`)
	targetPattern  = regexp.MustCompile(`\((.*?)\)`)
	headingPattern = regexp.MustCompile(`(?m)^#+\s+([^\r\n]+)\r?$`)
)

// Analyzer extracts images, links, headings, word count and reading time.
//
// The link pattern also matches image syntax, so every image URL is listed
// under links as well. Callers that need pure links should subtract images.
type Analyzer struct{}

// NewAnalyzer creates the Markdown body analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze implements core.BodyAnalyzer.
func (a *Analyzer) Analyze(body string) []core.DerivedField {
	var fields []core.DerivedField

	if urls := targets(imagePattern, body); len(urls) > 0 {
		fields = append(fields, core.DerivedField{Name: FieldImages, Type: core.FieldArray, Sample: core.Array(urls...)})
	}
	if urls := targets(linkPattern, body); len(urls) > 0 {
		fields = append(fields, core.DerivedField{Name: FieldLinks, Type: core.FieldArray, Sample: core.Array(urls...)})
	}
	if headings := Headings(body); len(headings) > 0 {
		fields = append(fields, core.DerivedField{Name: FieldHeadings, Type: core.FieldArray, Sample: core.Array(headings...)})
	}

	words := WordCount(body)
	fields = append(fields,
		core.DerivedField{Name: FieldWordCount, Type: core.FieldNumber, Sample: core.Number(float64(words))},
		core.DerivedField{Name: FieldReadingTime, Type: core.FieldNumber, Sample: core.Number(float64(ReadingTime(words)))},
	)
	return fields
}

// ComponentType implements introspection.Component.
func (a *Analyzer) ComponentType() string { return "markdown-analyzer" }

// targets returns, for every match of pattern, the text inside the first
// parenthesized span of that match.
func targets(pattern *regexp.Regexp, body string) []string {
	matches := pattern.FindAllString(body, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if sub := targetPattern.FindStringSubmatch(m); sub != nil {
			out = append(out, sub[1])
		} else {
			out = append(out, "")
		}
	}
	return out
}

// Headings returns the text of every ATX heading with its markers removed.
// A trailing carriage return is not part of the text.
func Headings(body string) []string {
	matches := headingPattern.FindAllStringSubmatch(body, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// WordCount counts whitespace-separated tokens once punctuation is removed.
// Only ASCII letters, digits and underscores count as word characters; any
// Unicode space, such as U+00A0 or U+3000, still separates words.
func WordCount(body string) int {
	return len(strings.Fields(strings.Map(keepWordOrSpace, body)))
}

func keepWordOrSpace(r rune) rune {
	if unicode.IsSpace(r) || r < utf8.RuneSelf && (r == '_' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
		return r
	}
	return -1
}

// ReadingTime is the number of whole minutes needed to read words.
func ReadingTime(words int) int {
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

var _ core.BodyAnalyzer = (*Analyzer)(nil)
