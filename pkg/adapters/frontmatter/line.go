package frontmatter

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/strata/pkg/core"
)

// LineParser decodes the YAML-like subset used by most static-site
// generators: one "key: value" pair per line.
//
// Values are normalized in a fixed order. Matching surrounding quotes are
// stripped; a bracketed value becomes an array (strict JSON first, then a
// comma split); a string starting with YYYY-MM-DD becomes a date. Lines
// without a key before a colon are skipped. Everything else stays a string:
// the subset has no numbers or booleans.
type LineParser struct{}

// NewLineParser creates the default heuristic parser.
func NewLineParser() *LineParser { return &LineParser{} }

// Parse implements core.FrontMatterParser.
func (p *LineParser) Parse(block string) (*core.FrontMatter, error) {
	if !utf8.ValidString(block) {
		return nil, fmt.Errorf("%w: block is not valid UTF-8", core.ErrParse)
	}

	fm := &core.FrontMatter{}
	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		colon := strings.Index(trimmed, ":")
		if colon <= 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:colon])
		raw := strings.TrimSpace(trimmed[colon+1:])
		fm.Set(key, normalize(raw))
	}
	return fm, nil
}

// ComponentType implements introspection.Component.
func (p *LineParser) ComponentType() string { return "line-parser" }

func normalize(raw string) core.Value {
	value := unquote(raw)

	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return core.Array(parseList(value)...)
	}
	if core.HasDatePrefix(value) {
		return core.Date(value)
	}
	return core.String(value)
}

func unquote(v string) string {
	if v == "" {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		if len(v) < 2 {
			return ""
		}
		return v[1 : len(v)-1]
	}
	return v
}

// parseList decodes a bracketed list, preferring strict JSON and falling
// back to splitting on commas with every quote character removed.
func parseList(v string) []string {
	var items []any
	if err := json.Unmarshal([]byte(v), &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, stringify(item))
		}
		return out
	}

	inner := v[1 : len(v)-1]
	parts := strings.Split(inner, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		part = strings.NewReplacer(`"`, "", `'`, "").Replace(part)
		out = append(out, part)
	}
	return out
}

func stringify(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64, bool:
		return fmt.Sprint(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

var _ core.FrontMatterParser = (*LineParser)(nil)
