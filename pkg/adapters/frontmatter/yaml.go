package frontmatter

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/core"
)

// YAMLParser decodes the block as real YAML. Unlike LineParser it keeps
// numbers and booleans typed and understands block sequences, at the cost of
// rejecting the whole block on a syntax error.
//
// Nested mappings are flattened into a single text value holding their YAML
// form, since the schema only tracks top-level fields.
type YAMLParser struct{}

// NewYAMLParser creates the strict parser.
func NewYAMLParser() *YAMLParser { return &YAMLParser{} }

// Parse implements core.FrontMatterParser.
func (p *YAMLParser) Parse(block string) (*core.FrontMatter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrParse, err)
	}

	fm := &core.FrontMatter{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return fm, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: front matter is a %s, not a mapping", core.ErrParse, kindName(root.Kind))
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		v, err := valueOf(val)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", core.ErrParse, key.Value, err)
		}
		fm.Set(key.Value, v)
	}
	return fm, nil
}

// ComponentType implements introspection.Component.
func (p *YAMLParser) ComponentType() string { return "yaml-parser" }

func valueOf(n *yaml.Node) (core.Value, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return scalarOf(n), nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := valueOf(item)
			if err != nil {
				return core.Value{}, err
			}
			items = append(items, v.Text())
		}
		return core.Array(items...), nil
	case yaml.MappingNode:
		out, err := yaml.Marshal(n)
		if err != nil {
			return core.Value{}, err
		}
		return core.String(string(out)), nil
	}
	return core.Value{}, fmt.Errorf("unsupported node kind %s", kindName(n.Kind))
}

func scalarOf(n *yaml.Node) core.Value {
	switch n.ShortTag() {
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return core.Bool(b)
		}
		var b bool
		if err := n.Decode(&b); err == nil {
			return core.Bool(b)
		}
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			// .inf and .nan have no JSON form; keep them as written.
			if math.IsInf(f, 0) || math.IsNaN(f) {
				return core.String(n.Value)
			}
			return core.Number(f)
		}
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return core.Date(n.Value)
		}
	case "!!null":
		return core.String("")
	}
	if core.HasDatePrefix(n.Value) {
		return core.Date(n.Value)
	}
	return core.String(n.Value)
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

var _ core.FrontMatterParser = (*YAMLParser)(nil)
