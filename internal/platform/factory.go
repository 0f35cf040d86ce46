package platform

import (
	"fmt"

	"github.com/aretw0/strata/pkg/adapters/frontmatter"
	"github.com/aretw0/strata/pkg/adapters/markdown"
	"github.com/aretw0/strata/pkg/core"
)

// New builds an inference service from the given options.
//
//	svc, err := strata.New(strata.WithParser("yaml"))
func New(opts ...Option) (*core.Service, error) {
	return newService(apply(opts))
}

func newService(o *options) (*core.Service, error) {
	parser, err := resolveParser(o)
	if err != nil {
		return nil, err
	}
	analyzer := o.analyzer
	if analyzer == nil {
		analyzer = markdown.NewAnalyzer()
	}

	svcOpts := []core.ServiceOption{core.WithServiceLogger(o.logger)}
	if o.engine != nil {
		svcOpts = append(svcOpts, core.WithServiceConfig(*o.engine))
	}
	return core.NewService(frontmatter.Splitter, parser, analyzer, svcOpts...), nil
}

func resolveParser(o *options) (core.FrontMatterParser, error) {
	if o.frontMatter != nil {
		return o.frontMatter, nil
	}
	switch o.parser {
	case ParserLine, "":
		return frontmatter.NewLineParser(), nil
	case ParserYAML:
		return frontmatter.NewYAMLParser(), nil
	}
	return nil, fmt.Errorf("unknown parser: %s", o.parser)
}
