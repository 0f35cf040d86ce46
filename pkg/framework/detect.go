// Package framework recognizes the static-site generator a content
// repository is built with.
package framework

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/aretw0/strata/pkg/core"
)

// Framework describes a supported static-site generator.
type Framework struct {
	Key              string   `json:"key" yaml:"key"`
	Name             string   `json:"name" yaml:"name"`
	ConfigFiles      []string `json:"configFiles" yaml:"configFiles"`
	ContentPatterns  []string `json:"contentPatterns" yaml:"contentPatterns"`
	FrontMatterStyle string   `json:"frontMatterStyle" yaml:"frontMatterStyle"`
	// Package is the npm dependency that identifies the framework, if any.
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
}

// Confidence levels attached to each kind of evidence.
const (
	ConfigFileConfidence = 0.9
	PackageConfidence    = 0.95
)

// Supported lists the known frameworks in detection order.
var Supported = []Framework{
	{Key: "astro", Name: "Astro", ConfigFiles: []string{"astro.config.mjs", "astro.config.js", "astro.config.ts"}, ContentPatterns: []string{"/src/content/", "/src/pages/"}, FrontMatterStyle: "yaml", Package: "astro"},
	{Key: "nextjs", Name: "Next.js", ConfigFiles: []string{"next.config.js", "next.config.mjs", "next.config.ts"}, ContentPatterns: []string{"/content/", "/posts/", "/blog/", "/pages/"}, FrontMatterStyle: "yaml", Package: "next"},
	{Key: "nuxt", Name: "Nuxt.js", ConfigFiles: []string{"nuxt.config.js", "nuxt.config.ts"}, ContentPatterns: []string{"/content/", "/assets/content/"}, FrontMatterStyle: "yaml", Package: "nuxt"},
	{Key: "svelte", Name: "SvelteKit", ConfigFiles: []string{"svelte.config.js", "vite.config.js"}, ContentPatterns: []string{"/src/content/", "/src/posts/"}, FrontMatterStyle: "yaml", Package: "@sveltejs/kit"},
	{Key: "gatsby", Name: "Gatsby", ConfigFiles: []string{"gatsby-config.js", "gatsby-config.ts"}, ContentPatterns: []string{"/content/", "/src/content/", "/blog/"}, FrontMatterStyle: "yaml", Package: "gatsby"},
	{Key: "remix", Name: "Remix", ConfigFiles: []string{"remix.config.js"}, ContentPatterns: []string{"/app/content/", "/content/"}, FrontMatterStyle: "yaml", Package: "@remix-run/node"},
	{Key: "hugo", Name: "Hugo", ConfigFiles: []string{"config.yaml", "config.toml", "hugo.yaml"}, ContentPatterns: []string{"/content/", "/posts/"}, FrontMatterStyle: "toml"},
	{Key: "jekyll", Name: "Jekyll", ConfigFiles: []string{"_config.yml"}, ContentPatterns: []string{"/_posts/", "/content/"}, FrontMatterStyle: "yaml"},
}

// Lookup returns the framework registered under key.
func Lookup(key string) (Framework, bool) {
	for _, f := range Supported {
		if f.Key == key {
			return f, true
		}
	}
	return Framework{}, false
}

// Evidence is one observation pointing at a framework.
type Evidence struct {
	Framework  string  `json:"framework" yaml:"framework"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	ConfigFile string  `json:"configFile,omitempty" yaml:"configFile,omitempty"`
	Source     string  `json:"source,omitempty" yaml:"source,omitempty"`
}

// Detection is the outcome of Detect.
type Detection struct {
	// Best is nil when no evidence was found.
	Best     *Framework `json:"best,omitempty" yaml:"best,omitempty"`
	Evidence []Evidence `json:"evidence" yaml:"evidence"`
}

// Detect inspects the top level of root. Every config file of a framework
// found there counts as evidence, and so does every framework package listed
// in package.json dependencies or devDependencies. The framework with the
// highest confidence wins; on a tie the earliest evidence wins.
//
// An unreadable or malformed package.json is logged and ignored.
func Detect(ctx context.Context, root core.Node, logger *slog.Logger) (Detection, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	files, err := topLevelFiles(ctx, root)
	if err != nil {
		return Detection{}, err
	}

	det := Detection{Evidence: []Evidence{}}
	for _, f := range Supported {
		for _, cfg := range f.ConfigFiles {
			if _, ok := files[cfg]; ok {
				det.Evidence = append(det.Evidence, Evidence{Framework: f.Key, Confidence: ConfigFileConfidence, ConfigFile: cfg})
			}
		}
	}

	if pkgFile, ok := files["package.json"]; ok {
		deps, err := dependencies(ctx, pkgFile)
		if err != nil {
			logger.Warn("failed to parse package.json", "error", err)
		}
		for _, f := range Supported {
			if f.Package == "" {
				continue
			}
			if _, ok := deps[f.Package]; ok {
				det.Evidence = append(det.Evidence, Evidence{Framework: f.Key, Confidence: PackageConfidence, Source: "package.json"})
			}
		}
	}

	if len(det.Evidence) > 0 {
		best := det.Evidence[0]
		for _, e := range det.Evidence[1:] {
			if e.Confidence > best.Confidence {
				best = e
			}
		}
		if f, ok := Lookup(best.Framework); ok {
			det.Best = &f
		}
	}
	return det, nil
}

func topLevelFiles(ctx context.Context, root core.Node) (map[string]core.FileNode, error) {
	folder, ok := root.(core.FolderNode)
	if !ok || root.Kind() != core.KindFolder {
		return nil, core.ErrInvalidTree
	}
	children, err := folder.Children(ctx)
	if err != nil {
		return nil, err
	}
	files := make(map[string]core.FileNode)
	for _, c := range children {
		if f, ok := c.(core.FileNode); ok && c.Kind() == core.KindFile {
			files[c.Name()] = f
		}
	}
	return files, nil
}

type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func dependencies(ctx context.Context, f core.FileNode) (map[string]string, error) {
	content, err := f.ReadContent(ctx)
	if err != nil {
		return nil, err
	}
	var pkg packageManifest
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil, err
	}
	deps := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for k, v := range pkg.Dependencies {
		deps[k] = v
	}
	for k, v := range pkg.DevDependencies {
		deps[k] = v
	}
	return deps, nil
}
