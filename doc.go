// Package strata is the Composition Root for the Strata schema inference engine.
//
// It connects the core inference pipeline (Domain Layer) with the adapters
// that read content trees and decode documents, using the Hexagonal
// Architecture pattern.
//
// Strata scans a repository of Markdown documents, reads the front matter of
// each one, derives extra fields from the body (images, links, headings, word
// count, reading time) and merges everything into a single content schema.
// The schema is completed with suggestions for the common and SEO fields it
// lacks, then compiled into a form descriptor an editor can render.
//
// Features:
//
//   - **Tree agnostic**: documents come from any core.Node tree, a directory on disk or an in-memory fixture.
//   - **Pluggable parsing**: a line-oriented front-matter parser by default, full YAML on request.
//   - **Stable schemas**: the first document to declare a field decides its type and sample.
//   - **Forms**: labels, placeholders, validation rules and options for every field.
//   - **Watch mode**: re-infers the schema whenever content changes.
//
// Usage:
//
//	svc, err := strata.New(strata.WithParser("yaml"), strata.WithLogger(logger))
//
//	tree, err := strata.OpenTree("./site")
//	res, err := svc.InferSource(ctx, tree)
//
//	for _, f := range res.Form.Fields {
//		fmt.Println(f.Label, f.Type)
//	}
package strata
