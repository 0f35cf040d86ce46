package strata_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/aretw0/strata"
)

// Example_basic infers the schema of a small content directory.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "strata-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	post := "---\ntitle: Hello\npublishedAt: 2024-01-15\n---\n# Intro\nSome words here.\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "hello.md"), []byte(post), 0644); err != nil {
		log.Fatal(err)
	}

	res, err := strata.Infer(context.Background(), tmpDir, "")
	if err != nil {
		log.Fatal(err)
	}

	for _, name := range res.Schema.DetectedFields {
		fmt.Println(name, res.Schema.FieldTypes[name])
	}
	// Output:
	// title text
	// publishedAt date
	// headings array
	// wordCount number
	// readingTime number
}

// Example_form prints the labels of the generated form.
func Example_form() {
	tmpDir, err := os.MkdirTemp("", "strata-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	post := "---\nauthor: Ada\ncanonicalUrl: https://example.com/a\n---\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "a.md"), []byte(post), 0644); err != nil {
		log.Fatal(err)
	}

	res, err := strata.Infer(context.Background(), tmpDir, "",
		strata.WithConfig(strata.Config{CommonFields: []string{"title"}, SEOFields: []string{"ogImage"}}),
	)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range res.Form.Fields {
		fmt.Printf("%s (%s) suggested=%v\n", f.Label, f.Type, f.Suggested)
	}
	// Output:
	// Author (text) suggested=false
	// Canonical URL (url) suggested=false
	// Word Count (number) suggested=false
	// Reading Time (number) suggested=false
	// Title (text) suggested=true
	// Og Image (url) suggested=true
}
