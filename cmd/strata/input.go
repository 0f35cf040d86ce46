package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/adapters/fs"
)

// input gathers the flags shared by the commands that read a content tree.
type input struct {
	path    string
	parser  string
	config  string
	fixture string
	exclude []string
	format  string
}

func (in *input) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.path, "path", "", "Start at this sub path of the tree (e.g. src/content)")
	cmd.Flags().StringVar(&in.parser, "parser", strata.ParserLine, "Front-matter parser: line or yaml")
	cmd.Flags().StringVar(&in.config, "config", "", "YAML file overriding the reference tables (default: nearest strata.yaml)")
	cmd.Flags().StringVar(&in.fixture, "fixture", "", "Read a structure fixture instead of a directory")
	cmd.Flags().StringSliceVar(&in.exclude, "exclude", nil, "Doublestar patterns to skip (replaces the defaults)")
}

func (in *input) bindFormat(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.format, "format", "f", fs.FormatJSON, "Output format: json or yaml")
}

// targetDir returns the directory argument, the working directory by default.
func targetDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return os.Getwd()
}

func (in *input) options(dir string) ([]strata.Option, error) {
	opts := []strata.Option{
		strata.WithLogger(slog.Default()),
		strata.WithParser(in.parser),
	}
	if in.exclude != nil {
		opts = append(opts, strata.WithExclude(in.exclude...))
	}

	cfgPath := in.config
	if cfgPath == "" && in.fixture == "" {
		if found, err := strata.FindConfig(dir); err == nil {
			slog.Debug("using config", "path", found)
			cfgPath = found
		}
	}
	if cfgPath != "" {
		cfg, err := strata.LoadConfig(cfgPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, strata.WithConfig(cfg))
	}
	return opts, nil
}

// infer runs the pipeline over the fixture or the directory.
func (in *input) infer(ctx context.Context, args []string) (*strata.Result, error) {
	dir, err := targetDir(args)
	if err != nil {
		return nil, err
	}
	opts, err := in.options(dir)
	if err != nil {
		return nil, err
	}
	if in.fixture != "" {
		return strata.InferFixture(ctx, in.fixture, in.path, opts...)
	}
	return strata.Infer(ctx, dir, in.path, opts...)
}

func checkFormat(format string) error {
	switch format {
	case fs.FormatJSON, fs.FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want json or yaml)", format)
}
