package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/adapters/fs"
)

var (
	detectFixture string
	detectFormat  string
)

var detectCmd = &cobra.Command{
	Use:   "detect [dir]",
	Short: "Detect the static-site generator a directory is built with",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			det strata.Detection
			err error
		)
		opts := []strata.Option{strata.WithLogger(slog.Default())}
		if detectFixture != "" {
			det, err = strata.DetectFixture(cmd.Context(), detectFixture, opts...)
		} else {
			var dir string
			if dir, err = targetDir(args); err != nil {
				return err
			}
			det, err = strata.Detect(cmd.Context(), dir, opts...)
		}
		if err != nil {
			return err
		}

		if detectFormat != "" {
			if err := checkFormat(detectFormat); err != nil {
				return err
			}
			return fs.Encode(cmd.OutOrStdout(), det, detectFormat)
		}

		out := cmd.OutOrStdout()
		if det.Best == nil {
			fmt.Fprintln(out, "no framework detected")
			return nil
		}
		fmt.Fprintf(out, "%s (%s front matter)\n", det.Best.Name, det.Best.FrontMatterStyle)
		for _, e := range det.Evidence {
			source := e.ConfigFile
			if source == "" {
				source = e.Source
			}
			fmt.Fprintf(out, "  %-8s %.2f  %s\n", e.Framework, e.Confidence, source)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().StringVar(&detectFixture, "fixture", "", "Read a structure fixture instead of a directory")
	detectCmd.Flags().StringVarP(&detectFormat, "format", "f", "", "Output format: json or yaml (default: a text summary)")
}
