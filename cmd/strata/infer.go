package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/adapters/fs"
)

var (
	inferIn  input
	inferOut string
)

var inferCmd = &cobra.Command{
	Use:   "infer [dir]",
	Short: "Infer the content schema of a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(inferIn.format); err != nil {
			return err
		}
		res, err := inferIn.infer(cmd.Context(), args)
		if err != nil {
			return err
		}
		if inferOut != "" {
			if err := strata.WriteSnapshot(inferOut, res); err != nil {
				return err
			}
			slog.Info("snapshot written", "path", inferOut)
			return nil
		}
		return fs.Encode(cmd.OutOrStdout(), res, inferIn.format)
	},
}

func init() {
	rootCmd.AddCommand(inferCmd)
	inferIn.bind(inferCmd)
	inferIn.bindFormat(inferCmd)
	inferCmd.Flags().StringVarP(&inferOut, "out", "o", "", "Write the result to a file (.json, .yaml or .yml)")
}
