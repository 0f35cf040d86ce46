package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/strata/pkg/adapters/fs"
)

var formIn input

var formCmd = &cobra.Command{
	Use:   "form [dir]",
	Short: "Print the editing form compiled from the inferred schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(formIn.format); err != nil {
			return err
		}
		res, err := formIn.infer(cmd.Context(), args)
		if err != nil {
			return err
		}
		return fs.Encode(cmd.OutOrStdout(), res.Form, formIn.format)
	},
}

func init() {
	rootCmd.AddCommand(formCmd)
	formIn.bind(formCmd)
	formIn.bindFormat(formCmd)
}
