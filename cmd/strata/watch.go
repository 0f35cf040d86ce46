package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/adapters/lifecycle"
)

var (
	watchIn       input
	watchDebounce time.Duration
	watchChanges  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-infer the schema every time the content changes",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchIn.fixture != "" {
			return fmt.Errorf("--fixture cannot be watched")
		}
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		opts, err := watchIn.options(dir)
		if err != nil {
			return err
		}
		opts = append(opts, strata.WithDebounce(watchDebounce))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		refreshes, err := strata.Watch(ctx, dir, watchIn.path, opts...)
		if err != nil {
			return err
		}

		var srcOpts []lifecycle.Option
		if watchChanges {
			srcOpts = append(srcOpts, lifecycle.OnlyChanges())
		}
		src := lifecycle.NewSource(refreshes, srcOpts...)
		if err := src.Start(ctx); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for ev := range src.Events() {
			fmt.Fprintln(out, ev.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchIn.bind(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Wait this long for changes to settle")
	watchCmd.Flags().BoolVar(&watchChanges, "changes-only", false, "Print a refresh only when the schema changed")
}
