package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/adapters/fs"
	"github.com/aretw0/strata/pkg/core"
)

var inspectIn input

var inspectCmd = &cobra.Command{
	Use:   "inspect [dir]",
	Short: "Run one inference and print the engine topology as a Mermaid diagram",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if inspectIn.fixture != "" {
			return fmt.Errorf("--fixture cannot be inspected")
		}
		dir, err := targetDir(args)
		if err != nil {
			return err
		}
		opts, err := inspectIn.options(dir)
		if err != nil {
			return err
		}
		svc, err := strata.New(opts...)
		if err != nil {
			return err
		}
		tree, err := strata.OpenTree(dir, opts...)
		if err != nil {
			return err
		}
		root, err := tree.Root(cmd.Context())
		if err != nil {
			return err
		}
		if inspectIn.path != "" {
			_, err = svc.InferPath(cmd.Context(), root, inspectIn.path)
		} else {
			_, err = svc.Infer(cmd.Context(), root)
		}
		if err != nil {
			slog.Warn("inference failed", "error", err)
		}

		config := introspection.DefaultDiagramConfig()
		config.SecondaryID = "engine"
		config.SecondaryLabel = "Inference Engine"
		fmt.Fprintln(cmd.OutOrStdout(), introspection.TreeDiagram(topology(svc, tree), config))
		return nil
	},
}

// topologyNode is rendered by introspection.TreeDiagram. Status values must
// be classes known to introspection.DefaultStyles.
type topologyNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []topologyNode
}

func topology(svc introspection.Introspectable, tree introspection.Introspectable) topologyNode {
	svcNode := topologyNode{Name: "Service", Status: "running", Metadata: map[string]string{}}
	if st, ok := svc.State().(core.ServiceState); ok {
		svcNode.Metadata["parser"] = st.ParserType
		svcNode.Metadata["runs"] = strconv.Itoa(st.Runs)
		svcNode.Metadata["fields"] = strconv.Itoa(st.DetectedFields)
		svcNode.Metadata["suggestions"] = strconv.Itoa(st.Suggestions)
		svcNode.Metadata["skipped"] = strconv.Itoa(st.Skipped)
		if st.LastError != "" {
			svcNode.Status = "failed"
		}
	}

	treeNode := topologyNode{Name: "Tree", Status: "running", Metadata: map[string]string{"type": "fs"}}
	watcher := topologyNode{Name: "Watcher", Status: "suspended", Metadata: map[string]string{"type": "goroutine"}}
	if st, ok := tree.State().(fs.TreeState); ok {
		treeNode.Metadata["path"] = st.Path
		treeNode.Metadata["refreshes"] = strconv.Itoa(st.Refreshes)
		if st.WatcherActive {
			watcher.Status = "running"
		}
	}
	treeNode.Children = []topologyNode{watcher}

	return topologyNode{
		Name:     "Strata",
		Status:   "running",
		Metadata: map[string]string{"type": "process"},
		Children: []topologyNode{svcNode, treeNode},
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectIn.bind(inspectCmd)
}
