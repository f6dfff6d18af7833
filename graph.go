package main

import (
	"fmt"
	"io"
	"os"

	"github.com/NickyBoy89/cfc/dot"
	"github.com/spf13/cobra"
)

func newGraphCmd(opts *options) *cobra.Command {
	var outputFile string
	graphCmd := &cobra.Command{
		Use:   "graph",
		Short: "Write the class hierarchy as a graphviz digraph",
		Long: `Write the class hierarchy in the dot language, with one cluster per parcel
and an edge from every class to each of its children.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.compile(cmd)
			if err != nil {
				return err
			}

			var output io.Writer = cmd.OutOrStdout()
			if outputFile != "" {
				f, err := os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				output = f
			}
			return dot.Hierarchy(output, result.Registry, result.Ladder()).Write()
		},
	}
	graphCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the graph to a file instead of stdout")
	return graphCmd
}
