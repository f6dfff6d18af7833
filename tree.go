package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/NickyBoy89/cfc/symbol"
	"github.com/spf13/cobra"
)

func newTreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print every class in ladder order",
		Long: `Print every class in ladder order, indented below its parent, along with
its struct and vtable symbols.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.compile(cmd)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), result.Ladder())
			return nil
		},
	}
}

func printTree(w io.Writer, ladder []*symbol.Class) {
	for _, class := range ladder {
		depth := 0
		for parent := class.Parent(); parent != nil; parent = parent.Parent() {
			depth++
		}

		name := class.Name()
		switch {
		case class.Inert():
			name += " [inert]"
		case class.Final():
			name += " [final]"
		}
		fmt.Fprintf(w, "%s%s (%s, %s)\n", strings.Repeat("  ", depth), name, class.FullStructSym(), class.FullVtableVar())
	}
}
