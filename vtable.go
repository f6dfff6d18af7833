package main

import (
	"fmt"
	"io"

	"github.com/NickyBoy89/cfc/symbol"
	"github.com/spf13/cobra"
)

func newVtableCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "vtable <class>",
		Short: "Print the method table and instance variables of a class",
		Long: `Print the method table of a class in slot order, with the function that
implements each slot, followed by the class's instance variables in layout
order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.compile(cmd)
			if err != nil {
				return err
			}
			class := result.Registry.FetchByName(args[0])
			if class == nil {
				return fmt.Errorf("unknown class '%s'", args[0])
			}
			printVtable(cmd.OutOrStdout(), result.Registry, class)
			return nil
		},
	}
}

func printVtable(w io.Writer, reg *symbol.Registry, class *symbol.Class) {
	fmt.Fprintf(w, "%s (%s)\n\n", class.Name(), class.FullVtableVar())

	fmt.Fprintf(w, "%-5s %-11s %-24s %s\n", "SLOT", "KIND", "METHOD", "IMPLEMENTATION")
	for ind, slot := range class.MethodTable() {
		imp := "-"
		if declarer := reg.FetchByName(slot.Method.ClassName()); declarer != nil && !slot.Method.Abstract() {
			imp = slot.Method.ImpFunc(declarer)
		}
		fmt.Fprintf(w, "%-5d %-11s %-24s %s\n", ind, slot.Kind, slot.Method.FullMethodSym(class), imp)
	}

	fmt.Fprintf(w, "\n%-7s %-12s %-12s %s\n", "OFFSET", "NAME", "TYPE", "DECLARED IN")
	for ind, variable := range class.MemberVars() {
		fmt.Fprintf(w, "%-7d %-12s %-12s %s\n", ind, variable.MicroSym(), variable.Type(), variable.ClassName())
	}
}
