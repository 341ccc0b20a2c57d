package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jvmretrace/retrace/mapping"
	"github.com/jvmretrace/retrace/retrace"
)

var classCmd = &cobra.Command{
	Use:   "class <mapping-file> <obfuscated-class>",
	Short: "Deobfuscate a single class name (remap_class)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStore()
		if err != nil {
			return err
		}
		idx, err := loadIndex(s, args[0])
		if err != nil {
			return err
		}
		r, err := retrace.New(idx, mapping.DefaultResolverOptions(), 0)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), r.RemapClass(args[1]))
		return nil
	},
}
