package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jvmretrace/retrace/mapping"
	"github.com/jvmretrace/retrace/retrace"
)

var frameCmd = &cobra.Command{
	Use:   "frame <mapping-file> <obfuscated-class> <obfuscated-method> [line] [params,comma,separated]",
	Short: "Deobfuscate a single stack frame (remap_frame)",
	Args:  cobra.RangeArgs(3, 5),
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

		line := 0
		if len(args) >= 4 {
			line, err = strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid line %q: %w", args[3], err)
			}
		}
		var params []string
		if len(args) == 5 {
			params = strings.Split(args[4], ",")
		}

		matches := r.RemapFrame(args[1], args[2], line, params)
		if len(matches) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s\n", args[1], args[2])
			return nil
		}
		for _, m := range matches {
			lines := m.Lines()
			for i, mm := range m.Chain {
				holder := m.Class.Original
				if mm.OriginalClass != "" {
					holder = mm.OriginalClass
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s.%s:%d\n", holder, mm.OriginalName, lines[i])
			}
		}
		return nil
	},
}
