package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <mapping-file>",
	Short: "Print record/class/method counts and whether line info is present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStore()
		if err != nil {
			return err
		}
		idx, err := loadIndex(s, args[0])
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(idx.Summary(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
