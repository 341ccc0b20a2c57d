package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Build or inspect a binary mapping cache",
}

var cacheBuildCmd = &cobra.Command{
	Use:   "build <mapping-file> <out.rtcache>",
	Short: "Build a binary cache from a text mapping file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStore()
		if err != nil {
			return err
		}
		idx, err := s.LoadMappingFile(args[0])
		if err != nil {
			return err
		}
		return s.BuildCache(idx, args[1])
	},
}

var cacheInspectCmd = &cobra.Command{
	Use:   "inspect <cache-file>",
	Short: "Load a binary cache and print its summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newStore()
		if err != nil {
			return err
		}
		idx, err := s.LoadCacheFile(args[0])
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

func init() {
	cacheCmd.AddCommand(cacheBuildCmd, cacheInspectCmd)
}
