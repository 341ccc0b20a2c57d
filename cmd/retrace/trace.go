package main

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jvmretrace/retrace/mapping"
	"github.com/jvmretrace/retrace/retrace"
)

// maxConcurrentTraceFiles bounds how many trace files are rewritten at
// once, the same SetLimit discipline the teacher's symbolizer applies
// to concurrent profile symbolization.
const maxConcurrentTraceFiles = 4

var traceCmd = &cobra.Command{
	Use:   "trace <mapping-file> [trace-files...]",
	Short: "Deobfuscate a full stack trace (remap_stack_trace)",
	Args:  cobra.MinimumNArgs(1),
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

		traceFiles := args[1:]
		if len(traceFiles) == 0 {
			text, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), r.RemapStackTrace(string(text)))
			return nil
		}

		g := new(errgroup.Group)
		g.SetLimit(maxConcurrentTraceFiles)
		for _, path := range traceFiles {
			path := path
			g.Go(func() error {
				return retraceFile(r, path)
			})
		}
		return g.Wait()
	},
}

func retraceFile(r *retrace.Retracer, path string) error {
	text, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}
	out := r.RemapStackTrace(string(text))
	return afero.WriteFile(fs, path+".retraced", []byte(out), 0o644)
}
