// Command retrace is a CLI front end over the mapping/retrace packages:
// deobfuscating single frames, classes, methods and whole stack traces
// against a ProGuard/R8 mapping file or its binary cache.
package main

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jvmretrace/retrace/internal/store"
)

var fs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "retrace",
	Short: "Deobfuscate ProGuard/R8 stack traces, classes, and frames",
}

func init() {
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000000",
		FullTimestamp:   true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", fmt.Sprintf(" %s:%d", f.File, f.Line)
		},
	})

	rootCmd.AddCommand(classCmd, frameCmd, traceCmd, summaryCmd, cacheCmd)
}

func newStore() (*store.Store, error) {
	return store.New(fs, store.Config{}, logrus.StandardLogger())
}

// Execute runs the CLI; main.main calls this once.
func Execute() error {
	return rootCmd.Execute()
}
