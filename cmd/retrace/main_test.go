package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const sampleMapping = `com.example.Foo -> a.b:
    int field -> a
    1:5:void doStuff():10:20 -> b
`

// withMemFs swaps the package-level fs for an in-memory one for the
// duration of fn, writing path -> contents into it first.
func withMemFs(t *testing.T, files map[string]string, fn func()) {
	t.Helper()
	old := fs
	mem := afero.NewMemMapFs()
	for path, contents := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(contents), 0o644))
	}
	fs = mem
	defer func() { fs = old }()
	fn()
}

func run(t *testing.T, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// cobra always executes from the root command, so the subcommand's
	// path has to lead the arguments.
	path := strings.Fields(cmd.CommandPath())[1:]
	rootCmd.SetArgs(append(path, args...))
	err := rootCmd.Execute()
	return out.String(), err
}
