package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceCmdRewritesStdin(t *testing.T) {
	withMemFs(t, map[string]string{"map.txt": sampleMapping}, func() {
		var out bytes.Buffer
		traceCmd.SetIn(strings.NewReader("com.example.Foo: boom\n\tat a.b.b(PG:3)\n"))
		traceCmd.SetOut(&out)
		traceCmd.SetErr(&out)
		rootCmd.SetArgs([]string{"trace", "map.txt"})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), "com.example.Foo: boom")
		assert.Contains(t, out.String(), "doStuff")
	})
}

func TestTraceCmdRewritesMultipleFilesConcurrently(t *testing.T) {
	withMemFs(t, map[string]string{
		"map.txt":   sampleMapping,
		"one.trace": "com.example.Foo: boom\n\tat a.b.b(PG:3)\n",
		"two.trace": "com.example.Foo: boom\n\tat a.b.b(PG:3)\n",
	}, func() {
		_, err := run(t, traceCmd, []string{"map.txt", "one.trace", "two.trace"})
		require.NoError(t, err)

		for _, name := range []string{"one.trace.retraced", "two.trace.retraced"} {
			data, err := afero.ReadFile(fs, name)
			require.NoError(t, err)
			assert.Contains(t, string(data), "doStuff")
		}
	})
}
