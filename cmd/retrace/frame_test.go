package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameCmdResolvesLineWithinRange(t *testing.T) {
	withMemFs(t, map[string]string{"map.txt": sampleMapping}, func() {
		out, err := run(t, frameCmd, []string{"map.txt", "a.b", "b", "3"})
		require.NoError(t, err)
		assert.Equal(t, "com.example.Foo.doStuff:12\n", out)
	})
}

func TestFrameCmdPassesThroughUnresolved(t *testing.T) {
	withMemFs(t, map[string]string{"map.txt": sampleMapping}, func() {
		out, err := run(t, frameCmd, []string{"map.txt", "z.z", "q"})
		require.NoError(t, err)
		assert.Equal(t, "z.z.q\n", out)
	})
}
