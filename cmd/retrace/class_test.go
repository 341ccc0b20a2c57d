package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassCmdResolvesMappedName(t *testing.T) {
	withMemFs(t, map[string]string{"map.txt": sampleMapping}, func() {
		out, err := run(t, classCmd, []string{"map.txt", "a.b"})
		require.NoError(t, err)
		assert.Equal(t, "com.example.Foo\n", out)
	})
}

func TestClassCmdPassesThroughUnknownClass(t *testing.T) {
	withMemFs(t, map[string]string{"map.txt": sampleMapping}, func() {
		out, err := run(t, classCmd, []string{"map.txt", "z.z"})
		require.NoError(t, err)
		assert.Equal(t, "z.z\n", out)
	})
}
