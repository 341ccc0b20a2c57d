package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvmretrace/retrace/mapping"
)

const sampleMapping = `# compiler: R8
# compiler_version: 3.3.28
# pg_map_hash: sha256/abcdef
com.example.app.MainActivity -> a.b.c:
# {"id":"sourceFile","fileName":"MainActivity.java"}
    1:5:void onCreate(android.os.Bundle):20:24 -> a
com.example.app.Worker -> a.b.d:
    10:10:void run():42:42 -> a
    1:1:void inlinedHelper():5:5 -> b
    1:1:void run():40:40 -> b
`

func TestBuildAndOpenRoundTrip(t *testing.T) {
	idx, diag := mapping.Build(sampleMapping)
	require.True(t, diag.Empty())

	data, err := Build(idx)
	require.NoError(t, err)

	reloaded, err := Open(data)
	require.NoError(t, err)

	assert.Equal(t, idx.Summary(), reloaded.Summary())
	assert.Equal(t, idx.UUID(), reloaded.UUID())
	assert.Equal(t, idx.Compiler, reloaded.Compiler)
	assert.Equal(t, idx.CompilerVersion, reloaded.CompilerVersion)

	c, ok := reloaded.ClassByObfuscated("a.b.c")
	require.True(t, ok)
	assert.Equal(t, "com.example.app.MainActivity", c.Original)
	assert.Equal(t, "MainActivity.java", c.SourceFile)

	matches := mapping.Resolve(reloaded, "a.b.d", "b", 1, nil, mapping.DefaultResolverOptions())
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Chain, 2)
	assert.Equal(t, "inlinedHelper", matches[0].Chain[0].OriginalName)
	assert.Equal(t, "run", matches[0].Chain[1].OriginalName)
}

func TestOpenRejectsBadMagic(t *testing.T) {
	idx, _ := mapping.Build(sampleMapping)
	data, err := Build(idx)
	require.NoError(t, err)

	corrupt := append([]byte(nil), data...)
	corrupt[0] = 'X'
	_, err = Open(corrupt)
	assert.Error(t, err)
}

func TestOpenRejectsCorruptedSection(t *testing.T) {
	idx, _ := mapping.Build(sampleMapping)
	data, err := Build(idx)
	require.NoError(t, err)

	corrupt := append([]byte(nil), data...)
	corrupt[len(corrupt)-1] ^= 0xFF
	_, err = Open(corrupt)
	assert.Error(t, err)
}
