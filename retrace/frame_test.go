package retrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrameLineBasic(t *testing.T) {
	f, ok := ParseFrameLine("\tat a.b.c.a(SourceFile:11)")
	require.True(t, ok)
	assert.Equal(t, "\t", f.Prefix)
	assert.Equal(t, "a.b.c", f.ClassName)
	assert.Equal(t, "a", f.MethodName)
	assert.True(t, f.FileSpec.HasLine)
	assert.Equal(t, 11, f.FileSpec.Line)
}

func TestParseFrameLineWithModulePrefix(t *testing.T) {
	f, ok := ParseFrameLine("\tat java.base/java.lang.Thread.run(Thread.java:833)")
	require.True(t, ok)
	assert.Equal(t, "java.base", f.ModulePrefix)
	assert.Equal(t, "java.lang.Thread", f.ClassName)
	assert.Equal(t, "run", f.MethodName)
}

func TestParseFrameLineWithLogcatPrefix(t *testing.T) {
	f, ok := ParseFrameLine("W/AndroidRuntime: \tat a.b.c.a(SourceFile:1)")
	require.True(t, ok)
	assert.Equal(t, "W/AndroidRuntime: \t", f.Prefix)
	assert.Equal(t, "a.b.c", f.ClassName)
}

func TestParseFrameLineRejectsNonFrame(t *testing.T) {
	_, ok := ParseFrameLine("java.lang.RuntimeException: boom")
	assert.False(t, ok)
}

func TestParseFrameLineRejectsUnclosedParen(t *testing.T) {
	_, ok := ParseFrameLine("\tat a.b.c.a(SourceFile:1")
	assert.False(t, ok)
}
