package retrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFileSpecWithFileAndLine(t *testing.T) {
	fs := ParseFileSpec("Foo.java:42")
	assert.True(t, fs.HasFileName)
	assert.Equal(t, "Foo.java", fs.FileName)
	assert.True(t, fs.HasLine)
	assert.Equal(t, 42, fs.Line)
}

func TestParseFileSpecNativeMethod(t *testing.T) {
	fs := ParseFileSpec("Native Method")
	assert.True(t, fs.NativeMethod)
	assert.False(t, fs.HasFileName)
	assert.False(t, fs.HasLine)
}

func TestParseFileSpecUnknownSource(t *testing.T) {
	fs := ParseFileSpec("Unknown Source")
	assert.False(t, fs.HasFileName)
	assert.False(t, fs.HasLine)
}

func TestParseFileSpecUnknownSourceWithLine(t *testing.T) {
	fs := ParseFileSpec("Unknown Source:17")
	assert.False(t, fs.HasFileName)
	assert.True(t, fs.HasLine)
	assert.Equal(t, 17, fs.Line)
}

func TestParseFileSpecLeadingColon(t *testing.T) {
	fs := ParseFileSpec(":99")
	assert.False(t, fs.HasFileName)
	assert.True(t, fs.HasLine)
	assert.Equal(t, 99, fs.Line)
}

func TestParseFileSpecWindowsPath(t *testing.T) {
	fs := ParseFileSpec(`C:\src\Foo.java:10`)
	assert.True(t, fs.HasFileName)
	assert.Equal(t, `C:\src\Foo.java`, fs.FileName)
	assert.True(t, fs.HasLine)
	assert.Equal(t, 10, fs.Line)
}

func TestParseFileSpecFileNoLine(t *testing.T) {
	fs := ParseFileSpec("PG")
	assert.True(t, fs.HasFileName)
	assert.Equal(t, "PG", fs.FileName)
	assert.False(t, fs.HasLine)
}
