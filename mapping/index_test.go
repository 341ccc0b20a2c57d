package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMapping = `# compiler: R8
# compiler_version: 3.3.28
# min_api: 21
# pg_map_hash: sha256/abcdef
com.example.Foo -> a.b.c:
# {"id":"sourceFile","fileName":"Foo.java"}
    android.content.Context mContext -> a
    11:14:void doWork(int):100:103 -> b
    20:20:void lambda$run$0():200:200 -> c
    # {"id":"com.android.tools.r8.synthesized"}
com.example.Bar -> a.b.d:
    void run() -> a
    1:1:void inlinedHelper():5:5 -> b
    1:1:void run():40:40 -> b
`

func buildSample(t *testing.T) *MappingIndex {
	t.Helper()
	idx, diag := Build(sampleMapping)
	require.True(t, diag.Empty(), "unexpected diagnostics: %v", diag.Items)
	return idx
}

func TestBuildParsesHeaders(t *testing.T) {
	idx := buildSample(t)
	assert.Equal(t, "R8", idx.Compiler)
	assert.Equal(t, "3.3.28", idx.CompilerVersion)
	assert.True(t, idx.HasMinAPI)
	assert.Equal(t, 21, idx.MinAPI)
	assert.Equal(t, "sha256/abcdef", idx.PgMapHash)
}

func TestBuildIndexesClassesAndMembers(t *testing.T) {
	idx := buildSample(t)

	foo, ok := idx.ClassByObfuscated("a.b.c")
	require.True(t, ok)
	assert.Equal(t, "com.example.Foo", foo.Original)
	assert.Equal(t, "Foo.java", foo.SourceFile)
	assert.Len(t, foo.Members, 3)

	classes := idx.ClassesByOriginal("com.example.Foo")
	require.Len(t, classes, 1)
	assert.Same(t, foo, classes[0])
}

func TestBuildAppliesSynthesizedAnnotationToLastMember(t *testing.T) {
	idx := buildSample(t)
	foo, _ := idx.ClassByObfuscated("a.b.c")
	cands := foo.CandidatesFor("c")
	require.Len(t, cands, 1)
	assert.True(t, cands[0].Synthesized)
	// the preceding member must be untouched
	dowork := foo.CandidatesFor("b")
	require.Len(t, dowork, 1)
	assert.False(t, dowork[0].Synthesized)
}

func TestSummaryCountsDistinctNames(t *testing.T) {
	idx := buildSample(t)
	s := idx.Summary()
	assert.Equal(t, 2, s.ClassCount)
	// Foo: a,b,c = 3 distinct obfuscated names. Bar: a,b = 2 (b appears
	// twice, as an inline chain pair, but is one distinct name).
	assert.Equal(t, 5, s.MethodCount)
	assert.True(t, s.HasLineInfo)
}

func TestBuildSkipsMemberOutsideClassAsDiagnostic(t *testing.T) {
	_, diag := Build("    void run() -> a\n")
	require.False(t, diag.Empty())
	assert.Equal(t, ParseError, diag.Items[0].Kind)
}

func TestBuildRecordsInvalidHeaderAndKeepsGoing(t *testing.T) {
	idx, diag := Build("# min_api: notanumber\ncom.example.Foo -> a:\n    void run() -> a\n")
	require.False(t, diag.Empty())
	assert.Equal(t, InvalidHeader, diag.Items[0].Kind)
	_, ok := idx.ClassByObfuscated("a")
	assert.True(t, ok)
}

func TestUUIDIsDeterministicFromHash(t *testing.T) {
	idx1, _ := Build(sampleMapping)
	idx2, _ := Build(sampleMapping)
	assert.Equal(t, idx1.UUID(), idx2.UUID())
}

func TestUUIDFallsBackToContentDigest(t *testing.T) {
	a, _ := Build("com.example.Foo -> a:\n    void run() -> a\n")
	b, _ := Build("com.example.Foo -> a:\n    void run() -> b\n")
	assert.NotEqual(t, a.UUID(), b.UUID())
}
