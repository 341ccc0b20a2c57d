package store

import (
	"flag"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMapping = "com.example.Foo -> a:\n    void run() -> a\n"

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := New(fs, Config{}, logrus.New())
	require.NoError(t, err)
	return s, fs
}

func TestLoadMappingFileAndGet(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "/app.map.txt", []byte(sampleMapping), 0o644))

	idx, err := s.LoadMappingFile("/app.map.txt")
	require.NoError(t, err)

	got, ok := s.Get(idx.UUID())
	require.True(t, ok)
	assert.Same(t, idx, got)
}

func TestLoadMappingFileMissingReturnsWrappedError(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.LoadMappingFile("/nope.txt")
	assert.Error(t, err)
}

func TestBuildCacheThenLoadCacheFileRoundTrips(t *testing.T) {
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, "/app.map.txt", []byte(sampleMapping), 0o644))

	idx, err := s.LoadMappingFile("/app.map.txt")
	require.NoError(t, err)

	require.NoError(t, s.BuildCache(idx, "/app.rtcache"))

	reloaded, err := s.LoadCacheFile("/app.rtcache")
	require.NoError(t, err)
	assert.Equal(t, idx.Summary(), reloaded.Summary())
}

func TestConfigRegisterFlagsDefaultsCacheSize(t *testing.T) {
	cfg := Config{}
	cfg.RegisterFlags(flag.NewFlagSet("test", flag.ContinueOnError))
	assert.Equal(t, 64, cfg.CacheSize)
}
