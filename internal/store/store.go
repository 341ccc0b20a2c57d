// Package store loads ProGuard/R8 mapping files and binary caches from a
// filesystem and keeps recently used mapping.MappingIndex values around,
// the domain equivalent of the teacher's symbolizer fetch-and-cache
// layer (pkg/symbolizer.Symbolizer): fetch from durable storage once,
// serve repeated lookups from memory afterward.
package store

import (
	"flag"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/google/uuid"

	"github.com/jvmretrace/retrace/internal/cache"
	"github.com/jvmretrace/retrace/mapping"
)

// Config is the store's one configuration surface, registered the way
// the teacher's (*symbolizer.Config).RegisterFlags is.
type Config struct {
	CacheSize int
}

// RegisterFlags wires Config into a flag.FlagSet.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.CacheSize, "store.cache-size", 64, "number of parsed mapping indices to keep in memory")
}

// Store loads mapping text or binary caches through an afero.Fs and
// keeps each parsed result, keyed by the mapping's UUID, for Get. Every
// Load call reads and decodes its file again.
type Store struct {
	fs     afero.Fs
	cache  *lru.Cache[uuid.UUID, *mapping.MappingIndex]
	logger logrus.FieldLogger
}

// New builds a Store. A nil logger defaults to logrus's standard logger.
func New(fs afero.Fs, cfg Config, logger logrus.FieldLogger) (*Store, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = 64
	}
	c, err := lru.New[uuid.UUID, *mapping.MappingIndex](size)
	if err != nil {
		return nil, errors.Wrap(err, "store: create index cache")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{fs: fs, cache: c, logger: logger}, nil
}

// LoadMappingFile parses a text mapping file at path, logs a summary of
// any parse diagnostics, and caches the result.
func (s *Store) LoadMappingFile(path string) (*mapping.MappingIndex, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "store: read mapping file %s", path)
	}

	idx, diag := mapping.Build(string(data))
	if !diag.Empty() {
		s.logger.WithFields(logrus.Fields{
			"file":  path,
			"count": len(diag.Items),
		}).Warn("mapping file parsed with diagnostics: " + diag.Error())
	}

	s.cache.Add(idx.UUID(), idx)
	return idx, nil
}

// LoadCacheFile loads a binary cache produced by BuildCache.
func (s *Store) LoadCacheFile(path string) (*mapping.MappingIndex, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "store: read cache file %s", path)
	}
	idx, err := cache.Open(data)
	if err != nil {
		return nil, errors.Wrapf(err, "store: decode cache file %s", path)
	}
	s.cache.Add(idx.UUID(), idx)
	return idx, nil
}

// Get returns a previously loaded index by UUID, if still cached.
func (s *Store) Get(id uuid.UUID) (*mapping.MappingIndex, bool) {
	return s.cache.Get(id)
}

// BuildCache serializes idx and writes it to outPath.
func (s *Store) BuildCache(idx *mapping.MappingIndex, outPath string) error {
	data, err := cache.Build(idx)
	if err != nil {
		return errors.Wrap(err, "store: build cache")
	}
	if err := afero.WriteFile(s.fs, outPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "store: write cache file %s", outPath)
	}
	return nil
}
