package main

import (
	"strings"

	"github.com/jvmretrace/retrace/internal/store"
	"github.com/jvmretrace/retrace/mapping"
)

// loadIndex loads a mapping file or a binary cache, dispatching on the
// ".rtcache" extension so class, frame, trace and summary accept either
// interchangeably. cache build always reads text; cache inspect always
// reads a cache.
func loadIndex(s *store.Store, path string) (*mapping.MappingIndex, error) {
	if strings.HasSuffix(path, ".rtcache") {
		return s.LoadCacheFile(path)
	}
	return s.LoadMappingFile(path)
}
