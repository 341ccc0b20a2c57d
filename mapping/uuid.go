package mapping

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// uuidAlias lets index.go reference uuid.UUID without importing
// github.com/google/uuid a second time for the same type.
type uuidAlias = uuid.UUID

// namespace roots every UUID this package derives, so two different
// tools deriving a UUID for the same mapping content always agree.
var namespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("jvmretrace"))

// UUID derives spec §6's deterministic mapping identifier: the
// `pg_map_id` header if it parses as a UUID outright, else a
// namespace-UUID seeded by `pg_map_id` if that header is present at all,
// else a namespace-UUID seeded by `pg_map_hash` if present, else a
// namespace-UUID of the raw mapping text's xxhash digest. An index
// reconstructed from a binary cache reports whatever UUID was stored in
// the cache instead, via SetUUIDOverride.
func (idx *MappingIndex) UUID() uuid.UUID {
	if idx.uuidOverride != nil {
		return *idx.uuidOverride
	}
	if idx.PgMapID != "" {
		if u, err := uuid.Parse(idx.PgMapID); err == nil {
			return u
		}
		return uuid.NewSHA1(namespace, []byte(idx.PgMapID))
	}
	if idx.PgMapHash != "" {
		return uuid.NewSHA1(namespace, []byte(idx.PgMapHash))
	}
	return uuid.NewSHA1(namespace, digestOf(idx.raw))
}

// digestOf reduces arbitrarily large mapping text to a small, stable
// seed before handing it to the UUID derivation, rather than hashing
// megabytes of mapping text through SHA-1 twice.
func digestOf(text string) []byte {
	sum := xxhash.Sum64String(text)
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, sum)
	return buf
}
