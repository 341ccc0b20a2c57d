// Package cache implements the binary symbol-table cache spec §6
// mentions ("Binary cache": out of scope as an external collaborator in
// spec.md, specified only by its interfaces — built here as a concrete
// adapter). The layout is grounded on the teacher's lidia format (magic
// + version header, CRC32-Castagnoli-checked tables, sorted arrays)
// adapted from address ranges to ProGuard/R8 class and member names.
// Open decodes every table into an in-memory mapping.MappingIndex; the
// sorted arrays are not searched in place.
package cache

import "hash/crc32"

// Format constants. Exported ones are part of the on-disk contract a
// future reader must match; the rest are implementation detail.
const (
	// Version is bumped whenever the on-disk layout changes incompatibly.
	Version uint32 = 1

	classDirEntrySize = 8 * 4  // 8 uint32 fields, see classDirEntry
	memberEntrySize   = 16 * 4 // 16 uint32-sized fields, see memberEntry
)

// magic identifies a retrace cache file, the same role the teacher's
// ".dia" magic plays for lidia files.
var magic = [4]byte{'.', 'r', 't', 'c'}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// header mirrors lidia's table-of-tables shape: one fixed-size record
// up front naming the offset, size, and CRC of each variable-length
// section that follows it.
//
// Fields are exported so encoding/binary (a different package) can
// Set them via reflection when decoding; this is purely an on-disk
// struct, never part of this package's public API.
type header struct {
	Magic   [4]byte
	Version uint32

	ClassCount  uint32
	MemberCount uint32

	HasMinAPI uint32
	MinAPI    uint32
	UUIDHigh  uint64
	UUIDLow   uint64

	StringsOffset uint32
	StringsSize   uint32
	StringsCRC    uint32

	ClassDirOffset uint32
	ClassDirSize   uint32
	ClassDirCRC    uint32

	MembersOffset uint32
	MembersSize   uint32
	MembersCRC    uint32

	CompilerOffset, CompilerLen               uint32
	CompilerVersionOffset, CompilerVersionLen uint32
	PgMapIDOffset, PgMapIDLen                 uint32
	PgMapHashOffset, PgMapHashLen             uint32
}

// classDirEntry is one fixed-size row of the class directory, sorted by
// the obfuscated name's bytes.
type classDirEntry struct {
	ObfNameOff, ObfNameLen       uint32
	OrigNameOff, OrigNameLen     uint32
	SourceFileOff, SourceFileLen uint32
	MemberStart, MemberCount     uint32
}

// memberEntry is one fixed-size row of the member table. Members
// belonging to the same class are stored contiguously (classDirEntry's
// MemberStart/MemberCount slice into this array) and sorted within that
// slice by (obfuscated name, mapping order).
type memberEntry struct {
	ObfNameOff, ObfNameLen         uint32
	OrigNameOff, OrigNameLen       uint32
	OrigClassOff, OrigClassLen     uint32
	ReturnTypeOff, ReturnTypeLen   uint32
	ParamsOff, ParamsLen           uint32
	Flags                          uint32
	MinStart, MinEnd               int32
	OriginalStart, OriginalEnd     int32
	MappingOrder                   uint32
}

const (
	flagIsMethod = 1 << iota
	flagHasMinRange
	flagHasOriginalLine
	flagHasOriginalEnd
	flagSynthesized
	flagOutline
)
