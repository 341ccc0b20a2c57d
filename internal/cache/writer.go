package cache

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/jvmretrace/retrace/mapping"
)

// stringTable interns strings into one contiguous blob, so repeated
// return types, parameter lists, and names cost one copy each rather
// than one per member (the role the teacher's string table plays, here
// deduplicated with a map instead of lidia's xxhash-keyed builder since
// we never need this within the tens-of-megabytes range it does).
type stringTable struct {
	buf    bytes.Buffer
	offset map[string]uint32
}

func newStringTable() *stringTable {
	return &stringTable{offset: make(map[string]uint32)}
}

func (t *stringTable) intern(s string) (uint32, uint32) {
	if s == "" {
		return 0, 0
	}
	if off, ok := t.offset[s]; ok {
		return off, uint32(len(s))
	}
	off := uint32(t.buf.Len())
	t.buf.WriteString(s)
	t.offset[s] = off
	return off, uint32(len(s))
}

// Build serializes idx into the binary cache format. The result is
// fully self-contained: Open can reconstruct an equivalent
// *mapping.MappingIndex from it without the original text (spec §8
// property 6).
func Build(idx *mapping.MappingIndex) ([]byte, error) {
	strs := newStringTable()
	classes := idx.Classes()
	sort.Slice(classes, func(i, j int) bool { return classes[i].Obfuscated < classes[j].Obfuscated })

	classDir := make([]classDirEntry, 0, len(classes))
	var members []memberEntry

	for _, c := range classes {
		cMembers := append([]mapping.MemberMapping(nil), c.Members...)
		sort.SliceStable(cMembers, func(i, j int) bool {
			if cMembers[i].ObfuscatedName != cMembers[j].ObfuscatedName {
				return cMembers[i].ObfuscatedName < cMembers[j].ObfuscatedName
			}
			return cMembers[i].MappingOrder < cMembers[j].MappingOrder
		})

		start := uint32(len(members))
		for _, m := range cMembers {
			members = append(members, encodeMember(strs, m))
		}

		obfOff, obfLen := strs.intern(c.Obfuscated)
		origOff, origLen := strs.intern(c.Original)
		sfOff, sfLen := strs.intern(c.SourceFile)
		classDir = append(classDir, classDirEntry{
			ObfNameOff: obfOff, ObfNameLen: obfLen,
			OrigNameOff: origOff, OrigNameLen: origLen,
			SourceFileOff: sfOff, SourceFileLen: sfLen,
			MemberStart: start, MemberCount: uint32(len(cMembers)),
		})
	}

	compilerOff, compilerLen := strs.intern(idx.Compiler)
	compilerVersionOff, compilerVersionLen := strs.intern(idx.CompilerVersion)
	pgMapIDOff, pgMapIDLen := strs.intern(idx.PgMapID)
	pgMapHashOff, pgMapHashLen := strs.intern(idx.PgMapHash)

	u := idx.UUID()
	uuidBytes := u[:]

	var classDirBuf, membersBuf bytes.Buffer
	for _, e := range classDir {
		if err := binary.Write(&classDirBuf, binary.LittleEndian, e); err != nil {
			return nil, errors.Wrap(err, "cache: encode class directory")
		}
	}
	for _, e := range members {
		if err := binary.Write(&membersBuf, binary.LittleEndian, e); err != nil {
			return nil, errors.Wrap(err, "cache: encode members")
		}
	}

	stringsBytes := strs.buf.Bytes()

	var hdr header
	hdr.Magic = magic
	hdr.Version = Version
	hdr.ClassCount = uint32(len(classDir))
	hdr.MemberCount = uint32(len(members))
	if idx.HasMinAPI {
		hdr.HasMinAPI = 1
		hdr.MinAPI = uint32(idx.MinAPI)
	}
	hdr.UUIDHigh = binary.BigEndian.Uint64(uuidBytes[:8])
	hdr.UUIDLow = binary.BigEndian.Uint64(uuidBytes[8:])
	hdr.CompilerOffset, hdr.CompilerLen = compilerOff, compilerLen
	hdr.CompilerVersionOffset, hdr.CompilerVersionLen = compilerVersionOff, compilerVersionLen
	hdr.PgMapIDOffset, hdr.PgMapIDLen = pgMapIDOff, pgMapIDLen
	hdr.PgMapHashOffset, hdr.PgMapHashLen = pgMapHashOff, pgMapHashLen

	headerSize := binary.Size(hdr)
	hdr.StringsOffset = uint32(headerSize)
	hdr.StringsSize = uint32(len(stringsBytes))
	hdr.StringsCRC = crc32.Checksum(stringsBytes, castagnoli)

	hdr.ClassDirOffset = hdr.StringsOffset + hdr.StringsSize
	hdr.ClassDirSize = uint32(classDirBuf.Len())
	hdr.ClassDirCRC = crc32.Checksum(classDirBuf.Bytes(), castagnoli)

	hdr.MembersOffset = hdr.ClassDirOffset + hdr.ClassDirSize
	hdr.MembersSize = uint32(membersBuf.Len())
	hdr.MembersCRC = crc32.Checksum(membersBuf.Bytes(), castagnoli)

	var out bytes.Buffer
	if err := binary.Write(&out, binary.LittleEndian, hdr); err != nil {
		return nil, errors.Wrap(err, "cache: encode header")
	}
	out.Write(stringsBytes)
	out.Write(classDirBuf.Bytes())
	out.Write(membersBuf.Bytes())
	return out.Bytes(), nil
}

func encodeMember(strs *stringTable, m mapping.MemberMapping) memberEntry {
	obfOff, obfLen := strs.intern(m.ObfuscatedName)
	origOff, origLen := strs.intern(m.OriginalName)
	classOff, classLen := strs.intern(m.OriginalClass)
	rtOff, rtLen := strs.intern(m.ReturnType)
	paramsOff, paramsLen := strs.intern(strings.Join(m.Parameters, ","))

	var flags uint32
	if m.IsMethod {
		flags |= flagIsMethod
	}
	if m.HasMinRange {
		flags |= flagHasMinRange
	}
	if m.HasOriginalLine {
		flags |= flagHasOriginalLine
	}
	if m.HasOriginalEnd {
		flags |= flagHasOriginalEnd
	}
	if m.Synthesized {
		flags |= flagSynthesized
	}
	if m.Outline {
		flags |= flagOutline
	}
	// Parameters == nil (a field) is distinguished from Parameters ==
	// []string{} (a no-arg method) by flagIsMethod alone; an empty
	// params string decodes back to []string{} only when that flag is set.

	return memberEntry{
		ObfNameOff: obfOff, ObfNameLen: obfLen,
		OrigNameOff: origOff, OrigNameLen: origLen,
		OrigClassOff: classOff, OrigClassLen: classLen,
		ReturnTypeOff: rtOff, ReturnTypeLen: rtLen,
		ParamsOff: paramsOff, ParamsLen: paramsLen,
		Flags:         flags,
		MinStart:      int32(m.MinStart),
		MinEnd:        int32(m.MinEnd),
		OriginalStart: int32(m.OriginalStart),
		OriginalEnd:   int32(m.OriginalEnd),
		MappingOrder:  uint32(m.MappingOrder),
	}
}
