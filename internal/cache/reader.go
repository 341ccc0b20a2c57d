package cache

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/pkg/errors"

	"github.com/jvmretrace/retrace/mapping"
)

// Open decodes a binary cache produced by Build back into a queryable
// *mapping.MappingIndex. Every header field and table checksum is
// validated before any table is trusted, the same fail-fast discipline
// the teacher's lidia.OpenReader applies to magic/version/count checks.
func Open(data []byte) (*mapping.MappingIndex, error) {
	r := bytes.NewReader(data)
	var hdr header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, errors.Wrap(err, "cache: read header")
	}
	if hdr.Magic != magic {
		return nil, errors.New("cache: bad magic number")
	}
	if hdr.Version != Version {
		return nil, errors.Errorf("cache: unsupported version %d (want %d)", hdr.Version, Version)
	}

	strs, err := section(data, hdr.StringsOffset, hdr.StringsSize, hdr.StringsCRC, "strings")
	if err != nil {
		return nil, err
	}
	classDirBytes, err := section(data, hdr.ClassDirOffset, hdr.ClassDirSize, hdr.ClassDirCRC, "class directory")
	if err != nil {
		return nil, err
	}
	membersBytes, err := section(data, hdr.MembersOffset, hdr.MembersSize, hdr.MembersCRC, "members")
	if err != nil {
		return nil, err
	}

	str := func(off, length uint32) string {
		if length == 0 {
			return ""
		}
		return string(strs[off : off+length])
	}

	members := make([]memberEntry, hdr.MemberCount)
	mr := bytes.NewReader(membersBytes)
	for i := range members {
		if err := binary.Read(mr, binary.LittleEndian, &members[i]); err != nil {
			return nil, errors.Wrap(err, "cache: decode member entry")
		}
	}

	classes := make([]*mapping.ClassMapping, hdr.ClassCount)
	cr := bytes.NewReader(classDirBytes)
	for i := range classes {
		var e classDirEntry
		if err := binary.Read(cr, binary.LittleEndian, &e); err != nil {
			return nil, errors.Wrap(err, "cache: decode class directory entry")
		}
		if e.MemberStart+e.MemberCount > uint32(len(members)) {
			return nil, errors.New("cache: class directory entry out of bounds")
		}

		mm := make([]mapping.MemberMapping, e.MemberCount)
		for j := range mm {
			mm[j] = decodeMember(members[e.MemberStart+uint32(j)], str)
		}

		classes[i] = &mapping.ClassMapping{
			Original:   str(e.OrigNameOff, e.OrigNameLen),
			Obfuscated: str(e.ObfNameOff, e.ObfNameLen),
			SourceFile: str(e.SourceFileOff, e.SourceFileLen),
			Members:    mm,
		}
	}

	idx := mapping.Assemble(
		str(hdr.CompilerOffset, hdr.CompilerLen),
		str(hdr.CompilerVersionOffset, hdr.CompilerVersionLen),
		hdr.HasMinAPI != 0,
		int(hdr.MinAPI),
		str(hdr.PgMapIDOffset, hdr.PgMapIDLen),
		str(hdr.PgMapHashOffset, hdr.PgMapHashLen),
		classes,
	)

	var uuidBytes [16]byte
	binary.BigEndian.PutUint64(uuidBytes[:8], hdr.UUIDHigh)
	binary.BigEndian.PutUint64(uuidBytes[8:], hdr.UUIDLow)
	idx.SetUUIDOverride(uuidBytes)

	return idx, nil
}

func section(data []byte, offset, size, wantCRC uint32, name string) ([]byte, error) {
	if uint64(offset)+uint64(size) > uint64(len(data)) {
		return nil, errors.Errorf("cache: %s section out of bounds", name)
	}
	sec := data[offset : offset+size]
	if got := crc32.Checksum(sec, castagnoli); got != wantCRC {
		return nil, errors.Errorf("cache: %s checksum mismatch", name)
	}
	return sec, nil
}

func decodeMember(e memberEntry, str func(uint32, uint32) string) mapping.MemberMapping {
	m := mapping.MemberMapping{
		ObfuscatedName:  str(e.ObfNameOff, e.ObfNameLen),
		OriginalName:    str(e.OrigNameOff, e.OrigNameLen),
		OriginalClass:   str(e.OrigClassOff, e.OrigClassLen),
		ReturnType:      str(e.ReturnTypeOff, e.ReturnTypeLen),
		IsMethod:        e.Flags&flagIsMethod != 0,
		HasMinRange:     e.Flags&flagHasMinRange != 0,
		HasOriginalLine: e.Flags&flagHasOriginalLine != 0,
		HasOriginalEnd:  e.Flags&flagHasOriginalEnd != 0,
		Synthesized:     e.Flags&flagSynthesized != 0,
		Outline:         e.Flags&flagOutline != 0,
		MinStart:        int(e.MinStart),
		MinEnd:          int(e.MinEnd),
		OriginalStart:   int(e.OriginalStart),
		OriginalEnd:     int(e.OriginalEnd),
		MappingOrder:    int(e.MappingOrder),
	}
	if m.IsMethod {
		params := str(e.ParamsOff, e.ParamsLen)
		if params == "" {
			m.Parameters = []string{}
		} else {
			m.Parameters = strings.Split(params, ",")
		}
	}
	return m
}
