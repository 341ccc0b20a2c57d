package mapping

// MappingIndex is the parsed, queryable form of a ProGuard/R8 mapping
// file (spec §3 MappingIndex): one header, one ClassMapping per
// obfuscated class, and a reverse index from original class name to
// every obfuscated name it was produced from (a class can be merged
// with another by R8, so this is one-to-many).
type MappingIndex struct {
	Compiler        string
	CompilerVersion string
	HasMinAPI       bool
	MinAPI          int
	PgMapID         string
	PgMapHash       string

	classesByObfuscated map[string]*ClassMapping
	originalToObfuscated map[string][]string

	raw string // the full mapping text, kept only for UUID fallback hashing

	uuidOverride *uuidAlias // set when loaded from a binary cache that already recorded the UUID
}

// SetUUIDOverride pins UUID() to a precomputed value, used by
// internal/cache when reconstructing an index whose source text (and
// thus content digest) is no longer available.
func (idx *MappingIndex) SetUUIDOverride(u uuidAlias) {
	idx.uuidOverride = &u
}

// ClassByObfuscated looks up a class by its obfuscated name (spec §4.2
// step "class lookup").
func (idx *MappingIndex) ClassByObfuscated(name string) (*ClassMapping, bool) {
	c, ok := idx.classesByObfuscated[name]
	return c, ok
}

// ClassesByOriginal returns every ClassMapping whose original name
// matches, in mapping-file order: the reverse direction of remap_class,
// for introspection. RemapClass itself only looks up obfuscated names.
func (idx *MappingIndex) ClassesByOriginal(name string) []*ClassMapping {
	obfs := idx.originalToObfuscated[name]
	if len(obfs) == 0 {
		return nil
	}
	out := make([]*ClassMapping, 0, len(obfs))
	for _, o := range obfs {
		if c, ok := idx.classesByObfuscated[o]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ClassCount returns the number of distinct obfuscated classes.
func (idx *MappingIndex) ClassCount() int {
	return len(idx.classesByObfuscated)
}

// Summary is the `summary()` operation from spec §6.
type Summary struct {
	RecordCount  int
	ClassCount   int
	MethodCount  int
	HasLineInfo  bool
}

// Summary reports counts over the whole index. class_count and
// method_count count distinct obfuscated names, not raw mapping lines,
// so an overloaded method contributes once per class rather than once
// per overload (resolved Open Question, see SPEC_FULL.md section D).
func (idx *MappingIndex) Summary() Summary {
	s := Summary{ClassCount: len(idx.classesByObfuscated)}
	s.RecordCount = s.ClassCount
	for _, c := range idx.classesByObfuscated {
		s.MethodCount += len(c.byObfuscatedName)
		s.RecordCount += len(c.Members)
		for _, m := range c.Members {
			if m.HasMinRange || m.HasOriginalLine {
				s.HasLineInfo = true
			}
		}
	}
	return s
}

// Assemble builds a MappingIndex directly from already-constructed
// classes, bypassing the text tokenizer entirely. internal/cache uses
// this to reconstruct an index from its binary format (spec §8 property
// 6: a cache-loaded index must answer every query the same way a
// text-parsed one would).
func Assemble(compiler, compilerVersion string, hasMinAPI bool, minAPI int, pgMapID, pgMapHash string, classes []*ClassMapping) *MappingIndex {
	idx := &MappingIndex{
		Compiler:             compiler,
		CompilerVersion:      compilerVersion,
		HasMinAPI:            hasMinAPI,
		MinAPI:               minAPI,
		PgMapID:              pgMapID,
		PgMapHash:            pgMapHash,
		classesByObfuscated:  make(map[string]*ClassMapping, len(classes)),
		originalToObfuscated: make(map[string][]string, len(classes)),
	}
	for _, c := range classes {
		c.finalize()
		idx.classesByObfuscated[c.Obfuscated] = c
		idx.originalToObfuscated[c.Original] = append(idx.originalToObfuscated[c.Original], c.Obfuscated)
	}
	return idx
}

// RawText exposes the text an index was parsed from, empty for an index
// assembled from a binary cache rather than text. UUID() uses a digest
// of this text when no header identifies the map.
func (idx *MappingIndex) RawText() string {
	return idx.raw
}

// Classes returns every ClassMapping in the index, in no particular
// order. internal/cache walks this to serialize the full index.
func (idx *MappingIndex) Classes() []*ClassMapping {
	out := make([]*ClassMapping, 0, len(idx.classesByObfuscated))
	for _, c := range idx.classesByObfuscated {
		out = append(out, c)
	}
	return out
}

// Builder folds a stream of mapping-file lines into a MappingIndex,
// recording non-fatal problems in Diagnostics rather than aborting
// (spec §7). It is the only way to construct a MappingIndex from text.
type Builder struct {
	index *MappingIndex
	diag  Diagnostics

	currentClass      *ClassMapping
	lineNo            int
	globalMemberOrder int
}

// NewBuilder returns an empty Builder ready to receive lines via Feed.
func NewBuilder() *Builder {
	return &Builder{
		index: &MappingIndex{
			classesByObfuscated:  make(map[string]*ClassMapping),
			originalToObfuscated: make(map[string][]string),
		},
	}
}

// Feed tokenizes and folds in one line of mapping text. Lines must be
// fed in file order.
func (b *Builder) Feed(line string) {
	b.lineNo++
	rec, err := Tokenize(line)
	if err != nil {
		b.diag.add(ParseError, b.lineNo, err.Error())
		return
	}

	switch rec.Kind {
	case KindBlank:
		return
	case KindHeader:
		if !rec.HeaderValid {
			b.diag.add(InvalidHeader, b.lineNo, rec.HeaderKey)
			return
		}
		b.applyHeader(rec)
	case KindAnnotation:
		b.applyAnnotation(rec)
	case KindClass:
		b.closeCurrentClass()
		c := newClassMapping(rec.ClassOriginal, rec.ClassObfuscated)
		b.currentClass = c
		b.index.classesByObfuscated[rec.ClassObfuscated] = c
		b.index.originalToObfuscated[rec.ClassOriginal] = append(b.index.originalToObfuscated[rec.ClassOriginal], rec.ClassObfuscated)
	case KindMember:
		if b.currentClass == nil {
			b.diag.add(ParseError, b.lineNo, "member line outside any class")
			return
		}
		m := memberFromRecord(rec)
		m.MappingOrder = b.globalMemberOrder
		b.globalMemberOrder++
		b.currentClass.addMember(m)
	}
}

func (b *Builder) applyHeader(rec Record) {
	switch rec.HeaderKey {
	case "compiler":
		b.index.Compiler = rec.HeaderValue
	case "compiler_version":
		b.index.CompilerVersion = rec.HeaderValue
	case "min_api":
		n, err := parsePositiveInt(rec.HeaderValue)
		if err != nil {
			b.diag.add(InvalidHeader, b.lineNo, "min_api: "+rec.HeaderValue)
			return
		}
		b.index.HasMinAPI = true
		b.index.MinAPI = n
	case "pg_map_id":
		b.index.PgMapID = rec.HeaderValue
	case "pg_map_hash":
		b.index.PgMapHash = rec.HeaderValue
	}
}

func (b *Builder) applyAnnotation(rec Record) {
	if rec.AnnotationKind == AnnotationSourceFile {
		if b.currentClass != nil {
			b.currentClass.SourceFile = rec.SourceFile
		}
		return
	}
	if b.currentClass == nil || len(b.currentClass.Members) == 0 {
		return
	}
	last := &b.currentClass.Members[len(b.currentClass.Members)-1]
	switch rec.AnnotationKind {
	case AnnotationSynthesized:
		last.Synthesized = true
	case AnnotationOutline:
		last.Outline = true
	case AnnotationOutlineCallsite:
		last.HasOutlineCallsite = true
		last.OutlineCallsiteFile = rec.OutlineCallsiteFile
		last.OutlineCallsiteLine = rec.OutlineCallsiteLine
		last.OutlineCallsiteName = rec.OutlineCallsiteMethod
	case AnnotationInlineInfo:
		last.HasInlineCaller = true
		last.InlineCallerFile = rec.InlineCallerFile
		last.InlineCallerLine = rec.InlineCallerLine
		last.InlineCallerMethod = rec.InlineCallerMethod
		last.InlineCallerHolder = rec.InlineCallerHolder
	}
}

func (b *Builder) closeCurrentClass() {
	if b.currentClass != nil {
		b.currentClass.finalize()
	}
}

// Finish closes out the last open class and returns the built index
// together with whatever diagnostics were accumulated. The Builder must
// not be reused afterward.
func (b *Builder) Finish(rawText string) (*MappingIndex, *Diagnostics) {
	b.closeCurrentClass()
	b.index.raw = rawText
	return b.index, &b.diag
}

// Build parses a complete mapping file's text into a MappingIndex. It
// never returns an error: malformed lines are recorded in the returned
// Diagnostics and skipped, per spec §7.
func Build(text string) (*MappingIndex, *Diagnostics) {
	b := NewBuilder()
	for _, line := range SplitLines(text) {
		b.Feed(line)
	}
	return b.Finish(text)
}

func memberFromRecord(rec Record) MemberMapping {
	return MemberMapping{
		ReturnType:      rec.MemberReturnType,
		OriginalName:    rec.MemberOriginalName,
		OriginalClass:   rec.MemberOriginalClass,
		ObfuscatedName:  rec.MemberObfuscatedName,
		Parameters:      rec.MemberParameters,
		IsMethod:        rec.MemberIsMethod,
		HasMinRange:     rec.MemberHasMinRange,
		MinStart:        rec.MemberMinStart,
		MinEnd:          rec.MemberMinEnd,
		HasOriginalLine: rec.MemberHasOriginalLine,
		OriginalStart:   rec.MemberOriginalStart,
		OriginalEnd:     rec.MemberOriginalEnd,
		HasOriginalEnd:  rec.MemberHasOriginalEnd,
	}
}

func parsePositiveInt(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, errMalformed
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, errMalformed
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
