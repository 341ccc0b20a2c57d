// Package mapping implements the data model and parser for ProGuard/R8
// mapping files, and the in-memory index built from them.
package mapping

// RecordKind tags the variant held by a Record. Record is a flat tagged
// union rather than an interface hierarchy: the tokenizer never needs
// dynamic dispatch to produce one, and callers switch on Kind once.
type RecordKind int

const (
	// KindBlank marks a blank or otherwise unrecognised line that carries
	// no information and should simply be skipped.
	KindBlank RecordKind = iota
	// KindHeader marks a `# key: value` header line at the top of the file.
	KindHeader
	// KindAnnotation marks a `# {...}` structured comment.
	KindAnnotation
	// KindClass marks a `original -> obfuscated:` class mapping header.
	KindClass
	// KindMember marks an indented field or method mapping line.
	KindMember
)

// AnnotationKind identifies the structured comment kinds this package
// understands. AnnotationUnknown is preserved (Raw holds the original
// body) so that an index builder can choose to ignore it without losing
// it outright.
type AnnotationKind int

const (
	AnnotationUnknown AnnotationKind = iota
	AnnotationSourceFile
	AnnotationSynthesized
	AnnotationOutline
	AnnotationOutlineCallsite
	AnnotationInlineInfo
)

// Record is the result of tokenizing one logical line of a mapping file.
// Only the fields relevant to Kind are populated; the rest are zero.
type Record struct {
	Kind RecordKind

	// KindHeader
	HeaderKey   string
	HeaderValue string
	// HeaderValid is false when the line looked like a header but could
	// not be parsed as one; the tokenizer still returns KindHeader so the
	// caller can count it, per spec §4.1 "fail gracefully".
	HeaderValid bool

	// KindAnnotation
	AnnotationKind AnnotationKind
	AnnotationRaw  string // the full body, including unknown kinds

	SourceFile string // AnnotationSourceFile

	// AnnotationOutlineCallsite: the original position an outline call
	// occupied before R8 extracted it, used the same way InlineCaller* is.
	OutlineCallsiteFile   string
	OutlineCallsiteLine   int
	OutlineCallsiteMethod string

	InlineCallerFile   string
	InlineCallerLine   int
	InlineCallerMethod string
	InlineCallerHolder string

	// KindClass
	ClassOriginal   string
	ClassObfuscated string

	// KindMember
	MemberReturnType      string // empty for fields, and for return-type-less legacy ProGuard lines
	MemberOriginalName    string
	MemberOriginalClass   string // set only for an inlined member naming a foreign holder class
	MemberObfuscatedName  string
	MemberParameters      []string // nil for fields
	MemberIsMethod        bool
	MemberHasMinRange     bool
	MemberMinStart        int
	MemberMinEnd          int
	MemberHasOriginalLine bool // true if at least one of OriginalStart/OriginalEnd was present
	MemberOriginalStart   int
	MemberOriginalEnd     int
	MemberHasOriginalEnd  bool
}
