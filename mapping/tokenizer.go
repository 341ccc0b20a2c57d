package mapping

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrMissingObfuscatedName is returned when a class or member line has no
// ` -> <obfuscated>` target at all. Per spec §4.1 this is the one case the
// tokenizer must reject outright rather than degrade gracefully.
var ErrMissingObfuscatedName = errors.New("mapping: line has no obfuscated target")

// errMalformed covers every other way a class/member line can fail to
// parse. The builder treats it the same way as ErrMissingObfuscatedName:
// skip the record, keep going (spec §7 ParseError policy).
var errMalformed = errors.New("mapping: malformed line")

var knownHeaderKeys = map[string]bool{
	"compiler":         true,
	"compiler_version": true,
	"min_api":          true,
	"pg_map_id":        true,
	"pg_map_hash":      true,
}

// Tokenize parses a single logical line of a mapping file into a Record.
// It never sees line terminators; callers split the input into lines
// first (see Builder.Feed / SplitLines).
func Tokenize(line string) (Record, error) {
	if line == "" {
		return Record{Kind: KindBlank}, nil
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Record{Kind: KindBlank}, nil
	}

	// Annotations are often indented under the member they describe.
	if body := strings.TrimLeft(line, " \t"); strings.HasPrefix(body, "#") {
		return tokenizeComment(body), nil
	}

	if isIndented(line) {
		rec, err := tokenizeMember(strings.TrimLeft(line, " \t"))
		if err != nil {
			return Record{}, err
		}
		return rec, nil
	}

	return tokenizeClass(trimmed)
}

func isIndented(line string) bool {
	return line[0] == ' ' || line[0] == '\t'
}

func tokenizeComment(line string) Record {
	body := strings.TrimSpace(line[1:])
	if strings.HasPrefix(body, "{") {
		return tokenizeAnnotation(body)
	}

	key, value, hasValue := body, "", false
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		key = strings.TrimSpace(body[:idx])
		value = strings.TrimSpace(body[idx+1:])
		hasValue = true
	}
	rec := Record{Kind: KindHeader, HeaderKey: key, HeaderValid: knownHeaderKeys[key]}
	if hasValue {
		rec.HeaderValue = value
	}
	return rec
}

func tokenizeAnnotation(body string) Record {
	rec := Record{Kind: KindAnnotation, AnnotationRaw: body, AnnotationKind: AnnotationUnknown}

	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return rec
	}
	id, _ := fields["id"].(string)
	str := func(key string) string {
		s, _ := fields[key].(string)
		return s
	}
	num := func(key string) int {
		switch v := fields[key].(type) {
		case float64:
			return int(v)
		case string:
			n, _ := strconv.Atoi(v)
			return n
		default:
			return 0
		}
	}

	switch id {
	case "sourceFile":
		rec.AnnotationKind = AnnotationSourceFile
		rec.SourceFile = str("fileName")
	case "com.android.tools.r8.synthesized":
		rec.AnnotationKind = AnnotationSynthesized
	case "com.android.tools.r8.outline":
		rec.AnnotationKind = AnnotationOutline
	case "com.android.tools.r8.outlineCallsite":
		rec.AnnotationKind = AnnotationOutlineCallsite
		rec.OutlineCallsiteFile = str("file")
		rec.OutlineCallsiteLine = num("line")
		rec.OutlineCallsiteMethod = str("method")
	case "com.android.tools.r8.inlining":
		rec.AnnotationKind = AnnotationInlineInfo
		rec.InlineCallerFile = str("file")
		rec.InlineCallerLine = num("line")
		rec.InlineCallerMethod = str("method")
		rec.InlineCallerHolder = str("holder")
	}
	return rec
}

// tokenizeClass parses `<original> -> <obfuscated>:`.
func tokenizeClass(line string) (Record, error) {
	if !strings.HasSuffix(line, ":") {
		return Record{}, errMalformed
	}
	body := line[:len(line)-1]
	arrow := strings.Index(body, " -> ")
	if arrow < 0 {
		return Record{}, ErrMissingObfuscatedName
	}
	original := body[:arrow]
	obfuscated := body[arrow+4:]
	if original == "" {
		return Record{}, errMalformed
	}
	if obfuscated == "" {
		return Record{}, ErrMissingObfuscatedName
	}
	return Record{Kind: KindClass, ClassOriginal: original, ClassObfuscated: obfuscated}, nil
}

// tokenizeMember parses, after the leading whitespace has been stripped:
//
//	[<minStart>:<minEnd>:]<returnType> <originalName>[(<params>)][:<origStart>[:<origEnd>]] -> <obfuscated>
func tokenizeMember(line string) (Record, error) {
	rec := Record{Kind: KindMember}
	rest := line

	if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
		first := strings.IndexByte(rest, ':')
		if first < 0 {
			return Record{}, errMalformed
		}
		second := strings.IndexByte(rest[first+1:], ':')
		if second < 0 {
			return Record{}, errMalformed
		}
		second += first + 1

		minStart, err1 := strconv.Atoi(rest[:first])
		minEnd, err2 := strconv.Atoi(rest[first+1 : second])
		if err1 != nil || err2 != nil {
			return Record{}, errMalformed
		}
		if minStart > minEnd {
			minStart, minEnd = minEnd, minStart
		}
		rec.MemberHasMinRange = true
		rec.MemberMinStart = minStart
		rec.MemberMinEnd = minEnd
		rest = rest[second+1:]
	}

	arrow := strings.Index(rest, " -> ")
	if arrow < 0 {
		return Record{}, ErrMissingObfuscatedName
	}
	head := rest[:arrow]
	obfuscated := rest[arrow+4:]
	if obfuscated == "" {
		return Record{}, ErrMissingObfuscatedName
	}
	rec.MemberObfuscatedName = obfuscated

	// The return type is absent in some historical ProGuard mappings: in
	// that case head has no internal space and is the name part itself.
	var originalPart string
	if sp := strings.IndexByte(head, ' '); sp >= 0 {
		rec.MemberReturnType = head[:sp]
		originalPart = head[sp+1:]
	} else {
		originalPart = head
	}
	if originalPart == "" {
		return Record{}, errMalformed
	}

	name := originalPart
	if paren := strings.IndexByte(originalPart, '('); paren >= 0 {
		rec.MemberIsMethod = true
		name = originalPart[:paren]
		afterParen := originalPart[paren+1:]
		closeParen := strings.IndexByte(afterParen, ')')
		if closeParen < 0 {
			return Record{}, errMalformed
		}
		paramsStr := afterParen[:closeParen]
		if paramsStr == "" {
			rec.MemberParameters = []string{}
		} else {
			rec.MemberParameters = strings.Split(paramsStr, ",")
		}

		tail := afterParen[closeParen+1:]
		if err := parseOriginalLineSuffix(tail, &rec); err != nil {
			return Record{}, err
		}

		if lastDot := strings.LastIndexByte(name, '.'); lastDot >= 0 {
			rec.MemberOriginalClass = name[:lastDot]
			name = name[lastDot+1:]
		}
	}

	if name == "" {
		return Record{}, errMalformed
	}
	rec.MemberOriginalName = name
	return rec, nil
}

// parseOriginalLineSuffix parses the optional `:origStart[:origEnd]` that
// follows a method's closing paren.
func parseOriginalLineSuffix(tail string, rec *Record) error {
	if tail == "" {
		return nil
	}
	if tail[0] != ':' {
		return errMalformed
	}
	tail = tail[1:]
	parts := strings.SplitN(tail, ":", 2)
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return errMalformed
	}
	rec.MemberHasOriginalLine = true
	rec.MemberOriginalStart = start
	if len(parts) == 2 && parts[1] != "" {
		end, err := strconv.Atoi(parts[1])
		if err != nil {
			return errMalformed
		}
		if start > end {
			start, end = end, start
			rec.MemberOriginalStart = start
		}
		rec.MemberOriginalEnd = end
		rec.MemberHasOriginalEnd = true
	}
	return nil
}

// SplitLines splits mapping text on "\n" or "\r\n" without treating a
// lone "\r" as a line break, matching spec §6's line-separator contract.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
