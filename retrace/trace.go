package retrace

import (
	"strconv"
	"strings"

	"github.com/jvmretrace/retrace/mapping"
)

// ThrowableHeader is a classified `<class>[: <message>]` line, possibly
// preceded by indentation and a "Caused by: "/"Suppressed: " prefix
// (spec §4.4).
type ThrowableHeader struct {
	Indent     string
	Prefix     string
	ClassName  string
	Message    string
	HasMessage bool
}

// Rewrite implements spec §4.4's stack-trace rewriter: every line is
// classified and remapped independently; anything that isn't a
// recognised throwable header, frame, or circular-reference marker is
// passed through byte for byte. Rewriting never fails: an unmapped
// class or frame is left unchanged rather than dropped.
func Rewrite(r *Retracer, text string) string {
	hadTrailingNewline := strings.HasSuffix(text, "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, rewriteLine(r, line))
	}

	result := strings.Join(out, "\n")
	if hadTrailingNewline {
		result += "\n"
	}
	return result
}

func rewriteLine(r *Retracer, line string) string {
	if rewritten, ok := rewriteCircularReference(r, line); ok {
		return rewritten
	}
	if h, ok := classifyThrowableHeader(line); ok {
		return rewriteThrowableHeader(r, line, h)
	}
	if frame, ok := ParseFrameLine(line); ok {
		return rewriteFrame(r, frame)
	}
	return line
}

// classifyThrowableHeader recognises a throwable header line: optional
// indentation, an optional "Caused by: "/"Suppressed: " prefix, a class
// name, and an optional ": <message>" tail. A line starting with "at "
// after the prefix is never a header, so frames are never misclassified.
func classifyThrowableHeader(line string) (ThrowableHeader, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	rest := trimmed

	prefix := ""
	switch {
	case strings.HasPrefix(rest, "Caused by: "):
		prefix = "Caused by: "
		rest = rest[len(prefix):]
	case strings.HasPrefix(rest, "Suppressed: "):
		prefix = "Suppressed: "
		rest = rest[len(prefix):]
	}

	if rest == "" || strings.HasPrefix(rest, "at ") {
		return ThrowableHeader{}, false
	}

	className, message, hasMessage := rest, "", false
	if idx := strings.Index(rest, ": "); idx >= 0 {
		className = rest[:idx]
		message = rest[idx+2:]
		hasMessage = true
	}
	if !looksLikeClassName(className) {
		return ThrowableHeader{}, false
	}

	return ThrowableHeader{Indent: indent, Prefix: prefix, ClassName: className, Message: message, HasMessage: hasMessage}, true
}

func looksLikeClassName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r == '.' || r == '$' || r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func rewriteThrowableHeader(r *Retracer, raw string, h ThrowableHeader) string {
	var b strings.Builder
	b.WriteString(h.Indent)
	b.WriteString(h.Prefix)
	b.WriteString(r.RemapClass(h.ClassName))
	if h.HasMessage {
		b.WriteString(": ")
		b.WriteString(h.Message)
	}
	return b.String()
}

// rewriteCircularReference recognises Java's "[CIRCULAR REFERENCE: ...]"
// marker, which wraps either a bare class name or a full throwable
// header, and remaps whichever it wraps.
func rewriteCircularReference(r *Retracer, line string) (string, bool) {
	const marker = "[CIRCULAR REFERENCE: "
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	if !strings.HasPrefix(trimmed, marker) || !strings.HasSuffix(trimmed, "]") {
		return "", false
	}
	inner := trimmed[len(marker) : len(trimmed)-1]

	var remapped string
	if h, ok := classifyThrowableHeader(inner); ok {
		remapped = rewriteThrowableHeader(r, inner, h)
	} else {
		remapped = r.RemapClass(inner)
	}
	return indent + marker + remapped + "]", true
}

func rewriteFrame(r *Retracer, frame StackFrame) string {
	var line int
	if frame.FileSpec.HasLine {
		line = frame.FileSpec.Line
	}
	matches := r.RemapFrame(frame.ClassName, frame.MethodName, line, nil)
	if len(matches) == 0 {
		return frame.Raw
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		originalLines := m.Lines()
		for i, mm := range m.Chain {
			lines = append(lines, formatFrameLine(frame, m.Class, mm, originalLines[i]))
		}
	}
	return strings.Join(lines, "\n")
}

// formatFrameLine never reuses the incoming file-spec's file name (spec
// §4.3: "the remapper ignores the incoming file entirely"); the output
// file always comes from the mapping, in precedence order: the
// ClassMapping's sourceFile annotation, else a name synthesized from the
// original holder's simple name (spec §3 Invariant 6).
func formatFrameLine(frame StackFrame, defaultClass *mapping.ClassMapping, mm *mapping.MemberMapping, line int) string {
	holder := defaultClass.Original
	if mm.OriginalClass != "" {
		holder = mm.OriginalClass
	}

	fileName := defaultClass.SourceFile
	if fileName == "" {
		fileName = syntheticFileName(holder)
	}

	var b strings.Builder
	b.WriteString(frame.Prefix)
	b.WriteString("at ")
	if frame.ModulePrefix != "" {
		b.WriteString(frame.ModulePrefix)
		b.WriteByte('/')
	}
	b.WriteString(holder)
	b.WriteByte('.')
	b.WriteString(mm.OriginalName)
	b.WriteByte('(')
	b.WriteString(fileName)
	if line > 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(line))
	}
	b.WriteByte(')')
	return b.String()
}

func syntheticFileName(className string) string {
	simple := className
	if dot := strings.LastIndexByte(simple, '.'); dot >= 0 {
		simple = simple[dot+1:]
	}
	if dollar := strings.IndexByte(simple, '$'); dollar >= 0 {
		simple = simple[:dollar]
	}
	return simple + ".java"
}
