package retrace

import "strings"

// StackFrame is one `at ...(...)` line of a stack trace, already split
// into its parts but not yet remapped.
type StackFrame struct {
	Prefix       string // leading text before "at ", e.g. a logcat tag
	ModulePrefix string // Java 9+ module/classloader prefix, e.g. "java.base"
	ClassName    string
	MethodName   string
	FileSpec     FileSpec
	Raw          string
}

// ParseFrameLine recognises a stack-trace frame line of the form
//
//	[<prefix>]at [<module>/]<class>.<method>(<file-spec>)
//
// and reports false for anything else, so callers can fall back to
// passing the line through unchanged.
func ParseFrameLine(raw string) (StackFrame, bool) {
	atIdx := strings.LastIndex(raw, "at ")
	if atIdx < 0 {
		return StackFrame{}, false
	}
	prefix := raw[:atIdx]
	rest := raw[atIdx+len("at "):]
	if rest == "" || !strings.HasSuffix(rest, ")") {
		return StackFrame{}, false
	}

	paren := strings.IndexByte(rest, '(')
	if paren < 0 {
		return StackFrame{}, false
	}
	classAndMethod := rest[:paren]
	fileSpecText := rest[paren+1 : len(rest)-1]

	dot := strings.LastIndexByte(classAndMethod, '.')
	if dot < 0 {
		return StackFrame{}, false
	}
	classPart := classAndMethod[:dot]
	method := classAndMethod[dot+1:]
	if classPart == "" || method == "" {
		return StackFrame{}, false
	}

	module := ""
	if slash := strings.IndexByte(classPart, '/'); slash >= 0 {
		module = classPart[:slash]
		classPart = classPart[slash+1:]
	}

	return StackFrame{
		Prefix:       prefix,
		ModulePrefix: module,
		ClassName:    classPart,
		MethodName:   method,
		FileSpec:     ParseFileSpec(fileSpecText),
		Raw:          raw,
	}, true
}
