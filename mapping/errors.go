package mapping

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Diagnostic is one non-fatal problem noticed while building an Index.
// Building never stops because of these; they accumulate in Diagnostics
// (ParseError and InvalidHeader are recorded, not returned). Inverted
// ranges are normalised by the tokenizer without recording an
// InvalidRange diagnostic.
type Diagnostic struct {
	Kind DiagnosticKind
	Line int // 1-based source line, 0 if not applicable
	Text string
}

// DiagnosticKind mirrors spec §7's error taxonomy.
type DiagnosticKind int

const (
	// ParseError: a class or member line could not be parsed at all.
	ParseError DiagnosticKind = iota
	// InvalidHeader: a `# key: value` line used a recognised key but an
	// unparsable value, or looked like a header but wasn't one.
	InvalidHeader
	// InvalidRange: a minified or original line range was nonsensical
	// (e.g. inverted). Build never records this kind: the tokenizer swaps
	// an inverted range's ends and reports nothing.
	InvalidRange
)

func (k DiagnosticKind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case InvalidHeader:
		return "InvalidHeader"
	case InvalidRange:
		return "InvalidRange"
	default:
		return "Unknown"
	}
}

func (d Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", d.Kind, d.Line, d.Text)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Text)
}

// Diagnostics collects every Diagnostic observed while building an Index.
// It satisfies the error interface so a caller that wants to treat any
// diagnostic as fatal can do so, but Build itself never returns it as an
// error — only ever as a plain value alongside a usable *Index. Items
// accumulate into a *multierror.Error so the "collect, don't fail"
// rendering (one-line-per-diagnostic) comes for free.
type Diagnostics struct {
	Items []Diagnostic
	errs  *multierror.Error
}

func (d *Diagnostics) add(kind DiagnosticKind, line int, text string) {
	diag := Diagnostic{Kind: kind, Line: line, Text: text}
	d.Items = append(d.Items, diag)
	d.errs = multierror.Append(d.errs, diag)
}

// Empty reports whether no diagnostics were recorded.
func (d *Diagnostics) Empty() bool {
	return d == nil || len(d.Items) == 0
}

func (d *Diagnostics) Error() string {
	if d.Empty() {
		return ""
	}
	return d.errs.Error()
}
