package retrace

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/jvmretrace/retrace/mapping"
)

// Retracer is the external facade spec §6 describes: one mapping index,
// wrapped with the operations a caller actually uses (remap_class,
// remap_frame, remap_method, remap_throwable, remap_stack_trace).
//
// Queries never log and never block (spec §5): the cache below is
// purely a memoization of mapping.Resolve, not a source of I/O.
type Retracer struct {
	idx    *mapping.MappingIndex
	opts   mapping.ResolverOptions
	cache  *lru.Cache[string, []mapping.MemberMatch]
	logger logrus.FieldLogger
}

// New builds a Retracer over an already-parsed index. cacheSize bounds
// how many distinct (class, method, line, params) lookups are memoized
// per Retracer; 0 picks a sensible default. A real stack trace repeats
// the same frame across its "Caused by:"/"Suppressed:" sections, which
// is exactly what this cache amortises, the same way the teacher's
// symbolizer memoizes repeated address lookups.
func New(idx *mapping.MappingIndex, opts mapping.ResolverOptions, cacheSize int) (*Retracer, error) {
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cache, err := lru.New[string, []mapping.MemberMatch](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Retracer{idx: idx, opts: opts, cache: cache, logger: logrus.StandardLogger()}, nil
}

// WithLogger attaches a logger to the Retracer. No Retracer operation
// writes to it; queries never log.
func (r *Retracer) WithLogger(logger logrus.FieldLogger) *Retracer {
	r.logger = logger
	return r
}

// RemapClass implements spec §6 remap_class: an obfuscated class name
// maps to its original name, or itself unchanged if the mapping has no
// entry for it.
func (r *Retracer) RemapClass(obfuscated string) string {
	c, ok := r.idx.ClassByObfuscated(obfuscated)
	if !ok {
		return obfuscated
	}
	return c.Original
}

// RemapFrame implements spec §6 remap_frame: resolves a single
// obfuscated (class, method, line, params) position to every candidate
// MemberMatch, in the order mapping.Resolve defines.
func (r *Retracer) RemapFrame(class, method string, line int, params []string) []mapping.MemberMatch {
	key := cacheKey(class, method, line, params)
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}
	matches := mapping.Resolve(r.idx, class, method, line, params, r.opts)
	r.cache.Add(key, matches)
	return matches
}

// RemapMethod implements spec §6 remap_method: the same resolution as
// RemapFrame, projected down to (original class, original method) pairs
// in the same order, including every level of an inline chain.
func (r *Retracer) RemapMethod(class, method string, line int, params []string) [][2]string {
	matches := r.RemapFrame(class, method, line, params)
	var out [][2]string
	for _, m := range matches {
		holderDefault := m.Class.Original
		for _, mm := range m.Chain {
			holder := holderDefault
			if mm.OriginalClass != "" {
				holder = mm.OriginalClass
			}
			out = append(out, [2]string{holder, mm.OriginalName})
		}
	}
	return out
}

// RemapThrowable implements spec §6 remap_throwable: deobfuscates one
// throwable header line (`<class>[: <message>]`, possibly prefixed with
// "Caused by: "/"Suppressed: ") without touching any frame lines.
func (r *Retracer) RemapThrowable(line string) string {
	h, ok := classifyThrowableHeader(line)
	if !ok {
		return line
	}
	return rewriteThrowableHeader(r, line, h)
}

// RemapStackTrace implements spec §6 remap_stack_trace: rewrites every
// throwable header, frame, and circular-reference marker line in text,
// passing everything else through unchanged.
func (r *Retracer) RemapStackTrace(text string) string {
	return Rewrite(r, text)
}

func cacheKey(class, method string, line int, params []string) string {
	var b strings.Builder
	b.WriteString(class)
	b.WriteByte('\x00')
	b.WriteString(method)
	b.WriteByte('\x00')
	b.WriteString(strconv.Itoa(line))
	for _, p := range params {
		b.WriteByte('\x00')
		b.WriteString(p)
	}
	return b.String()
}
