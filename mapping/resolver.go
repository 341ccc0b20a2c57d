package mapping

// ResolverOptions is the one configuration surface the resolver takes
// (spec §6). InitializeParamMapping controls whether a caller-supplied
// parameter signature is used to narrow the candidate set at all; when
// false, parameter info is ignored even if present, matching the legacy
// ProGuard retrace behaviour of resolving purely on (class, name, line).
type ResolverOptions struct {
	InitializeParamMapping bool
}

// DefaultResolverOptions turns parameter narrowing on. The zero value
// ResolverOptions{} leaves it off.
func DefaultResolverOptions() ResolverOptions {
	return ResolverOptions{InitializeParamMapping: true}
}

// MemberMatch is one resolved candidate. Chain holds more than one entry
// only when the obfuscated position sits inside an inlined call: Chain[0]
// is the innermost (actually executing) frame, and each subsequent entry
// is the caller it was inlined into, per spec §4.2 step "inline chain
// walk".
type MemberMatch struct {
	Class *ClassMapping
	Chain []*MemberMapping
	Line  int // the obfuscated line that produced this match, 0 if none was given
}

// Lines returns the translated original line for each entry of Chain, in
// the same innermost-first order.
func (m MemberMatch) Lines() []int {
	out := make([]int, len(m.Chain))
	for i, mm := range m.Chain {
		out[i] = mm.TranslateLine(m.Line)
	}
	return out
}

// Resolve implements spec §4.2's full member resolution algorithm:
// class lookup, candidate set, parameter filter, line filter (with the
// outside-range fallback), inline chain grouping, synthesized filtering,
// and stable mapping-file-order output.
func Resolve(idx *MappingIndex, obfuscatedClass, obfuscatedName string, line int, params []string, opts ResolverOptions) []MemberMatch {
	class, ok := idx.ClassByObfuscated(obfuscatedClass)
	if !ok {
		return nil
	}

	candidates := class.CandidatesFor(obfuscatedName)
	if len(candidates) == 0 {
		return nil
	}

	filtered := filterByParams(candidates, params, opts)
	filtered, line = filterByLine(filtered, line)

	var results []MemberMatch
	if line > 0 && len(filtered) > 1 && allOverlap(filtered, line) {
		results = []MemberMatch{{Class: class, Chain: filtered, Line: line}}
	} else {
		results = make([]MemberMatch, 0, len(filtered))
		for _, m := range filtered {
			results = append(results, MemberMatch{Class: class, Chain: []*MemberMapping{m}, Line: line})
		}
	}

	return dropSynthesizedIfPossible(results)
}

// filterByParams applies spec §4.2 step 2: keep only candidates whose
// parameter signature matches, unless that would drop every candidate,
// in which case the filter is advisory only and the full set is kept.
func filterByParams(candidates []*MemberMapping, params []string, opts ResolverOptions) []*MemberMapping {
	if !opts.InitializeParamMapping || params == nil {
		return candidates
	}
	var out []*MemberMapping
	for _, m := range candidates {
		if paramsMatch(m.Parameters, params) {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}

func paramsMatch(have, want []string) bool {
	if len(have) != len(want) {
		return false
	}
	for i := range have {
		if have[i] != want[i] {
			return false
		}
	}
	return true
}

// filterByLine applies spec §4.2 step 4 plus the outside-range fallback
// (SPEC_FULL.md section D): line == 0 keeps everything; line > 0
// keeps in-range members and members with no range at all; if that drops
// every candidate, the filter falls through to the line == 0 behaviour
// and reports line as 0 so callers don't attempt to translate against a
// line that matched nothing.
func filterByLine(candidates []*MemberMapping, line int) ([]*MemberMapping, int) {
	if line <= 0 {
		return candidates, 0
	}
	var out []*MemberMapping
	for _, m := range candidates {
		if m.MinRangeContains(line) || !m.HasMinRange {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return candidates, 0
	}
	return out, line
}

// allOverlap reports whether every member's minified range contains
// line, the structural signature of an R8 inline chain (spec §4.2
// "inline chain walk"): consecutive entries sharing the exact call site.
// A group mixing ranged and rangeless members, or disjoint overloads
// that merely all happen to lack range info, is not a chain.
func allOverlap(candidates []*MemberMapping, line int) bool {
	for _, m := range candidates {
		if !m.HasMinRange || !m.MinRangeContains(line) {
			return false
		}
	}
	return true
}

func isAllSynthesized(chain []*MemberMapping) bool {
	for _, m := range chain {
		if !m.Synthesized {
			return false
		}
	}
	return true
}

// dropSynthesizedIfPossible applies spec §4.2's synthesized filter: a
// synthesized-only candidate is noise produced by the compiler, and is
// dropped as long as at least one non-synthesized candidate survives.
func dropSynthesizedIfPossible(results []MemberMatch) []MemberMatch {
	hasReal := false
	for _, r := range results {
		if !isAllSynthesized(r.Chain) {
			hasReal = true
			break
		}
	}
	if !hasReal {
		return results
	}
	out := make([]MemberMatch, 0, len(results))
	for _, r := range results {
		if !isAllSynthesized(r.Chain) {
			out = append(out, r)
		}
	}
	return out
}
