package mapping

// ClassMapping holds every member line that appeared under one
// `original -> obfuscated:` header (spec §3 ClassMapping).
type ClassMapping struct {
	Original   string
	Obfuscated string
	SourceFile string // from a preceding `# {"id":"sourceFile",...}` annotation, if any

	Members []MemberMapping

	// byObfuscatedName indexes Members by ObfuscatedName for the
	// resolver's candidate-set step (spec §4.2 step 1). Built once by
	// the Builder when the class is closed out.
	byObfuscatedName map[string][]int
}

func newClassMapping(original, obfuscated string) *ClassMapping {
	return &ClassMapping{Original: original, Obfuscated: obfuscated}
}

func (c *ClassMapping) addMember(m MemberMapping) {
	c.Members = append(c.Members, m)
}

// finalize builds the obfuscated-name index used by CandidatesFor.
func (c *ClassMapping) finalize() {
	c.byObfuscatedName = make(map[string][]int, len(c.Members))
	for i, m := range c.Members {
		c.byObfuscatedName[m.ObfuscatedName] = append(c.byObfuscatedName[m.ObfuscatedName], i)
	}
}

// CandidatesFor returns every member sharing the given obfuscated name,
// in mapping-file order. This is spec §4.2 step 1's candidate set.
func (c *ClassMapping) CandidatesFor(obfuscatedName string) []*MemberMapping {
	idx := c.byObfuscatedName[obfuscatedName]
	if len(idx) == 0 {
		return nil
	}
	out := make([]*MemberMapping, len(idx))
	for i, mi := range idx {
		out[i] = &c.Members[mi]
	}
	return out
}
