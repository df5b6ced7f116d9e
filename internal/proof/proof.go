package proof

// Entry pairs a Line with the original source text it was decoded from,
// retained for diagnostics.
type Entry struct {
	SourceText string
	Line       *Line
}

// Proof is the ordered sequence of (source_text, Line) pairs produced by
// decoding a proof text block, additionally keyed by each line's printed
// label for citation resolution.
type Proof struct {
	Entries []Entry

	byLabel map[string]*Line
}

// NewProof returns an empty Proof ready to be built up line by line.
func NewProof() *Proof {
	return &Proof{byLabel: make(map[string]*Line)}
}

// Lookup resolves a previously appended line by its printed label.
func (p *Proof) Lookup(label string) (*Line, bool) {
	l, ok := p.byLabel[label]
	return l, ok
}

// Append records a newly constructed Line under its label, in source
// order. Callers are responsible for rejecting duplicate labels before
// constructing the Line (duplicate-label detection needs to happen
// before rule/dependency resolution, since a duplicate's citations
// would otherwise resolve ambiguously).
func (p *Proof) Append(sourceText, label string, l *Line) {
	p.Entries = append(p.Entries, Entry{SourceText: sourceText, Line: l})
	p.byLabel[label] = l
}

// Lines returns every Line in the proof, in source order.
func (p *Proof) Lines() []*Line {
	out := make([]*Line, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.Line
	}
	return out
}
