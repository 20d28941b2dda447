package scheme

import (
	"fmt"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/repertoire"
)

// Options configures an Analyzer.
type Options struct {
	// Roots names the characters used as roots. Names the repertoire does
	// not know, such as stroke classes or phonetic elements, are ignored.
	Roots          []string
	Degenerator    Degenerator
	Classifier     map[glyph.Feature]string
	Selector       []string
	StrictTieBreak bool
}

// Analysis is the decomposition chosen for one character.
type Analysis struct {
	Char       string   `json:"char"`
	Roots      []string `json:"字根序列"`
	Scheme     Scheme   `json:"scheme"`
	Vector     []int    `json:"vector"`
	Candidates int      `json:"candidates"`
	Ties       int      `json:"ties"`
}

// Analyzer decomposes characters of one repertoire. It memoizes resolved
// glyphs, so each goroutine needs its own; Fork makes one cheaply.
type Analyzer struct {
	resolver    *repertoire.Resolver
	rep         *repertoire.Repertoire
	roots       *RootSet
	degenerator Degenerator
	classifier  map[glyph.Feature]string
	criteria    []Criterion
	strict      bool
}

// NewAnalyzer resolves the root glyphs and the criteria of opts.
func NewAnalyzer(rep *repertoire.Repertoire, opts Options) (*Analyzer, error) {
	selector := opts.Selector
	if len(selector) == 0 {
		selector = DefaultSelector
	}
	crit, err := ParseCriteria(selector)
	if err != nil {
		return nil, fmt.Errorf("parsing selector: %w", err)
	}

	resolver := repertoire.NewResolver(rep)
	glyphs := make(map[string]glyph.Glyph)
	for _, name := range opts.Roots {
		if _, ok := rep.Lookup(name); !ok {
			continue
		}
		g, err := resolver.Glyph(name)
		if err != nil {
			return nil, fmt.Errorf("resolving root %s: %w", name, err)
		}
		glyphs[name] = g
	}

	a := &Analyzer{
		resolver:    resolver,
		rep:         rep,
		roots:       NewRootSet(glyphs),
		degenerator: opts.Degenerator,
		classifier:  opts.Classifier,
		criteria:    crit,
		strict:      opts.StrictTieBreak,
	}
	if a.degenerator == nil {
		a.degenerator = DefaultDegenerator()
	}
	if a.classifier == nil {
		a.classifier = glyph.DefaultClassifier
	}
	return a, nil
}

// Fork returns an Analyzer sharing a's read-only state with a fresh glyph
// memo.
func (a *Analyzer) Fork() *Analyzer {
	b := *a
	b.resolver = repertoire.NewResolver(a.rep)
	return &b
}

// RootSet returns the root vocabulary.
func (a *Analyzer) RootSet() *RootSet { return a.roots }

// Glyph resolves the glyph of name.
func (a *Analyzer) Glyph(name string) (glyph.Glyph, error) {
	return a.resolver.Glyph(name)
}

// Analyze resolves the glyph of name and decomposes it.
func (a *Analyzer) Analyze(name string) (Analysis, error) {
	g, err := a.resolver.Glyph(name)
	if err != nil {
		return Analysis{}, err
	}
	return a.AnalyzeGlyph(name, g)
}

// AnalyzeGlyph decomposes g, the glyph of character name.
func (a *Analyzer) AnalyzeGlyph(name string, g glyph.Glyph) (Analysis, error) {
	topo := glyph.ComputeTopology(g)
	dict, err := NewDictionary(name, g, topo, a.roots, a.degenerator, a.classifier)
	if err != nil {
		return Analysis{}, err
	}

	n := len(g)
	parts := Generate(n, dict.Bitmasks(), NewMemo())
	candidates := make([]Scheme, len(parts))
	for i, p := range parts {
		candidates[i] = NewScheme(p, dict, n)
	}

	env := &Environment{Strokes: n, Topology: topo, Rank: a.roots.Rank}
	sel, err := Select(name, candidates, env, a.criteria, a.strict)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{
		Char:       name,
		Roots:      sel.Scheme.Names(),
		Scheme:     sel.Scheme,
		Vector:     sel.Vector,
		Candidates: len(candidates),
		Ties:       sel.Ties,
	}, nil
}
