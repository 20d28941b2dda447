package scheme

import (
	"fmt"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
)

// Root is one root of a scheme.
type Root struct {
	Name        string  `json:"name"`
	StrokeIndex int     `json:"strokeIndex"` // first stroke covered
	Bitmask     Bitmask `json:"bitmask"`
}

// Scheme is a partition of a glyph's strokes into named roots, earliest
// first stroke first.
type Scheme []Root

// Names returns the root names in order.
func (s Scheme) Names() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Name
	}
	return out
}

// NewScheme names the members of p through d.
func NewScheme(p Partition, d Dictionary, n int) Scheme {
	s := make(Scheme, len(p))
	for i, b := range p {
		s[i] = Root{Name: d[b], StrokeIndex: b.First(n), Bitmask: b}
	}
	return s
}

// Environment is what structural criteria know about the glyph being
// decomposed.
type Environment struct {
	Strokes  int
	Topology glyph.Topology
	// Rank gives the canonical position of a root. When set, 取大优先
	// breaks ties in size by it.
	Rank func(name string) int
}

// Criterion scores a scheme; smaller vectors are better.
type Criterion interface {
	Name() string
	Evaluate(s Scheme, env *Environment) []int
}

// Criterion names as they appear in configuration.
const (
	FewerRoots  = "根少优先"
	LargerRoots = "取大优先"
	StrokeOrder = "全符笔顺"
	NoCrossing  = "能连不交"
	NoAttaching = "能散不连"
)

// DefaultSelector is the priority order used when none is configured.
var DefaultSelector = []string{FewerRoots, NoCrossing, NoAttaching, StrokeOrder, LargerRoots}

var criteria = map[string]Criterion{
	FewerRoots:  rootCount{},
	LargerRoots: rootSize{},
	StrokeOrder: strokeOrder{},
	NoCrossing:  pairCount{name: NoCrossing, match: func(r glyph.Relation) bool { return r == glyph.Crossing }},
	NoAttaching: pairCount{name: NoAttaching, match: glyph.Relation.Connected},
}

// LookupCriterion returns the criterion registered under name.
func LookupCriterion(name string) (Criterion, bool) {
	c, ok := criteria[name]
	return c, ok
}

// ParseCriteria resolves a configured priority order.
func ParseCriteria(names []string) ([]Criterion, error) {
	out := make([]Criterion, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		c, ok := criteria[n]
		if !ok {
			return nil, fmt.Errorf("unknown criterion %q", n)
		}
		if seen[n] {
			return nil, fmt.Errorf("criterion %q listed twice", n)
		}
		seen[n] = true
		out = append(out, c)
	}
	return out, nil
}

type rootCount struct{}

func (rootCount) Name() string { return FewerRoots }

func (rootCount) Evaluate(s Scheme, _ *Environment) []int { return []int{len(s)} }

// rootSize prefers schemes whose earlier roots are bigger, then schemes whose
// roots come earlier in canonical order.
type rootSize struct{}

func (rootSize) Name() string { return LargerRoots }

func (rootSize) Evaluate(s Scheme, env *Environment) []int {
	v := make([]int, len(s), 2*len(s))
	for i, r := range s {
		v[i] = -r.Bitmask.Count()
	}
	if env != nil && env.Rank != nil {
		for _, r := range s {
			v = append(v, env.Rank(r.Name))
		}
	}
	return v
}

// strokeOrder counts roots whose stroke span is broken by a root that starts
// later, i.e. roots that cannot be written in one go.
type strokeOrder struct{}

func (strokeOrder) Name() string { return StrokeOrder }

func (strokeOrder) Evaluate(s Scheme, env *Environment) []int {
	n := env.Strokes
	count := 0
	for _, r := range s {
		first, last := r.Bitmask.First(n), r.Bitmask.Last(n)
		for _, o := range s {
			if o.Bitmask == r.Bitmask {
				continue
			}
			if of := o.Bitmask.First(n); of > first && of < last {
				count++
				break
			}
		}
	}
	return []int{count}
}

// pairCount counts stroke pairs from different roots whose relation matches.
type pairCount struct {
	name  string
	match func(glyph.Relation) bool
}

func (c pairCount) Name() string { return c.name }

func (c pairCount) Evaluate(s Scheme, env *Environment) []int {
	n := env.Strokes
	owner := make([]int, n)
	for k, r := range s {
		for _, i := range r.Bitmask.Indices(n) {
			owner[i] = k
		}
	}
	count := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if owner[i] != owner[j] && c.match(env.Topology[i][j]) {
				count++
			}
		}
	}
	return []int{count}
}
