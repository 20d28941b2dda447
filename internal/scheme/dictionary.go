package scheme

import (
	"sort"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
)

// Degenerator maps stroke features to the feature they are compared as.
// Features without an entry compare as themselves.
type Degenerator map[glyph.Feature]glyph.Feature

// Degenerate returns the feature f is compared as.
func (d Degenerator) Degenerate(f glyph.Feature) glyph.Feature {
	if g, ok := d[f]; ok {
		return g
	}
	return f
}

// DefaultDegenerator treats 提 as 横 and 捺 as 点.
func DefaultDegenerator() Degenerator {
	return Degenerator{glyph.Ti: glyph.Heng, glyph.Na: glyph.Dian}
}

// RootGlyph is a root with its geometry prepared for matching.
type RootGlyph struct {
	Name     string
	Glyph    glyph.Glyph
	Topology glyph.Topology
}

// RootSet is the run's root vocabulary, kept in canonical order: roots with
// more strokes first, then by name. It is read-only once built.
type RootSet struct {
	roots []RootGlyph
	rank  map[string]int
}

// NewRootSet computes the topology of every root glyph and orders them.
func NewRootSet(glyphs map[string]glyph.Glyph) *RootSet {
	rs := &RootSet{rank: make(map[string]int, len(glyphs))}
	for name, g := range glyphs {
		rs.roots = append(rs.roots, RootGlyph{Name: name, Glyph: g, Topology: glyph.ComputeTopology(g)})
	}
	sort.Slice(rs.roots, func(i, j int) bool {
		a, b := rs.roots[i], rs.roots[j]
		if len(a.Glyph) != len(b.Glyph) {
			return len(a.Glyph) > len(b.Glyph)
		}
		return a.Name < b.Name
	})
	for i, r := range rs.roots {
		rs.rank[r.Name] = i
	}
	return rs
}

// Has reports whether name is a root.
func (rs *RootSet) Has(name string) bool {
	_, ok := rs.rank[name]
	return ok
}

// Rank returns the position of name in canonical order. Names that are not
// roots, such as stroke classes, rank after every root.
func (rs *RootSet) Rank(name string) int {
	if i, ok := rs.rank[name]; ok {
		return i
	}
	return len(rs.roots)
}

// Len returns the number of roots.
func (rs *RootSet) Len() int { return len(rs.roots) }

// Roots returns the roots in canonical order.
func (rs *RootSet) Roots() []RootGlyph { return rs.roots }

// Dictionary maps the bitmask of every root occurrence in one glyph to the
// root's name.
type Dictionary map[Bitmask]string

// Bitmasks returns the keys of d in descending order.
func (d Dictionary) Bitmasks() []Bitmask {
	out := make([]Bitmask, 0, len(d))
	for b := range d {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}

// NewDictionary locates the roots of rs inside the glyph g of character
// name. A root occurs wherever an increasing subsequence of g's strokes has
// the root's features after degeneration and the root's topology. Every
// single stroke is also present under its stroke class from classifier, and
// when name is itself a root it covers the whole glyph.
//
// When two roots occupy the same strokes the one earlier in canonical order
// keeps them, with stroke classes ranking among one-stroke roots by name.
func NewDictionary(name string, g glyph.Glyph, topo glyph.Topology, rs *RootSet, deg Degenerator, classifier map[glyph.Feature]string) (Dictionary, error) {
	n := len(g)
	if n == 0 {
		return nil, chai.Configurationf(name, "empty glyph")
	}
	if n > MaxStrokes {
		return nil, chai.Configurationf(name, "%d strokes, at most %d supported", n, MaxStrokes)
	}

	features := make([]glyph.Feature, n)
	for i, s := range g {
		features[i] = deg.Degenerate(s.Feature)
	}

	d := make(Dictionary)
	claim := func(b Bitmask, root string) {
		if cur, ok := d[b]; !ok || (b.Count() == 1 && root < cur) {
			d[b] = root
		}
	}

	for _, r := range rs.roots {
		if len(r.Glyph) > n || len(r.Glyph) == 0 {
			continue
		}
		want := make([]glyph.Feature, len(r.Glyph))
		for i, s := range r.Glyph {
			want[i] = deg.Degenerate(s.Feature)
		}
		for _, idx := range subsequences(features, want) {
			if topo.Sub(idx).Equal(r.Topology) {
				claim(FromIndices(idx, n), r.Name)
			}
		}
	}

	for i, s := range g {
		class, ok := classifier[s.Feature]
		if !ok {
			return nil, chai.Configurationf(name, "stroke %d: no class for feature %s", i, s.Feature)
		}
		claim(StrokeBit(i, n), class)
	}

	if rs.Has(name) {
		d[Full(n)] = name
	}
	return d, nil
}

// subsequences returns every increasing index sequence into have whose
// features equal want.
func subsequences(have, want []glyph.Feature) [][]int {
	var out [][]int
	idx := make([]int, len(want))
	var walk func(k, from int)
	walk = func(k, from int) {
		if k == len(want) {
			out = append(out, append([]int(nil), idx...))
			return
		}
		// leave room for the remaining features
		for i := from; i <= len(have)-(len(want)-k); i++ {
			if have[i] == want[k] {
				idx[k] = i
				walk(k+1, i+1)
			}
		}
	}
	walk(0, 0)
	return out
}
