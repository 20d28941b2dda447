package scheme

import "sort"

// Partition is a set of disjoint root bitmasks, earliest stroke first.
type Partition []Bitmask

// Memo caches the partitions of every remaining-strokes bitmask visited by
// Generate. Entries live in an arena indexed by bitmask; a Memo is only
// valid for the root set it was filled with, so callers use one per glyph.
type Memo struct {
	index map[Bitmask]int
	arena [][]Partition
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{index: make(map[Bitmask]int)}
}

func (m *Memo) get(b Bitmask) ([]Partition, bool) {
	i, ok := m.index[b]
	if !ok {
		return nil, false
	}
	return m.arena[i], true
}

func (m *Memo) put(b Bitmask, ps []Partition) {
	m.index[b] = len(m.arena)
	m.arena = append(m.arena, ps)
}

// Len returns the number of cached bitmasks.
func (m *Memo) Len() int { return len(m.arena) }

// Reset empties the memo, keeping its storage.
func (m *Memo) Reset() {
	clear(m.index)
	m.arena = m.arena[:0]
}

// IntervalSums returns the members of roots whose strokes are a contiguous
// run of at least two and that are also the disjoint union of two or more
// other members. The result is sorted ascending.
func IntervalSums(roots []Bitmask) []Bitmask {
	var sums []Bitmask
	for _, v := range roots {
		if v.Count() < 2 || !v.Contiguous() {
			continue
		}
		var parts []Bitmask
		for _, r := range roots {
			if r != v && r.SubsetOf(v) {
				parts = append(parts, r)
			}
		}
		if coverable(v, parts) {
			sums = append(sums, v)
		}
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i] < sums[j] })
	return sums
}

// coverable reports whether target is an exact disjoint union of parts.
func coverable(target Bitmask, parts []Bitmask) bool {
	seen := make(map[Bitmask]bool)
	var walk func(rem Bitmask) bool
	walk = func(rem Bitmask) bool {
		if rem == 0 {
			return true
		}
		if ok, done := seen[rem]; done {
			return ok
		}
		hi := rem.Highest()
		ok := false
		for _, p := range parts {
			if p&hi != 0 && p.SubsetOf(rem) && walk(rem&^p) {
				ok = true
				break
			}
		}
		seen[rem] = ok
		return ok
	}
	return walk(target)
}

// Generate enumerates every partition of the n strokes into members of
// roots. At each step the earliest unassigned stroke is covered by each root
// containing it, tried in descending bitmask order. Partitions in which some
// interval sum is assembled from two or more smaller roots are dropped, since
// the interval sum itself covers the same strokes.
//
// An empty result means the roots cannot cover the glyph. A nil memo is
// replaced by a fresh one.
func Generate(n int, roots []Bitmask, memo *Memo) []Partition {
	if memo == nil {
		memo = NewMemo()
	}
	sorted := append([]Bitmask(nil), roots...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	all := partitions(Full(n), sorted, memo)
	sums := IntervalSums(sorted)

	var out []Partition
	for _, p := range all {
		if !assemblesSum(p, sums) {
			out = append(out, p)
		}
	}
	return out
}

func partitions(rem Bitmask, roots []Bitmask, memo *Memo) []Partition {
	if rem == 0 {
		return []Partition{nil}
	}
	if ps, ok := memo.get(rem); ok {
		return ps
	}
	hi := rem.Highest()
	var out []Partition
	for _, r := range roots {
		if r&hi == 0 || !r.SubsetOf(rem) {
			continue
		}
		for _, rest := range partitions(rem&^r, roots, memo) {
			p := make(Partition, 0, len(rest)+1)
			p = append(p, r)
			out = append(out, append(p, rest...))
		}
	}
	memo.put(rem, out)
	return out
}

// assemblesSum reports whether p builds some interval sum out of two or more
// of its roots.
func assemblesSum(p Partition, sums []Bitmask) bool {
	for _, v := range sums {
		inside := 0
		clean := true
		for _, r := range p {
			switch {
			case r.SubsetOf(v):
				inside++
			case r&v != 0:
				clean = false
			}
		}
		if clean && inside >= 2 {
			return true
		}
	}
	return false
}
