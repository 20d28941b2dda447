package glyph

// Relation classifies how two strokes meet. Larger values are stronger.
type Relation uint8

const (
	Disjoint Relation = iota // no common point
	Touching                 // an end of one stroke meets an end of the other
	Attached                 // an end of exactly one stroke lies on the other
	Crossing                 // the strokes meet away from both ends
)

func (r Relation) String() string {
	switch r {
	case Touching:
		return "touching"
	case Attached:
		return "attached"
	case Crossing:
		return "crossing"
	}
	return "disjoint"
}

// Connected reports whether the strokes touch or attach without crossing.
func (r Relation) Connected() bool { return r == Touching || r == Attached }

// Topology is the symmetric matrix of relations between every stroke pair
// of a glyph. The diagonal is Disjoint.
type Topology [][]Relation

// ComputeTopology classifies every stroke pair of g.
func ComputeTopology(g Glyph) Topology {
	n := len(g)
	lines := make([][]Point, n)
	boxes := make([]Box, n)
	for i, s := range g {
		lines[i] = s.Polyline()
		boxes[i] = s.BoundingBox()
	}
	t := make(Topology, n)
	for i := range t {
		t[i] = make([]Relation, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := Disjoint
			if boxes[i].Overlaps(boxes[j]) {
				r = relate(lines[i], lines[j])
			}
			t[i][j], t[j][i] = r, r
		}
	}
	return t
}

// Sub returns the topology restricted to the given stroke indices, in order.
func (t Topology) Sub(indices []int) Topology {
	out := make(Topology, len(indices))
	for a, i := range indices {
		out[a] = make([]Relation, len(indices))
		for b, j := range indices {
			out[a][b] = t[i][j]
		}
	}
	return out
}

// Equal reports whether t and o have the same size and relations.
func (t Topology) Equal(o Topology) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if len(t[i]) != len(o[i]) {
			return false
		}
		for j := range t[i] {
			if t[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Relate classifies two strokes directly.
func Relate(a, b Stroke) Relation {
	if !a.BoundingBox().Overlaps(b.BoundingBox()) {
		return Disjoint
	}
	return relate(a.Polyline(), b.Polyline())
}

func relate(a, b []Point) Relation {
	r := Disjoint
	for _, end := range [2]Point{a[0], a[len(a)-1]} {
		r = max(r, endRelation(end, b))
	}
	for _, end := range [2]Point{b[0], b[len(b)-1]} {
		r = max(r, endRelation(end, a))
	}
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if crosses(a[i], a[i+1], b[j], b[j+1]) {
				return Crossing
			}
		}
	}
	// a corner of one polyline on the interior of the other crosses it only
	// when the polyline goes on to the other side
	for _, pair := range [2][2][]Point{{a, b}, {b, a}} {
		line, other := pair[0], pair[1]
		for i := 1; i+1 < len(line); i++ {
			if !onInterior(line[i], other) {
				continue
			}
			if passesThrough(line[i-1], line[i], line[i+1], other) {
				return Crossing
			}
			r = max(r, Attached)
		}
	}
	return r
}

// passesThrough reports whether the corner prev-v-next, with v on the
// interior of line, has prev and next strictly on opposite sides of line.
func passesThrough(prev, v, next Point, line []Point) bool {
	for k := 0; k+1 < len(line); k++ {
		from, to := line[k], line[k+1]
		if k > 0 && v == from {
			from = line[k-1]
		} else if !PointLiesOnSegment(from, to, v) {
			continue
		}
		d := to.Sub(from)
		s1, s2 := d.Cross(prev.Sub(from)), d.Cross(next.Sub(from))
		return (s1 > 0 && s2 < 0) || (s1 < 0 && s2 > 0)
	}
	return false
}

// endRelation classifies a stroke end against another polyline.
func endRelation(p Point, line []Point) Relation {
	if p == line[0] || p == line[len(line)-1] {
		return Touching
	}
	if onInterior(p, line) {
		return Attached
	}
	return Disjoint
}

// onInterior reports whether p lies on line away from its two ends.
func onInterior(p Point, line []Point) bool {
	if p == line[0] || p == line[len(line)-1] {
		return false
	}
	for i := 0; i+1 < len(line); i++ {
		if PointLiesOnSegment(line[i], line[i+1], p) {
			return true
		}
		if i > 0 && p == line[i] {
			return true
		}
	}
	return false
}

// crosses reports a proper intersection of segments p1p2 and q1q2.
func crosses(p1, p2, q1, q2 Point) bool {
	r, s := p2.Sub(p1), q2.Sub(q1)
	d1, d2 := r.Cross(q1.Sub(p1)), r.Cross(q2.Sub(p1))
	d3, d4 := s.Cross(p1.Sub(q1)), s.Cross(p2.Sub(q1))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
