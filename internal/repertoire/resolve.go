package repertoire

import (
	"fmt"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/compose"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
)

// visitation states of the operand walk
const (
	white = iota
	gray
	black
)

// frame is one level of the explicit DFS stack: a character and the index of
// the next operand to descend into.
type frame struct {
	name string
	next int
}

// Resolver turns compound characters into concrete glyphs by composing their
// operands. Resolved glyphs are memoized for the lifetime of the Resolver,
// so a Resolver belongs to one run and must not be shared across goroutines.
type Resolver struct {
	rep  *Repertoire
	memo map[string]glyph.Glyph
}

// NewResolver returns a Resolver over rep with an empty memo.
func NewResolver(rep *Repertoire) *Resolver {
	return &Resolver{rep: rep, memo: make(map[string]glyph.Glyph)}
}

// Order returns the characters reachable from name through compound
// operands, operands before the compounds that use them. Only the first
// glyph variant of each character is followed.
//
// A compound whose operands lead back to itself is a cyclic error naming
// the cycle; an operand missing from the repertoire is a configuration
// error on the compound that references it.
func (r *Resolver) Order(name string) ([]string, error) {
	if _, ok := r.rep.Lookup(name); !ok {
		return nil, chai.Configurationf(name, "not in repertoire")
	}

	state := map[string]int{name: gray}
	stack := []frame{{name: name}}
	var order []string

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		operands := r.operands(top.name)
		if top.next == len(operands) {
			state[top.name] = black
			order = append(order, top.name)
			stack = stack[:len(stack)-1]
			continue
		}

		o := operands[top.next]
		top.next++
		if _, done := r.memo[o]; done {
			continue
		}
		switch state[o] {
		case black:
			continue
		case gray:
			return nil, chai.Cyclic(name, cycle(stack, o))
		}
		if _, ok := r.rep.Lookup(o); !ok {
			return nil, chai.Configurationf(top.name, "operand %s not in repertoire", o)
		}
		state[o] = gray
		stack = append(stack, frame{name: o})
	}
	return order, nil
}

// operands lists the operand names of name's first glyph, nil for basic
// components and characters without glyphs.
func (r *Resolver) operands(name string) []string {
	if _, done := r.memo[name]; done {
		return nil
	}
	e, _ := r.rep.Lookup(name)
	if e == nil || len(e.Glyphs) == 0 || e.Glyphs[0].Kind != Compound {
		return nil
	}
	return e.Glyphs[0].Operands
}

// cycle returns the names on the stack from o upward, closed with o.
func cycle(stack []frame, o string) []string {
	var path []string
	for i, f := range stack {
		if f.name == o {
			for _, g := range stack[i:] {
				path = append(path, g.name)
			}
			break
		}
	}
	return append(path, o)
}

// Glyph returns the stroke sequence of name. Characters are composed in the
// order produced by Order, so every operand is available by the time its
// compound is merged.
func (r *Resolver) Glyph(name string) (glyph.Glyph, error) {
	if g, ok := r.memo[name]; ok {
		return g, nil
	}
	order, err := r.Order(name)
	if err != nil {
		return nil, err
	}
	for _, n := range order {
		if _, ok := r.memo[n]; ok {
			continue
		}
		g, err := r.build(n)
		if err != nil {
			return nil, err
		}
		r.memo[n] = g
	}
	return r.memo[name], nil
}

func (r *Resolver) build(name string) (glyph.Glyph, error) {
	e, _ := r.rep.Lookup(name)
	if len(e.Glyphs) == 0 {
		return nil, chai.Configurationf(name, "no glyph")
	}
	c := e.Glyphs[0]
	switch c.Kind {
	case BasicComponent:
		return c.Glyph, nil
	case Compound:
		operands := make([]glyph.Glyph, len(c.Operands))
		for i, o := range c.Operands {
			operands[i] = r.memo[o]
		}
		merged, err := compose.Merge(c.Operator, operands, c.Order)
		if err != nil {
			return nil, chai.Configurationf(name, "composing: %w", err)
		}
		return merged, nil
	}
	return nil, chai.Configurationf(name, "unknown glyph kind %q", c.Kind)
}

// Memoized reports how many glyphs have been resolved so far.
func (r *Resolver) Memoized() int {
	return len(r.memo)
}

// ResolveAll resolves every name and returns the glyphs that succeeded
// together with the per-character failures.
func (r *Resolver) ResolveAll(names []string) (map[string]glyph.Glyph, map[string]error) {
	glyphs := make(map[string]glyph.Glyph, len(names))
	failed := make(map[string]error)
	for _, n := range names {
		g, err := r.Glyph(n)
		if err != nil {
			failed[n] = fmt.Errorf("resolving %s: %w", n, err)
			continue
		}
		glyphs[n] = g
	}
	return glyphs, failed
}
