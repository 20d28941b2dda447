// Package repertoire holds the character repertoire: every character's glyph
// variants, readings and character-set flags.
package repertoire

import (
	"sort"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/compose"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
)

// Kind tags the variant held by a Character.
type Kind string

const (
	BasicComponent Kind = "basic_component"
	Compound       Kind = "compound"
)

// Character is one way of drawing a character: either a glyph of its own or
// a composition of other characters referenced by name.
type Character struct {
	Kind Kind

	// BasicComponent
	Glyph glyph.Glyph

	// Compound
	Operator compose.Operator
	Operands []string
	Order    []compose.OrderEntry
}

// Basic builds a basic component.
func Basic(g glyph.Glyph) Character {
	return Character{Kind: BasicComponent, Glyph: g}
}

// Compose builds a compound.
func Compose(op compose.Operator, operands []string, order ...compose.OrderEntry) Character {
	return Character{Kind: Compound, Operator: op, Operands: operands, Order: order}
}

// Entry is everything the repertoire knows about one character.
type Entry struct {
	Name     string
	Glyphs   []Character
	Readings []chai.Reading
	TYGF     int  // level in the 通用规范汉字表, 0 when absent
	GB2312   bool // member of GB 2312
}

// Repertoire maps character names to entries. It is read-only once built.
type Repertoire struct {
	entries map[string]*Entry
}

// New builds a repertoire from entries; later entries replace earlier ones
// with the same name.
func New(entries ...*Entry) *Repertoire {
	r := &Repertoire{entries: make(map[string]*Entry, len(entries))}
	for _, e := range entries {
		r.entries[e.Name] = e
	}
	return r
}

// Lookup returns the entry for name.
func (r *Repertoire) Lookup(name string) (*Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Size returns the number of entries.
func (r *Repertoire) Size() int {
	return len(r.entries)
}

// Names returns every character name in code point order.
func (r *Repertoire) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Readings returns the readings recorded for name.
func (r *Repertoire) Readings(name string) []chai.Reading {
	if e, ok := r.entries[name]; ok {
		return e.Readings
	}
	return nil
}
