// Package compose merges the glyphs of a compound character's operands into
// one positioned glyph.
package compose

import "github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"

// Operator is an Ideographic Description Character naming a layout.
type Operator string

const (
	LeftRight          Operator = "⿰" // ⿰AB = A on left, B on right
	TopBottom          Operator = "⿱" // ⿱AB = A on top, B on bottom
	LeftMidRight       Operator = "⿲"
	TopMidBottom       Operator = "⿳"
	Surround           Operator = "⿴" // ⿴AB = A surrounds B
	SurroundTop        Operator = "⿵" // A surrounds B from above
	SurroundBottom     Operator = "⿶"
	SurroundLeft       Operator = "⿷"
	SurroundUpperLeft  Operator = "⿸"
	SurroundUpperRight Operator = "⿹"
	SurroundLowerLeft  Operator = "⿺"
	Overlaid           Operator = "⿻"
	SurroundRight      Operator = "⿼"
	SurroundLowerRight Operator = "⿽"
)

// Unit is the side of the canonical layout box.
const Unit = 100.0

const third = Unit / 3

// layouts gives the translation of every operand inside the unit box. The
// number of entries is the operator's arity.
var layouts = map[Operator][]glyph.Point{
	LeftRight:          {{X: 0, Y: 0}, {X: Unit / 2, Y: 0}},
	TopBottom:          {{X: 0, Y: 0}, {X: 0, Y: Unit / 2}},
	LeftMidRight:       {{X: 0, Y: 0}, {X: third, Y: 0}, {X: 2 * third, Y: 0}},
	TopMidBottom:       {{X: 0, Y: 0}, {X: 0, Y: third}, {X: 0, Y: 2 * third}},
	Surround:           {{X: 0, Y: 0}, {X: Unit / 4, Y: Unit / 4}},
	SurroundTop:        {{X: 0, Y: 0}, {X: Unit / 4, Y: Unit / 2}},
	SurroundBottom:     {{X: 0, Y: 0}, {X: Unit / 4, Y: 0}},
	SurroundLeft:       {{X: 0, Y: 0}, {X: Unit / 2, Y: Unit / 4}},
	SurroundUpperLeft:  {{X: 0, Y: 0}, {X: Unit / 2, Y: Unit / 2}},
	SurroundUpperRight: {{X: 0, Y: 0}, {X: 0, Y: Unit / 2}},
	SurroundLowerLeft:  {{X: 0, Y: 0}, {X: Unit / 2, Y: 0}},
	Overlaid:           {{X: 0, Y: 0}, {X: 0, Y: 0}},
	SurroundRight:      {{X: 0, Y: 0}, {X: 0, Y: Unit / 4}},
	SurroundLowerRight: {{X: 0, Y: 0}, {X: 0, Y: 0}},
}

var descriptions = map[Operator]string{
	LeftRight:          "left-right",
	TopBottom:          "top-bottom",
	LeftMidRight:       "left-mid-right",
	TopMidBottom:       "top-mid-bottom",
	Surround:           "surround",
	SurroundTop:        "surround-top",
	SurroundBottom:     "surround-bottom",
	SurroundLeft:       "surround-left",
	SurroundUpperLeft:  "surround-upper-left",
	SurroundUpperRight: "surround-upper-right",
	SurroundLowerLeft:  "surround-lower-left",
	Overlaid:           "overlaid",
	SurroundRight:      "surround-right",
	SurroundLowerRight: "surround-lower-right",
}

// Valid reports whether op is a known operator.
func (op Operator) Valid() bool {
	_, ok := layouts[op]
	return ok
}

// Arity returns how many operands op takes, or 0 for an unknown operator.
func (op Operator) Arity() int { return len(layouts[op]) }

// Offsets returns the translation applied to each operand.
func (op Operator) Offsets() []glyph.Point {
	return append([]glyph.Point(nil), layouts[op]...)
}

// String returns a human-readable name such as "left-right".
func (op Operator) String() string {
	if d, ok := descriptions[op]; ok {
		return d
	}
	return string(op)
}
