package compose

import (
	"errors"
	"fmt"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
)

var (
	// ErrOperator is returned for an unknown operator.
	ErrOperator = errors.New("compose: unknown operator")
	// ErrArity is returned when the operand count does not match the operator.
	ErrArity = errors.New("compose: operand count does not match operator")
	// ErrOrder is returned for an override entry that is out of range.
	ErrOrder = errors.New("compose: stroke order override out of range")
)

// OrderEntry takes the next Strokes strokes of operand Index. Strokes == 0
// takes everything left in that operand.
type OrderEntry struct {
	Index   int `json:"index" yaml:"index"`
	Strokes int `json:"strokes" yaml:"strokes"`
}

// Merge translates each operand to its place in op's layout and joins the
// strokes into one glyph. Without an order override the strokes follow
// operand order; with one, strokes are emitted by walking the override list
// and any strokes it leaves unconsumed follow in operand order.
func Merge(op Operator, operands []glyph.Glyph, order []OrderEntry) (glyph.Glyph, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrOperator, string(op))
	}
	if len(operands) != op.Arity() {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArity, op, op.Arity(), len(operands))
	}

	offsets := layouts[op]
	streams := make([]glyph.Glyph, len(operands))
	total := 0
	for i, g := range operands {
		streams[i] = g.Translate(offsets[i])
		total += len(g)
	}

	merged := make(glyph.Glyph, 0, total)
	used := make([]int, len(streams))
	for k, e := range order {
		if e.Index < 0 || e.Index >= len(streams) {
			return nil, fmt.Errorf("%w: entry %d names operand %d of %d", ErrOrder, k, e.Index, len(streams))
		}
		rest := len(streams[e.Index]) - used[e.Index]
		n := e.Strokes
		if n == 0 {
			n = rest
		}
		if n < 0 || n > rest {
			return nil, fmt.Errorf("%w: entry %d takes %d strokes from operand %d, %d left", ErrOrder, k, e.Strokes, e.Index, rest)
		}
		merged = append(merged, streams[e.Index][used[e.Index]:used[e.Index]+n]...)
		used[e.Index] += n
	}
	for i, s := range streams {
		merged = append(merged, s[used[i]:]...)
	}
	return merged, nil
}
