package repertoire

import (
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/compose"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
)

// rawEntry is the on-disk shape of an entry. Fields of the glyph records
// depend on their "type" and are validated by convert.
type rawEntry struct {
	Name     string         `json:"name,omitempty"`
	Glyphs   []rawGlyph     `json:"glyphs"`
	Readings []chai.Reading `json:"readings"`
	TYGF     int            `json:"tygf"`
	GB2312   rawFlag        `json:"gb2312"`
}

type rawGlyph struct {
	Type        string               `json:"type"`
	Strokes     []rawStroke          `json:"strokes,omitempty"`
	Operator    string               `json:"operator,omitempty"`
	OperandList []string             `json:"operandList,omitempty"`
	Order       []compose.OrderEntry `json:"order,omitempty"`
}

type rawStroke struct {
	Feature   string       `json:"feature"`
	Start     [2]float64   `json:"start"`
	CurveList []glyph.Draw `json:"curveList"`
}

// rawFlag accepts true/false as well as 0/1.
type rawFlag bool

func (f *rawFlag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag %s", data)
	}
	return nil
}

// Decode parses a repertoire document: a JSON object from character name to
// entry.
func Decode(data []byte) (*Repertoire, error) {
	var raw map[string]rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing repertoire: %w", err)
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]*Entry, 0, len(raw))
	for _, name := range names {
		e, err := convert(name, raw[name])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return New(entries...), nil
}

// convert validates a raw record and turns it into a typed entry.
func convert(name string, re rawEntry) (*Entry, error) {
	name = norm.NFC.String(name)
	if name == "" {
		return nil, fmt.Errorf("entry with empty name")
	}
	e := &Entry{
		Name:     name,
		Readings: re.Readings,
		TYGF:     re.TYGF,
		GB2312:   bool(re.GB2312),
	}
	for i, rg := range re.Glyphs {
		c, err := convertGlyph(rg)
		if err != nil {
			return nil, chai.Configurationf(name, "glyph %d: %w", i, err)
		}
		e.Glyphs = append(e.Glyphs, c)
	}
	return e, nil
}

func convertGlyph(rg rawGlyph) (Character, error) {
	switch Kind(rg.Type) {
	case BasicComponent:
		g := make(glyph.Glyph, len(rg.Strokes))
		for i, rs := range rg.Strokes {
			g[i] = glyph.Stroke{
				Feature: glyph.Feature(rs.Feature),
				Start:   glyph.Pt(rs.Start[0], rs.Start[1]),
				Curves:  rs.CurveList,
			}
		}
		if err := g.Validate(); err != nil {
			return Character{}, err
		}
		return Basic(g), nil
	case Compound:
		op := compose.Operator(rg.Operator)
		if !op.Valid() {
			return Character{}, fmt.Errorf("%w: %q", compose.ErrOperator, rg.Operator)
		}
		if len(rg.OperandList) != op.Arity() {
			return Character{}, fmt.Errorf("%w: %s takes %d, got %d", compose.ErrArity, op, op.Arity(), len(rg.OperandList))
		}
		operands := make([]string, len(rg.OperandList))
		for i, o := range rg.OperandList {
			operands[i] = norm.NFC.String(o)
		}
		return Compose(op, operands, rg.Order...), nil
	}
	return Character{}, fmt.Errorf("unknown glyph type %q", rg.Type)
}

// Encode serializes r in the document shape read by Decode.
func Encode(r *Repertoire) ([]byte, error) {
	raw := make(map[string]rawEntry, r.Size())
	for _, name := range r.Names() {
		e := r.entries[name]
		re := rawEntry{Readings: e.Readings, TYGF: e.TYGF, GB2312: rawFlag(e.GB2312)}
		for _, c := range e.Glyphs {
			rg := rawGlyph{Type: string(c.Kind)}
			if c.Kind == BasicComponent {
				for _, s := range c.Glyph {
					rg.Strokes = append(rg.Strokes, rawStroke{
						Feature:   string(s.Feature),
						Start:     [2]float64{s.Start.X, s.Start.Y},
						CurveList: s.Curves,
					})
				}
			} else {
				rg.Operator = string(c.Operator)
				rg.OperandList = c.Operands
				rg.Order = c.Order
			}
			re.Glyphs = append(re.Glyphs, rg)
		}
		raw[name] = re
	}
	return json.Marshal(raw)
}
