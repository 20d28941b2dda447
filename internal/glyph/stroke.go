package glyph

import (
	"fmt"
	"math"
)

// Feature is the shape category of a stroke.
type Feature string

const (
	Heng           Feature = "横"
	Ti             Feature = "提"
	Shu            Feature = "竖"
	ShuGou         Feature = "竖钩"
	Pie            Feature = "撇"
	Dian           Feature = "点"
	Na             Feature = "捺"
	HengGou        Feature = "横钩"
	HengPie        Feature = "横撇"
	HengZhe        Feature = "横折"
	HengZheGou     Feature = "横折钩"
	HengZheTi      Feature = "横折提"
	HengZheWan     Feature = "横折弯"
	HengZheWanGou  Feature = "横折弯钩"
	HengXieGou     Feature = "横斜钩"
	HengZheZhe     Feature = "横折折"
	HengZheZhePie  Feature = "横折折撇"
	HengZheZheZhe  Feature = "横折折折"
	HengPieWanGou  Feature = "横撇弯钩"
	ShuTi          Feature = "竖提"
	ShuZhe         Feature = "竖折"
	ShuWan         Feature = "竖弯"
	ShuWanGou      Feature = "竖弯钩"
	ShuZheZhe      Feature = "竖折折"
	ShuZheZheGou   Feature = "竖折折钩"
	ShuZhePie      Feature = "竖折撇"
	PieDian        Feature = "撇点"
	PieZhe         Feature = "撇折"
	XieGou         Feature = "斜钩"
	WanGou         Feature = "弯钩"
	WoGou          Feature = "卧钩"
	HengZheZheZheG Feature = "横折折折钩"
)

// DefaultClassifier assigns every feature to one of the five stroke classes
// used to name single-stroke roots.
var DefaultClassifier = map[Feature]string{
	Heng: "1", Ti: "1",
	Shu: "2", ShuGou: "2",
	Pie: "3",
	Dian: "4", Na: "4",
	HengGou: "5", HengPie: "5", HengZhe: "5", HengZheGou: "5", HengZheTi: "5",
	HengZheWan: "5", HengZheWanGou: "5", HengXieGou: "5", HengZheZhe: "5",
	HengZheZhePie: "5", HengZheZheZhe: "5", HengZheZheZheG: "5", HengPieWanGou: "5",
	ShuTi: "5", ShuZhe: "5", ShuWan: "5", ShuWanGou: "5", ShuZheZhe: "5",
	ShuZheZheGou: "5", ShuZhePie: "5", PieDian: "5", PieZhe: "5",
	XieGou: "5", WanGou: "5", WoGou: "5",
}

// Command tags of a Draw.
const (
	CmdHorizontal = "h" // dx
	CmdVertical   = "v" // dy
	CmdLine       = "l" // dx dy
	CmdCubic      = "c" // x1 y1 x2 y2 x3 y3, all relative to the current point
	CmdZigzag     = "z" // x1 y1 x2 y2, a two-segment polyline
	CmdArc        = "a" // r, a closed circle whose leftmost point is the current point
)

var commandArity = map[string]int{
	CmdHorizontal: 1,
	CmdVertical:   1,
	CmdLine:       2,
	CmdCubic:      6,
	CmdZigzag:     4,
	CmdArc:        1,
}

// curveSteps is the number of segments a cubic or an arc is flattened into.
const curveSteps = 8

// Draw is one drawing command with its numeric parameters. Parameters are
// offsets relative to the pen position, so translating a stroke never
// touches them.
type Draw struct {
	Command    string    `json:"command"`
	Parameters []float64 `json:"parameterList"`
}

// Validate checks the command tag and its parameter count.
func (d Draw) Validate() error {
	n, ok := commandArity[d.Command]
	if !ok {
		return fmt.Errorf("unknown draw command %q", d.Command)
	}
	if len(d.Parameters) != n {
		return fmt.Errorf("draw command %q takes %d parameters, got %d", d.Command, n, len(d.Parameters))
	}
	return nil
}

// Stroke is a single pen movement. Strokes are never mutated after
// construction; Translate returns a copy.
type Stroke struct {
	Feature Feature `json:"feature"`
	Start   Point   `json:"start"`
	Curves  []Draw  `json:"curveList"`
}

// Validate checks every draw command of s.
func (s Stroke) Validate() error {
	if len(s.Curves) == 0 {
		return fmt.Errorf("stroke %s has no curves", s.Feature)
	}
	for i, d := range s.Curves {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("stroke %s curve %d: %w", s.Feature, i, err)
		}
	}
	return nil
}

// Translate returns s shifted by offset.
func (s Stroke) Translate(offset Point) Stroke {
	return Stroke{Feature: s.Feature, Start: s.Start.Add(offset), Curves: s.Curves}
}

// Polyline flattens s into the sequence of points the pen passes through.
// The first and last points are the ends of the stroke.
func (s Stroke) Polyline() []Point {
	pts := []Point{s.Start}
	cur := s.Start
	for _, d := range s.Curves {
		p := d.Parameters
		switch d.Command {
		case CmdHorizontal:
			cur = cur.Add(Pt(p[0], 0))
			pts = append(pts, cur)
		case CmdVertical:
			cur = cur.Add(Pt(0, p[0]))
			pts = append(pts, cur)
		case CmdLine:
			cur = cur.Add(Pt(p[0], p[1]))
			pts = append(pts, cur)
		case CmdZigzag:
			pts = append(pts, cur.Add(Pt(p[0], p[1])))
			cur = cur.Add(Pt(p[2], p[3]))
			pts = append(pts, cur)
		case CmdCubic:
			c1, c2, c3 := cur.Add(Pt(p[0], p[1])), cur.Add(Pt(p[2], p[3])), cur.Add(Pt(p[4], p[5]))
			for i := 1; i < curveSteps; i++ {
				pts = append(pts, cubicAt(cur, c1, c2, c3, float64(i)/curveSteps))
			}
			cur = c3
			pts = append(pts, cur)
		case CmdArc:
			center := cur.Add(Pt(p[0], 0))
			for i := 1; i < curveSteps; i++ {
				theta := math.Pi + 2*math.Pi*float64(i)/curveSteps
				pts = append(pts, center.Add(Pt(p[0]*math.Cos(theta), p[0]*math.Sin(theta))))
			}
			pts = append(pts, cur)
		}
	}
	return pts
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	return p0.Scale(u * u * u).
		Add(p1.Scale(3 * u * u * t)).
		Add(p2.Scale(3 * u * t * t)).
		Add(p3.Scale(t * t * t))
}

// BoundingBox returns the box around the flattened stroke.
func (s Stroke) BoundingBox() Box {
	b := emptyBox
	for _, p := range s.Polyline() {
		b = b.Extend(p)
	}
	return b
}

// Glyph is one visual rendering of a character or root: its strokes in
// canonical writing order.
type Glyph []Stroke

// Validate checks every stroke of g.
func (g Glyph) Validate() error {
	for i, s := range g {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("stroke %d: %w", i, err)
		}
	}
	return nil
}

// Translate returns a copy of g with every stroke shifted by offset.
func (g Glyph) Translate(offset Point) Glyph {
	out := make(Glyph, len(g))
	for i, s := range g {
		out[i] = s.Translate(offset)
	}
	return out
}

// BoundingBox returns the union of the strokes' boxes.
func (g Glyph) BoundingBox() Box {
	b := emptyBox
	for _, s := range g {
		b = b.Union(s.BoundingBox())
	}
	return b
}

// Features lists the feature of every stroke in order.
func (g Glyph) Features() []Feature {
	out := make([]Feature, len(g))
	for i, s := range g {
		out[i] = s.Feature
	}
	return out
}
