// Package glyphtest provides hand-drawn glyphs for tests.
package glyphtest

import "github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"

// H draws a horizontal stroke of length dx starting at (x, y).
func H(feature glyph.Feature, x, y, dx float64) glyph.Stroke {
	return glyph.Stroke{Feature: feature, Start: glyph.Pt(x, y), Curves: []glyph.Draw{{Command: glyph.CmdHorizontal, Parameters: []float64{dx}}}}
}

// V draws a vertical stroke of length dy starting at (x, y).
func V(feature glyph.Feature, x, y, dy float64) glyph.Stroke {
	return glyph.Stroke{Feature: feature, Start: glyph.Pt(x, y), Curves: []glyph.Draw{{Command: glyph.CmdVertical, Parameters: []float64{dy}}}}
}

// L draws a straight stroke by (dx, dy) starting at (x, y).
func L(feature glyph.Feature, x, y, dx, dy float64) glyph.Stroke {
	return glyph.Stroke{Feature: feature, Start: glyph.Pt(x, y), Curves: []glyph.Draw{{Command: glyph.CmdLine, Parameters: []float64{dx, dy}}}}
}

// Yi is 一.
func Yi() glyph.Glyph {
	return glyph.Glyph{H(glyph.Heng, 10, 50, 80)}
}

// Shi is 十: a horizontal crossed by a vertical.
func Shi() glyph.Glyph {
	return glyph.Glyph{
		H(glyph.Heng, 10, 40, 80),
		V(glyph.Shu, 50, 10, 80),
	}
}

// Da is 大: the horizontal crosses the 撇, the 捺 starts on the 撇.
func Da() glyph.Glyph {
	return glyph.Glyph{
		H(glyph.Heng, 10, 40, 80),
		L(glyph.Pie, 50, 10, -40, 80),
		L(glyph.Na, 30, 50, 60, 40),
	}
}

// Tian is 天: a short top horizontal on which the 撇 starts, over 大.
func Tian() glyph.Glyph {
	return glyph.Glyph{
		H(glyph.Heng, 25, 20, 50),
		H(glyph.Heng, 10, 45, 80),
		L(glyph.Pie, 50, 20, -40, 70),
		L(glyph.Na, 30, 55, 60, 35),
	}
}

// Ren is 人: the 捺 starts on the 撇.
func Ren() glyph.Glyph {
	return glyph.Glyph{
		L(glyph.Pie, 50, 10, -40, 80),
		L(glyph.Na, 30, 50, 60, 40),
	}
}

// Er is 二: two disjoint horizontals.
func Er() glyph.Glyph {
	return glyph.Glyph{
		H(glyph.Heng, 20, 30, 60),
		H(glyph.Heng, 10, 70, 80),
	}
}
