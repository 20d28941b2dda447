package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/compose"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph/glyphtest"
)

func TestMerge_LeftRight(t *testing.T) {
	left := glyph.Glyph{glyphtest.H(glyph.Heng, 20, 50, 60)}
	right := glyph.Glyph{glyphtest.V(glyph.Shu, 50, 10, 80)}

	merged, err := compose.Merge(compose.LeftRight, []glyph.Glyph{left, right}, nil)
	require.NoError(t, err)
	require.Len(t, merged, 2)

	assert.Equal(t, left[0], merged[0])
	assert.Equal(t, glyph.Pt(100, 10), merged[1].Start)
	assert.Equal(t, right[0].Curves, merged[1].Curves)
	assert.Equal(t, glyph.Shu, merged[1].Feature)
}

func TestMerge_TopBottom(t *testing.T) {
	merged, err := compose.Merge(compose.TopBottom, []glyph.Glyph{glyphtest.Yi(), glyphtest.Er()}, nil)
	require.NoError(t, err)
	require.Len(t, merged, 3)
	assert.Equal(t, glyph.Pt(10, 50), merged[0].Start)
	assert.Equal(t, glyph.Pt(20, 80), merged[1].Start)
	assert.Equal(t, glyph.Pt(10, 120), merged[2].Start)
}

func TestMerge_OrderOverride(t *testing.T) {
	left := glyph.Glyph{glyphtest.H(glyph.Heng, 20, 50, 60)}
	right := glyph.Glyph{glyphtest.V(glyph.Shu, 50, 10, 80)}

	merged, err := compose.Merge(compose.LeftRight, []glyph.Glyph{left, right}, []compose.OrderEntry{
		{Index: 1, Strokes: 1},
		{Index: 0, Strokes: 1},
	})
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, glyph.Shu, merged[0].Feature)
	assert.Equal(t, glyph.Pt(100, 10), merged[0].Start)
	assert.Equal(t, left[0], merged[1])
}

func TestMerge_OrderInterleaves(t *testing.T) {
	// 十 inside 口-like frame: take one stroke of the frame, all of the
	// inside, then the rest of the frame.
	frame := glyph.Glyph{
		glyphtest.V(glyph.Shu, 10, 10, 80),
		glyphtest.H(glyph.Heng, 10, 10, 80),
		glyphtest.H(glyph.Heng, 10, 90, 80),
	}
	merged, err := compose.Merge(compose.Surround, []glyph.Glyph{frame, glyphtest.Shi()}, []compose.OrderEntry{
		{Index: 0, Strokes: 2},
		{Index: 1, Strokes: 0},
	})
	require.NoError(t, err)
	require.Len(t, merged, 5)
	assert.Equal(t, []glyph.Feature{glyph.Shu, glyph.Heng, glyph.Heng, glyph.Shu, glyph.Heng}, merged.Features())
	assert.Equal(t, glyph.Pt(35, 65), merged[2].Start)
	assert.Equal(t, glyph.Pt(10, 90), merged[4].Start)
}

func TestMerge_Errors(t *testing.T) {
	one := []glyph.Glyph{glyphtest.Yi()}
	two := []glyph.Glyph{glyphtest.Yi(), glyphtest.Yi()}

	_, err := compose.Merge(compose.LeftRight, one, nil)
	assert.ErrorIs(t, err, compose.ErrArity)

	_, err = compose.Merge(compose.LeftMidRight, two, nil)
	assert.ErrorIs(t, err, compose.ErrArity)

	_, err = compose.Merge("X", two, nil)
	assert.ErrorIs(t, err, compose.ErrOperator)

	_, err = compose.Merge(compose.LeftRight, two, []compose.OrderEntry{{Index: 2, Strokes: 1}})
	assert.ErrorIs(t, err, compose.ErrOrder)

	_, err = compose.Merge(compose.LeftRight, two, []compose.OrderEntry{{Index: 0, Strokes: 2}})
	assert.ErrorIs(t, err, compose.ErrOrder)

	_, err = compose.Merge(compose.LeftRight, two, []compose.OrderEntry{{Index: 0, Strokes: -1}})
	assert.ErrorIs(t, err, compose.ErrOrder)
}

func TestOperator(t *testing.T) {
	assert.Equal(t, 2, compose.LeftRight.Arity())
	assert.Equal(t, 3, compose.TopMidBottom.Arity())
	assert.Equal(t, 0, compose.Operator("?").Arity())
	assert.Equal(t, "left-right", compose.LeftRight.String())
	assert.True(t, compose.Overlaid.Valid())
}
