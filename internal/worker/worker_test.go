package worker_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/assemble"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/compose"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/config"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph/glyphtest"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/repertoire"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/scheme"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/worker"
)

func basic(name string, g glyph.Glyph, readings ...chai.Reading) *repertoire.Entry {
	return &repertoire.Entry{Name: name, Glyphs: []repertoire.Character{repertoire.Basic(g)}, Readings: readings, GB2312: true}
}

// testRepertoire holds 天 and a copy of its glyph under 兲, the roots of
// the default config, and 怪, whose stroke has no class.
func testRepertoire() *repertoire.Repertoire {
	return repertoire.New(
		basic("一", glyphtest.Yi()),
		basic("二", glyphtest.Er()),
		basic("人", glyphtest.Ren()),
		basic("大", glyphtest.Da(), chai.Reading{Pinyin: "da4", Importance: 100}),
		basic("天", glyphtest.Tian(), chai.Reading{Pinyin: "tian1", Importance: 100}),
		basic("兲", glyphtest.Tian()),
		basic("十", glyphtest.Shi()),
		basic("怪", glyph.Glyph{glyphtest.H("怪", 10, 50, 80)}),
		&repertoire.Entry{Name: "土", Glyphs: []repertoire.Character{
			repertoire.Compose(compose.TopBottom, []string{"十", "一"}),
		}},
	)
}

func newEngine(t *testing.T) *worker.Engine {
	t.Helper()
	e, err := worker.NewEngine(config.Default(), testRepertoire())
	require.NoError(t, err)
	return e
}

func args(t *testing.T, values ...any) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(values))
	for i, v := range values {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		out[i] = data
	}
	return out
}

func TestWorker_Engine(t *testing.T) {
	w := newEngine(t).Serve()
	defer w.Close()
	ctx := context.Background()

	resp, err := w.Call(ctx, worker.Request{ID: "1", Function: worker.FuncAnalyze, Args: args(t, "天")})
	require.NoError(t, err)
	require.True(t, resp.OK)
	assert.Equal(t, "1", resp.ID)
	assert.Equal(t, []string{"1", "大"}, resp.Value.(scheme.Analysis).Roots)

	resp, err = w.Call(ctx, worker.Request{Function: worker.FuncEncode, Args: args(t, "天")})
	require.NoError(t, err)
	require.True(t, resp.OK)
	assert.Equal(t, []assemble.CharCode{{Char: "天", Pinyin: "tian1", Code: "aj", Importance: 100}}, resp.Value)

	resp, err = w.Call(ctx, worker.Request{Function: worker.FuncReadings, Args: args(t, "大")})
	require.NoError(t, err)
	assert.Equal(t, []chai.Reading{{Pinyin: "da4", Importance: 100}}, resp.Value)

	resp, err = w.Call(ctx, worker.Request{Function: worker.FuncFilter, Args: args(t, "gb2312")})
	require.NoError(t, err)
	assert.Len(t, resp.Value, 8)
}

func TestWorker_Failures(t *testing.T) {
	w := newEngine(t).Serve()
	defer w.Close()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     worker.Request
		kind    chai.Kind
		message string
	}{
		{"unknown function", worker.Request{Function: "nope"}, "", "unknown function"},
		{"missing argument", worker.Request{Function: worker.FuncAnalyze}, chai.KindConfiguration, "missing argument"},
		{"bad argument", worker.Request{Function: worker.FuncAnalyze, Args: args(t, 3)}, chai.KindConfiguration, "argument 0"},
		{"no stroke class", worker.Request{Function: worker.FuncAnalyze, Args: args(t, "怪")}, chai.KindConfiguration, "no class"},
		{"unknown set", worker.Request{Function: worker.FuncFilter, Args: args(t, "huge")}, chai.KindConfiguration, "huge"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := w.Call(ctx, tt.req)
			require.NoError(t, err)
			assert.False(t, resp.OK)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.kind, resp.Error.Kind)
			assert.Contains(t, resp.Error.Message, tt.message)
		})
	}
}

func TestWorker_ResponseJSON(t *testing.T) {
	w := newEngine(t).Serve()
	defer w.Close()

	resp, err := w.Call(context.Background(), worker.Request{ID: "7", Function: worker.FuncAnalyze, Args: args(t, "怪")})
	require.NoError(t, err)
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "7", got["id"])
	assert.Equal(t, false, got["ok"])
	assert.Equal(t, "怪", got["error"].(map[string]any)["char"])
}

func TestWorker_Abandon(t *testing.T) {
	release := make(chan struct{})
	w := worker.New(map[string]worker.Handler{
		"block": func(context.Context, []json.RawMessage) (any, error) {
			<-release
			return "done", nil
		},
		"echo": func(_ context.Context, a []json.RawMessage) (any, error) {
			var s string
			err := worker.Arg(a, 0, &s)
			return s, err
		},
	})
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := w.Call(ctx, worker.Request{Function: "block"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	resp, err := w.Call(context.Background(), worker.Request{Function: "echo", Args: args(t, "hi")})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Value)
}

func TestWorker_Panic(t *testing.T) {
	w := worker.New(map[string]worker.Handler{
		"boom": func(context.Context, []json.RawMessage) (any, error) { panic("boom") },
	})
	defer w.Close()

	resp, err := w.Call(context.Background(), worker.Request{Function: "boom"})
	require.NoError(t, err)
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error.Message, "panicked")
}

func TestWorker_Closed(t *testing.T) {
	w := worker.New(nil)
	w.Close()
	w.Close()

	_, err := w.Call(context.Background(), worker.Request{Function: "x"})
	assert.ErrorIs(t, err, worker.ErrClosed)
}

func TestBatch(t *testing.T) {
	e := newEngine(t)
	names := []string{"天", "兲", "大", "土", "怪", "无"}

	report, err := worker.Batch(context.Background(), e.Analyzer, names, worker.Options{Workers: 3})
	require.NoError(t, err)

	require.Len(t, report.Analyses, 4)
	assert.Equal(t, []string{"1", "大"}, report.Analyses["天"].Roots)
	assert.Equal(t, []string{"1", "大"}, report.Analyses["兲"].Roots)
	assert.Equal(t, "兲", report.Analyses["兲"].Char)
	assert.Equal(t, "天", report.Analyses["天"].Char)
	assert.Equal(t, []string{"大"}, report.Analyses["大"].Roots)
	assert.Equal(t, []string{"土"}, report.Analyses["土"].Roots)
	assert.Equal(t, 1, report.Deduplicated)

	require.Len(t, report.Failed, 2)
	assert.ErrorIs(t, report.Failed["怪"], chai.ErrConfiguration)
	assert.ErrorIs(t, report.Failed["无"], chai.ErrConfiguration)
}

func TestBatch_Cancelled(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := worker.Batch(ctx, e.Analyzer, []string{"天", "大"}, worker.Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGlyphFingerprint(t *testing.T) {
	a, err := worker.GlyphFingerprint(glyphtest.Tian())
	require.NoError(t, err)
	b, err := worker.GlyphFingerprint(glyphtest.Tian())
	require.NoError(t, err)
	c, err := worker.GlyphFingerprint(glyphtest.Da())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestEngine_Encode(t *testing.T) {
	e := newEngine(t)
	dict := []chai.DictEntry{
		{Word: "天", Pinyin: []string{"tian1"}, Frequency: 100},
		{Word: "大", Pinyin: []string{"da4"}, Frequency: 50},
		{Word: "天大", Pinyin: []string{"tian1", "da4"}, Frequency: 10},
	}

	entries, failed, err := e.Encode(context.Background(), []string{"天", "大", "怪"}, dict, worker.Options{Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, []chai.CodeEntry{
		{Word: "天", Code: "aj", Frequency: 100},
		{Word: "大", Code: "j", Frequency: 50},
		{Word: "天大", Code: "ajj", Frequency: 10},
	}, entries)
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed["怪"], chai.ErrConfiguration)
}
