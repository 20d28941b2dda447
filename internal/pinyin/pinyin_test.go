package pinyin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/pinyin"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		initial string
		final   string
		tone    chai.Tone
	}{
		{"you3", "0", "iou", chai.Tone3},
		{"yǒu", "0", "iou", chai.Tone3},
		{"yi1", "0", "i", chai.Tone1},
		{"ying2", "0", "ing", chai.Tone2},
		{"yue4", "0", "üe", chai.Tone4},
		{"yuan2", "0", "üan", chai.Tone2},
		{"wu3", "0", "u", chai.Tone3},
		{"wei4", "0", "uei", chai.Tone4},
		{"wen2", "0", "uen", chai.Tone2},
		{"an1", "0", "an", chai.Tone1},
		{"er2", "0", "er", chai.Tone2},
		{"liu2", "l", "iou", chai.Tone2},
		{"dui4", "d", "uei", chai.Tone4},
		{"lun2", "l", "uen", chai.Tone2},
		{"ju2", "j", "ü", chai.Tone2},
		{"xun4", "x", "ün", chai.Tone4},
		{"quan2", "q", "üan", chai.Tone2},
		{"lv4", "l", "ü", chai.Tone4},
		{"nüè", "n", "üe", chai.Tone4},
		{"zhong1", "zh", "ong", chai.Tone1},
		{"shi4", "sh", "i", chai.Tone4},
		{"de", "d", "e", chai.Tone5},
		{"ma5", "m", "a", chai.Tone5},
		{"n2", "0", "n", chai.Tone2},
		{"ng4", "0", "ng", chai.Tone4},
		{"ń", "0", "n", chai.Tone2},
		{"m2", "0", "m", chai.Tone2},
		{"hm5", "h", "m", chai.Tone5},
		{"hng5", "h", "ng", chai.Tone5},
		{"you7", "0", "iou", chai.ToneUnknown},
		{"you0", "0", "iou", chai.ToneUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s := pinyin.Parse(tt.raw)
			assert.Equal(t, tt.initial, s.Initial)
			assert.Equal(t, tt.final, s.Final)
			assert.Equal(t, tt.tone, s.Tone)
			assert.Equal(t, tt.raw, s.Raw)
		})
	}
}

func defaultTable(t *testing.T) pinyin.Table {
	t.Helper()
	table, err := pinyin.Build(pinyin.DefaultTables(), nil, nil)
	require.NoError(t, err)
	return table
}

func TestStandard_You3(t *testing.T) {
	a, err := pinyin.New(pinyin.Standard, defaultTable(t))
	require.NoError(t, err)
	assert.Equal(t, pinyin.Standard, a.Name())

	slots, err := a.Analyze("有", []string{"you3"})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, chai.Slots{
		pinyin.SlotInitial: "声母-0",
		pinyin.SlotFinal:   "韵母-iou",
		pinyin.SlotTone:    "声调-3",
	}, slots[0])
}

func TestStandard_Readings(t *testing.T) {
	a, err := pinyin.New("", defaultTable(t))
	require.NoError(t, err)

	slots, err := a.Analyze("行", []string{"xing2", "hang2"})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "声母-x", slots[0][pinyin.SlotInitial])
	assert.Equal(t, "韵母-ing", slots[0][pinyin.SlotFinal])
	assert.Equal(t, "声母-h", slots[1][pinyin.SlotInitial])
	assert.Equal(t, "韵母-ang", slots[1][pinyin.SlotFinal])
}

func TestStandard_Unrecognized(t *testing.T) {
	a, err := pinyin.New(pinyin.Standard, defaultTable(t))
	require.NoError(t, err)

	for _, raw := range []string{"xyz1", "hx", "b2", "you7", "you9", "you0"} {
		_, err := a.Analyze("某", []string{"ma1", raw})
		require.Error(t, err, raw)
		assert.ErrorIs(t, err, chai.ErrPhonetic)

		var ce *chai.Error
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, raw, ce.Syllable)
		assert.Equal(t, "某", ce.Char)
	}
}

func TestStandard_Interjections(t *testing.T) {
	a, err := pinyin.New(pinyin.Standard, defaultTable(t))
	require.NoError(t, err)

	slots, err := a.Analyze("嗯", []string{"n2", "ng4", "hng5"})
	require.NoError(t, err)
	assert.Equal(t, []chai.Slots{
		{pinyin.SlotInitial: "声母-0", pinyin.SlotFinal: "韵母-n", pinyin.SlotTone: "声调-2"},
		{pinyin.SlotInitial: "声母-0", pinyin.SlotFinal: "韵母-ng", pinyin.SlotTone: "声调-4"},
		{pinyin.SlotInitial: "声母-h", pinyin.SlotFinal: "韵母-ng", pinyin.SlotTone: "声调-5"},
	}, slots)
}

func TestBuild_OrderAndOverrides(t *testing.T) {
	tables := pinyin.DefaultTables()

	// a context rule beats the bare final
	table, err := pinyin.Build(tables, nil, pinyin.Table{
		pinyin.ContextFinalKey("j", "ü"): "韵母-u",
	})
	require.NoError(t, err)
	a, err := pinyin.New(pinyin.Standard, table)
	require.NoError(t, err)
	slots, err := a.Analyze("局", []string{"ju2", "lü4"})
	require.NoError(t, err)
	assert.Equal(t, "韵母-u", slots[0][pinyin.SlotFinal])
	assert.Equal(t, "韵母-ü", slots[1][pinyin.SlotFinal])

	// later tables win on shared keys
	custom := map[string]pinyin.Table{
		"a": {"声调|1": "平"},
		"b": {"声调|1": "阴平"},
	}
	merged, err := pinyin.Build(custom, []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "阴平", merged["声调|1"])
	merged, err = pinyin.Build(custom, []string{"b", "a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "平", merged["声调|1"])

	_, err = pinyin.Build(tables, []string{"initials", "rimes"}, nil)
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	merged := pinyin.Merge(pinyin.Table{"x": "1", "y": "1"}, nil, pinyin.Table{"y": "2"})
	assert.Equal(t, pinyin.Table{"x": "1", "y": "2"}, merged)
}

func TestInitialFinalLetter(t *testing.T) {
	a, err := pinyin.New(pinyin.InitialFinalLetter, nil)
	require.NoError(t, err)
	assert.Equal(t, pinyin.InitialFinalLetter, a.Name())

	slots, err := a.Analyze("绿", []string{"lü4", "lu4", "zhong1"})
	require.NoError(t, err)
	assert.Equal(t, []chai.Slots{
		{pinyin.SlotFirst: "l", pinyin.SlotLast: "v"},
		{pinyin.SlotFirst: "l", pinyin.SlotLast: "u"},
		{pinyin.SlotFirst: "z", pinyin.SlotLast: "g"},
	}, slots)

	_, err = a.Analyze("某", []string{"4"})
	assert.ErrorIs(t, err, chai.ErrPhonetic)
}

func TestNew_Unknown(t *testing.T) {
	_, err := pinyin.New("shuangpin", nil)
	assert.Error(t, err)
}

func TestSource(t *testing.T) {
	src := pinyin.NewSource()

	readings := src.Readings("中")
	require.NotEmpty(t, readings)
	assert.Equal(t, "zhong1", readings[0].Pinyin)
	assert.Equal(t, 100, readings[0].Importance)

	assert.Nil(t, src.Readings("a"))

	recorded := []chai.Reading{{Pinyin: "zhong4", Importance: 100}}
	assert.Equal(t, recorded, src.Lookup(recorded, "中"))
	assert.Equal(t, readings, src.Lookup(nil, "中"))
}
