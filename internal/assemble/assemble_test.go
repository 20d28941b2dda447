package assemble_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/assemble"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/config"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/pinyin"
)

func testConfig() *config.Config {
	return &config.Config{
		Info: config.Info{Name: "test"},
		Form: config.Form{
			Mapping: map[string]string{
				"1": "a", "2": "b", "3": "c", "4": "d",
				"大": "j", "人": "i", "日": "r",
			},
			Grouping: map[string]string{"亽": "大"},
		},
		Pronunciation: config.Pronunciation{
			Analyzer: pinyin.Standard,
			Mapping: map[string]string{
				"声母-t": "t", "声母-x": "x", "声母-h": "h", "声母-d": "d",
			},
		},
		Encoder: config.Encoder{
			MaxLength: 4,
			CharRules: []config.CharRule{
				{MinRoots: 3, Elements: []string{"根1", "根2", "根末"}},
				{MinRoots: 1, Elements: []string{"根1", "根末", "声"}},
			},
			WordRules: []config.WordRule{
				{MinLength: 2, Formula: "AaAbBaBb"},
			},
		},
	}
}

func newAssembler(t *testing.T, cfg *config.Config) *assemble.Assembler {
	t.Helper()
	a, err := assemble.New(cfg)
	require.NoError(t, err)
	return a
}

func TestElements(t *testing.T) {
	a := newAssembler(t, testConfig())
	assert.Equal(t, []string{"1", "大", "日"}, a.Elements([]string{"1", "亽", "大", "日"}))
	assert.Equal(t, []string{"大"}, a.Elements([]string{"大", "亽"}))
	assert.Empty(t, a.Elements(nil))
}

func TestEncodeChar(t *testing.T) {
	a := newAssembler(t, testConfig())

	tests := []struct {
		name string
		c    assemble.Character
		want []string
	}{
		{"two roots and initial", assemble.Character{Char: "天", Roots: []string{"1", "大"}, Readings: []chai.Reading{{Pinyin: "tian1", Importance: 100}}}, []string{"ajt"}},
		{"many roots", assemble.Character{Char: "某", Roots: []string{"1", "2", "3", "4"}}, []string{"abd"}},
		{"one root", assemble.Character{Char: "大", Roots: []string{"大"}, Readings: []chai.Reading{{Pinyin: "da4", Importance: 100}}}, []string{"jjd"}},
		{"alias", assemble.Character{Char: "亽", Roots: []string{"亽"}, Readings: []chai.Reading{{Pinyin: "da4", Importance: 100}}}, []string{"jjd"}},
		{"two readings", assemble.Character{Char: "行", Roots: []string{"1", "2"}, Readings: []chai.Reading{
			{Pinyin: "xing2", Importance: 80}, {Pinyin: "hang2", Importance: 20},
		}}, []string{"abx", "abh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codes, err := a.EncodeChar(tt.c)
			require.NoError(t, err)
			var got []string
			for _, c := range codes {
				assert.Equal(t, tt.c.Char, c.Char)
				got = append(got, c.Code)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeChar_Errors(t *testing.T) {
	a := newAssembler(t, testConfig())

	_, err := a.EncodeChar(assemble.Character{Char: "错", Roots: []string{"未"}, Readings: []chai.Reading{{Pinyin: "da4"}}})
	assert.ErrorIs(t, err, chai.ErrConfiguration)
	assert.Contains(t, err.Error(), "未")

	_, err = a.EncodeChar(assemble.Character{Char: "错", Roots: []string{"大"}, Readings: []chai.Reading{{Pinyin: "xyz1"}}})
	assert.ErrorIs(t, err, chai.ErrPhonetic)

	_, err = a.EncodeChar(assemble.Character{Char: "错", Roots: []string{"大"}})
	assert.ErrorIs(t, err, chai.ErrPhonetic)

	// 声母-m has no key
	_, err = a.EncodeChar(assemble.Character{Char: "马", Roots: []string{"大"}, Readings: []chai.Reading{{Pinyin: "ma3"}}})
	assert.ErrorIs(t, err, chai.ErrConfiguration)

	_, err = a.EncodeChar(assemble.Character{Char: "空"})
	assert.ErrorIs(t, err, chai.ErrConfiguration)

	cfg := testConfig()
	cfg.Encoder.CharRules = []config.CharRule{{MinRoots: 1, Elements: []string{"根1", "首"}}}
	_, err = newAssembler(t, cfg).EncodeChar(assemble.Character{Char: "大", Roots: []string{"大"}, Readings: []chai.Reading{{Pinyin: "da4"}}})
	assert.ErrorIs(t, err, chai.ErrConfiguration)
}

func TestEncodeChar_ShapeOnly(t *testing.T) {
	cfg := testConfig()
	cfg.Encoder.MaxLength = 2
	cfg.Encoder.CharRules = []config.CharRule{{MinRoots: 1, Elements: []string{"根1", "根2", "根3"}}}
	a := newAssembler(t, cfg)

	codes, err := a.EncodeChar(assemble.Character{Char: "天", Roots: []string{"1", "大", "日"}})
	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "aj", codes[0].Code)
	assert.Equal(t, 100, codes[0].Importance)

	// unknown syllables do not matter when no rule reads them
	codes, err = a.EncodeChar(assemble.Character{Char: "大", Roots: []string{"大"}, Readings: []chai.Reading{{Pinyin: "xyz1", Importance: 100}}})
	require.NoError(t, err)
	assert.Equal(t, "j", codes[0].Code)
}

func TestAssemble(t *testing.T) {
	a := newAssembler(t, testConfig())

	chars := []assemble.Character{
		{Char: "天", Roots: []string{"1", "大"}, Readings: []chai.Reading{{Pinyin: "tian1", Importance: 100}}},
		{Char: "行", Roots: []string{"1", "2"}, Readings: []chai.Reading{
			{Pinyin: "xing2", Importance: 80}, {Pinyin: "hang2", Importance: 20},
		}},
		{Char: "错", Roots: []string{"未"}},
	}
	dict := []chai.DictEntry{
		{Word: "天", Pinyin: []string{"tian1"}, Frequency: 1000},
		{Word: "行", Pinyin: []string{"xing2"}, Frequency: 500},
		{Word: "天行", Pinyin: []string{"tian1", "xing2"}, Frequency: 50},
		{Word: "行天", Pinyin: []string{"hang2", "tian1"}, Frequency: 30},
		{Word: "天未", Pinyin: []string{"tian1", "wei4"}, Frequency: 10},
	}

	out, failed := a.Assemble(chars, dict)
	assert.Equal(t, []chai.CodeEntry{
		{Word: "天", Code: "ajt", Frequency: 1000},
		{Word: "行", Code: "abx", Frequency: 400},
		{Word: "行", Code: "abh", Frequency: 100},
		{Word: "天行", Code: "ajab", Frequency: 50},
		{Word: "行天", Code: "abaj", Frequency: 30},
	}, out)

	require.Len(t, failed, 2)
	assert.ErrorIs(t, failed["错"], chai.ErrPhonetic)
	assert.ErrorIs(t, failed["天未"], chai.ErrConfiguration)
}

func TestEncodeWord(t *testing.T) {
	cfg := testConfig()
	cfg.Encoder.WordRules = []config.WordRule{
		{MinLength: 3, Formula: "AaBaZz"},
		{MinLength: 2, Formula: "AaAzZaZz"},
	}
	a := newAssembler(t, cfg)

	codes := map[string][]assemble.CharCode{
		"天": {{Char: "天", Pinyin: "tian1", Code: "ajt", Importance: 100}},
		"行": {
			{Char: "行", Pinyin: "xing2", Code: "abx", Importance: 30},
			{Char: "行", Pinyin: "hang2", Code: "abh", Importance: 70},
		},
	}

	// without usable pinyin the more important reading wins
	code, err := a.EncodeWord(chai.DictEntry{Word: "天行"}, codes)
	require.NoError(t, err)
	assert.Equal(t, "atah", code)

	// tone marks match tone digits
	code, err = a.EncodeWord(chai.DictEntry{Word: "天行", Pinyin: []string{"tiān", "xíng"}}, codes)
	require.NoError(t, err)
	assert.Equal(t, "atax", code)

	code, err = a.EncodeWord(chai.DictEntry{Word: "天天行", Pinyin: []string{"tian1", "tian1", "xing2"}}, codes)
	require.NoError(t, err)
	assert.Equal(t, "aax", code)

	_, err = a.EncodeWord(chai.DictEntry{Word: "天"}, codes)
	assert.ErrorIs(t, err, chai.ErrConfiguration)
}

func TestSortEntries(t *testing.T) {
	entries := []chai.CodeEntry{
		{Word: "b", Code: "x", Frequency: 1},
		{Word: "a", Code: "y", Frequency: 1},
		{Word: "a", Code: "x", Frequency: 1},
		{Word: "c", Code: "z", Frequency: 9},
	}
	assemble.SortEntries(entries)
	assert.Equal(t, []chai.CodeEntry{
		{Word: "c", Code: "z", Frequency: 9},
		{Word: "a", Code: "x", Frequency: 1},
		{Word: "a", Code: "y", Frequency: 1},
		{Word: "b", Code: "x", Frequency: 1},
	}, entries)
}

func TestReadDictionary(t *testing.T) {
	input := "# comment\n天\ttian1\t1000\n\n天行\ttian1,xing2\t50\r\n行\txing2,hang2\n"
	entries, err := assemble.ReadDictionary(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []chai.DictEntry{
		{Word: "天", Pinyin: []string{"tian1"}, Frequency: 1000},
		{Word: "天行", Pinyin: []string{"tian1", "xing2"}, Frequency: 50},
		{Word: "行", Pinyin: []string{"xing2", "hang2"}},
	}, entries)

	_, err = assemble.ReadDictionary(strings.NewReader("天\ttian1\tmany\n"))
	assert.ErrorContains(t, err, "line 1")
	_, err = assemble.ReadDictionary(strings.NewReader("天\n"))
	assert.Error(t, err)
}

func TestWriteDictionary(t *testing.T) {
	var buf bytes.Buffer
	err := assemble.WriteDictionary(&buf, []chai.DictEntry{
		{Word: "行", Pinyin: []string{"xing2", "hang2"}, Frequency: 5},
		{Word: "天", Pinyin: []string{"tian1"}, Frequency: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, "天\ttian1\t10\n行\txing2,hang2\t5\n", buf.String())
}

func TestWriteCodebook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, assemble.WriteCodebook(&buf, []chai.CodeEntry{{Word: "天", Code: "ajt", Frequency: 1000}}))
	assert.Equal(t, "天\tajt\t1000\n", buf.String())
}

func TestLoadDictionary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("天\ttian1\t1000\n"), 0o644))

	entries, err := assemble.LoadDictionary(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
