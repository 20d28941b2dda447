package pinyin

import (
	gopinyin "github.com/mozillazg/go-pinyin"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
)

// Source supplies readings for characters the repertoire has none for.
type Source struct {
	args gopinyin.Args
}

// NewSource creates a source returning every reading with a tone digit.
func NewSource() *Source {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone3 // Returns tone digits: zhong1
	args.Heteronym = true       // Return all possible readings
	return &Source{args: args}
}

// Readings returns the readings of char, the first one most important.
// Characters go-pinyin does not know yield nil.
func (s *Source) Readings(char string) []chai.Reading {
	result := gopinyin.Pinyin(char, s.args)
	if len(result) == 0 || len(result[0]) == 0 {
		return nil
	}
	readings := make([]chai.Reading, len(result[0]))
	for i, py := range result[0] {
		importance := 100
		if i > 0 {
			importance = 100 / (i + 1)
		}
		readings[i] = chai.Reading{Pinyin: py, Importance: importance}
	}
	return readings
}

// Lookup returns the readings recorded for char, falling back to s.
func (s *Source) Lookup(recorded []chai.Reading, char string) []chai.Reading {
	if len(recorded) > 0 {
		return recorded
	}
	return s.Readings(char)
}
