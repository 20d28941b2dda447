package config

import (
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/pinyin"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/scheme"
)

// applyDefaults fills the fields a document may leave out.
func (c *Config) applyDefaults() {
	if c.Form.Mapping == nil {
		c.Form.Mapping = map[string]string{}
	}
	if len(c.Form.Selector) == 0 {
		c.Form.Selector = append([]string(nil), scheme.DefaultSelector...)
	}
	if c.Pronunciation.Analyzer == "" {
		c.Pronunciation.Analyzer = pinyin.Standard
	}
	if len(c.Pronunciation.Tables) == 0 {
		c.Pronunciation.Tables = append([]string(nil), pinyin.DefaultOrder...)
	}
}

// Default returns the template written by `chai init`: the five stroke
// classes and a few common roots on the letter keys, with codes of up to
// four letters.
func Default() *Config {
	return &Config{
		Info: Info{
			Name:        "chai",
			Version:     "0.1.0",
			Description: "shape-based scheme template",
		},
		Data: Data{
			Repertoire: "repertoire.json",
			Dictionary: "dictionary.txt",
			Characters: "general",
		},
		Form: Form{
			Mapping: map[string]string{
				"1": "a", "2": "b", "3": "c", "4": "d", "5": "e",
				"一": "f", "二": "g", "十": "h", "人": "i", "大": "j",
				"口": "k", "日": "l", "月": "m", "木": "n", "土": "o",
			},
			Grouping: map[string]string{"亻": "人"},
			Degenerator: Degenerator{Feature: map[string]string{
				string(glyph.Ti): string(glyph.Heng),
				string(glyph.Na): string(glyph.Dian),
			}},
			Selector: append([]string(nil), scheme.DefaultSelector...),
		},
		Pronunciation: Pronunciation{
			Analyzer: pinyin.Standard,
			Tables:   append([]string(nil), pinyin.DefaultOrder...),
			Mapping: map[string]string{
				"声母-0": "a", "声母-b": "b", "声母-p": "p", "声母-m": "m",
			},
		},
		Encoder: Encoder{
			MaxLength: 4,
			CharRules: []CharRule{
				{MinRoots: 4, Elements: []string{"根1", "根2", "根3", LastRoot}},
				{MinRoots: 3, Elements: []string{"根1", "根2", "根3"}},
				{MinRoots: 1, Elements: []string{"根1", "根2"}},
			},
			WordRules: []WordRule{
				{MinLength: 4, Formula: "AaBaCaZa"},
				{MinLength: 3, Formula: "AaBaZaZb"},
				{MinLength: 2, Formula: "AaAbBaBb"},
			},
		},
	}
}
