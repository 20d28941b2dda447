package config

import (
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/glyph"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/pinyin"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/scheme"
)

// SchemeOptions derives the analyzer settings of the form half.
func (c *Config) SchemeOptions() scheme.Options {
	opts := scheme.Options{
		Roots:          c.Roots(),
		Selector:       c.Form.Selector,
		StrictTieBreak: c.Form.StrictTieBreak,
	}
	if len(c.Form.Degenerator.Feature) > 0 {
		opts.Degenerator = make(scheme.Degenerator, len(c.Form.Degenerator.Feature))
		for from, to := range c.Form.Degenerator.Feature {
			opts.Degenerator[glyph.Feature(from)] = glyph.Feature(to)
		}
	}
	if len(c.Form.Classifier) > 0 {
		opts.Classifier = make(map[glyph.Feature]string, len(glyph.DefaultClassifier)+len(c.Form.Classifier))
		for f, class := range glyph.DefaultClassifier {
			opts.Classifier[f] = class
		}
		for f, class := range c.Form.Classifier {
			opts.Classifier[glyph.Feature(f)] = class
		}
	}
	return opts
}

// PhoneticAnalyzer builds the configured analyzer over the built-in rule
// tables merged in the configured order, overrides last.
func (c *Config) PhoneticAnalyzer() (pinyin.Analyzer, error) {
	table, err := pinyin.Build(pinyin.DefaultTables(), c.Pronunciation.Tables, pinyin.Table(c.Pronunciation.Overrides))
	if err != nil {
		return nil, err
	}
	return pinyin.New(c.Pronunciation.Analyzer, table)
}
