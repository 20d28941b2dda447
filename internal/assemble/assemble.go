// Package assemble turns character decompositions and readings into the
// codes of a scheme, for single characters and dictionary words.
package assemble

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/config"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/pinyin"
)

// Character is what the assembler needs to know about one character: its
// chosen roots and its readings.
type Character struct {
	Char     string
	Roots    []string
	Readings []chai.Reading
}

// CharCode is the code of one reading of a character.
type CharCode struct {
	Char       string
	Pinyin     string
	Code       string
	Importance int
}

// Assembler applies the encoder rules of one config. It holds no state
// between calls and is safe for concurrent use.
type Assembler struct {
	cfg      *config.Config
	phonetic pinyin.Analyzer
}

// New builds an assembler for cfg.
func New(cfg *config.Config) (*Assembler, error) {
	phonetic, err := cfg.PhoneticAnalyzer()
	if err != nil {
		return nil, fmt.Errorf("building phonetic analyzer: %w", err)
	}
	return &Assembler{cfg: cfg, phonetic: phonetic}, nil
}

// Elements maps roots to their primary roots and merges runs of the same
// element.
func (a *Assembler) Elements(roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, r := range roots {
		p := a.cfg.Primary(r)
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

// rule picks the first char rule that fits a character of n roots.
func (a *Assembler) rule(n int) (config.CharRule, bool) {
	for _, r := range a.cfg.Encoder.CharRules {
		if r.MinRoots <= n {
			return r, true
		}
	}
	return config.CharRule{}, false
}

// EncodeChar returns one code per reading of c. Characters whose rule uses
// no phonetic element get a single code unless they have several readings.
func (a *Assembler) EncodeChar(c Character) ([]CharCode, error) {
	elements := a.Elements(c.Roots)
	rule, ok := a.rule(len(elements))
	if !ok {
		return nil, chai.Configurationf(c.Char, "no char rule for %d roots", len(elements))
	}

	readings := c.Readings
	var slots []chai.Slots
	if usesPhonetics(rule) {
		if len(readings) == 0 {
			return nil, chai.Phonetic(c.Char, "")
		}
		syllables := make([]string, len(readings))
		for i, r := range readings {
			syllables[i] = r.Pinyin
		}
		var err error
		if slots, err = a.phonetic.Analyze(c.Char, syllables); err != nil {
			return nil, err
		}
	} else if len(readings) == 0 {
		readings = []chai.Reading{{Importance: 100}}
	}

	out := make([]CharCode, 0, len(readings))
	for i, r := range readings {
		var s chai.Slots
		if slots != nil {
			s = slots[i]
		}
		code, err := a.code(c.Char, rule, elements, s)
		if err != nil {
			return nil, err
		}
		out = append(out, CharCode{Char: c.Char, Pinyin: r.Pinyin, Code: code, Importance: r.Importance})
	}
	return out, nil
}

func usesPhonetics(rule config.CharRule) bool {
	for _, e := range rule.Elements {
		if _, ok := config.RootIndex(e); !ok {
			return true
		}
	}
	return false
}

// code maps the rule's elements to keys. Root elements past the last root
// are skipped.
func (a *Assembler) code(char string, rule config.CharRule, roots []string, slots chai.Slots) (string, error) {
	var b strings.Builder
	for _, e := range rule.Elements {
		element := ""
		if i, ok := config.RootIndex(e); ok {
			if i < 0 {
				i = len(roots) - 1
			}
			if i >= len(roots) {
				continue
			}
			element = roots[i]
		} else {
			v, ok := slots[e]
			if !ok {
				return "", chai.Configurationf(char, "analyzer %s has no slot %s", a.phonetic.Name(), e)
			}
			element = v
		}
		key, ok := a.cfg.Key(element)
		if !ok {
			return "", chai.Configurationf(char, "no key for element %s", element)
		}
		b.WriteString(key)
	}
	return truncate(b.String(), a.cfg.Encoder.MaxLength), nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Assemble encodes every character, then every multi-character word of
// dict. Failures are collected per character or word and never stop the
// run. The result is sorted by descending frequency, then word, then code.
func (a *Assembler) Assemble(chars []Character, dict []chai.DictEntry) ([]chai.CodeEntry, map[string]error) {
	failed := make(map[string]error)

	charFreq := make(map[string]int64)
	for _, d := range dict {
		if utf8.RuneCountInString(d.Word) == 1 {
			charFreq[d.Word] += d.Frequency
		}
	}

	codes := make(map[string][]CharCode, len(chars))
	var out []chai.CodeEntry
	for _, c := range chars {
		cc, err := a.EncodeChar(c)
		if err != nil {
			failed[c.Char] = err
			continue
		}
		codes[c.Char] = cc
		out = append(out, charEntries(cc, charFreq[c.Char])...)
	}

	for _, d := range dict {
		if utf8.RuneCountInString(d.Word) < 2 || len(a.cfg.Encoder.WordRules) == 0 {
			continue
		}
		code, err := a.EncodeWord(d, codes)
		if err != nil {
			failed[d.Word] = err
			continue
		}
		out = append(out, chai.CodeEntry{Word: d.Word, Code: code, Frequency: d.Frequency})
	}

	SortEntries(out)
	return out, failed
}

// charEntries merges readings that share a code, splitting freq by reading
// importance.
func charEntries(cc []CharCode, freq int64) []chai.CodeEntry {
	weight := make(map[string]int)
	var order []string
	for _, c := range cc {
		if _, ok := weight[c.Code]; !ok {
			order = append(order, c.Code)
		}
		weight[c.Code] += c.Importance
	}
	out := make([]chai.CodeEntry, 0, len(order))
	for _, code := range order {
		out = append(out, chai.CodeEntry{Word: cc[0].Char, Code: code, Frequency: freq * int64(weight[code]) / 100})
	}
	return out
}

// SortEntries orders entries by descending frequency, then word, then code.
func SortEntries(entries []chai.CodeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if a.Word != b.Word {
			return a.Word < b.Word
		}
		return a.Code < b.Code
	})
}
