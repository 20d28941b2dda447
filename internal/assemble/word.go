package assemble

import (
	"strings"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/config"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/pinyin"
)

// wordRule picks the first word rule that fits a word of n characters.
func (a *Assembler) wordRule(n int) (config.WordRule, bool) {
	for _, r := range a.cfg.Encoder.WordRules {
		if r.MinLength <= n {
			return r, true
		}
	}
	return config.WordRule{}, false
}

// EncodeWord builds the code of a dictionary word from the codes of its
// characters. For each character the code of the reading the word uses is
// taken; when the word's pinyin does not decide, the most important
// reading's code is.
func (a *Assembler) EncodeWord(d chai.DictEntry, codes map[string][]CharCode) (string, error) {
	chars := []rune(d.Word)
	rule, ok := a.wordRule(len(chars))
	if !ok {
		return "", chai.Configurationf(d.Word, "no word rule for %d characters", len(chars))
	}

	charCodes := make([][]rune, len(chars))
	for i, r := range chars {
		cc, ok := codes[string(r)]
		if !ok || len(cc) == 0 {
			return "", chai.Configurationf(d.Word, "character %c has no code", r)
		}
		syllable := ""
		if len(d.Pinyin) == len(chars) {
			syllable = d.Pinyin[i]
		}
		charCodes[i] = []rune(pick(cc, syllable).Code)
	}

	var b strings.Builder
	f := rule.Formula
	for i := 0; i+1 < len(f); i += 2 {
		ci := index(f[i], 'A', 'Z', len(charCodes))
		if ci < 0 {
			continue
		}
		code := charCodes[ci]
		pi := index(f[i+1], 'a', 'z', len(code))
		if pi < 0 {
			continue
		}
		b.WriteRune(code[pi])
	}
	return truncate(b.String(), a.cfg.Encoder.MaxLength), nil
}

// index turns a formula letter into a position in a sequence of length n:
// first is 0, last is n-1. Out of range is -1.
func index(letter, first, last byte, n int) int {
	i := int(letter - first)
	if letter == last {
		i = n - 1
	}
	if i < 0 || i >= n {
		return -1
	}
	return i
}

// pick returns the code of the reading matching syllable, or else the most
// important one, earliest first on ties.
func pick(cc []CharCode, syllable string) CharCode {
	if syllable != "" {
		want := pinyin.Parse(syllable)
		for _, c := range cc {
			got := pinyin.Parse(c.Pinyin)
			if got.Plain == want.Plain && got.Tone == want.Tone {
				return c
			}
		}
	}
	best := cc[0]
	for _, c := range cc[1:] {
		if c.Importance > best.Importance {
			best = c
		}
	}
	return best
}
