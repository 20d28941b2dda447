package pinyin

import (
	"fmt"
	"unicode/utf8"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
)

// Slot names.
const (
	SlotInitial = "声"
	SlotFinal   = "韵"
	SlotTone    = "调"
	SlotFirst   = "首"
	SlotLast    = "末"
)

// Analyzer names.
const (
	Standard           = "standard"
	InitialFinalLetter = "initial-final-letter"
)

// Analyzer splits every reading of a character into slots. Analyzers are
// stateless once built and safe for concurrent use.
type Analyzer interface {
	Name() string
	Analyze(char string, syllables []string) ([]chai.Slots, error)
}

// New builds the named analyzer over the merged rule table.
func New(name string, table Table) (Analyzer, error) {
	switch name {
	case "", Standard:
		return &standard{table: table}, nil
	case InitialFinalLetter:
		return letters{}, nil
	}
	return nil, fmt.Errorf("unknown phonetic analyzer %q", name)
}

// standard fills 声, 韵 and 调 from the rule table.
type standard struct {
	table Table
}

func (a *standard) Name() string { return Standard }

func (a *standard) Analyze(char string, syllables []string) ([]chai.Slots, error) {
	out := make([]chai.Slots, 0, len(syllables))
	for _, raw := range syllables {
		slots, err := a.analyze(raw)
		if err != nil {
			return nil, &chai.Error{Kind: chai.KindPhonetic, Char: char, Syllable: raw, Err: err}
		}
		out = append(out, slots)
	}
	return out, nil
}

func (a *standard) analyze(raw string) (chai.Slots, error) {
	s := Parse(raw)
	initial, ok := a.table[InitialKey(s.Initial)]
	if !ok {
		return nil, fmt.Errorf("%w: initial %q", chai.ErrPhonetic, s.Initial)
	}
	final, ok := a.table[ContextFinalKey(s.Initial, s.Final)]
	if !ok {
		final, ok = a.table[FinalKey(s.Final)]
	}
	if !ok {
		return nil, fmt.Errorf("%w: final %q", chai.ErrPhonetic, s.Final)
	}
	tone, ok := a.table[ToneKey(int(s.Tone))]
	if !ok {
		return nil, fmt.Errorf("%w: tone %d", chai.ErrPhonetic, s.Tone)
	}
	return chai.Slots{SlotInitial: initial, SlotFinal: final, SlotTone: tone}, nil
}

// letters fills 首 and 末 with the first and last letter of the toneless
// syllable, ü written as v.
type letters struct{}

func (letters) Name() string { return InitialFinalLetter }

func (letters) Analyze(char string, syllables []string) ([]chai.Slots, error) {
	out := make([]chai.Slots, 0, len(syllables))
	for _, raw := range syllables {
		s := Parse(raw)
		if !isLetters(s.Plain) {
			return nil, chai.Phonetic(char, raw)
		}
		first, _ := utf8.DecodeRuneInString(s.Plain)
		last, _ := utf8.DecodeLastRuneInString(s.Plain)
		out = append(out, chai.Slots{SlotFirst: letter(first), SlotLast: letter(last)})
	}
	return out, nil
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && r != 'ü' && r != 'ê' {
			return false
		}
	}
	return true
}

func letter(r rune) string {
	switch r {
	case 'ü':
		return "v"
	case 'ê':
		return "e"
	}
	return string(r)
}
