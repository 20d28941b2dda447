// Package chai provides the types shared by every stage of the
// character-decomposition engine.
package chai

// Tone is a Mandarin tone number; 5 is the neutral tone.
type Tone int

const (
	ToneUnknown Tone = 0
	Tone1       Tone = 1 // high level
	Tone2       Tone = 2 // rising
	Tone3       Tone = 3 // dipping
	Tone4       Tone = 4 // falling
	Tone5       Tone = 5 // neutral
)

// Reading is one romanized pronunciation of a character, e.g. "you3",
// with its relative importance in percent.
type Reading struct {
	Pinyin     string `json:"pinyin" yaml:"pinyin"`
	Importance int    `json:"importance" yaml:"importance"`
}

// DictEntry is a word of the input dictionary.
type DictEntry struct {
	Word      string   `json:"word"`
	Pinyin    []string `json:"pinyin"`
	Frequency int64    `json:"frequency"`
}

// CodeEntry is one line of the assembled codebook.
type CodeEntry struct {
	Word      string `json:"word"`
	Code      string `json:"code"`
	Frequency int64  `json:"frequency"`
}

// Slots maps a phonetic slot name (声, 韵, 调, ...) to an element identifier.
type Slots map[string]string
