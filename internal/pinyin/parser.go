// Package pinyin splits romanized syllables into phonetic elements through
// configurable rule tables.
package pinyin

import (
	"strconv"
	"strings"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
)

// ZeroInitial stands for the missing initial of syllables such as "an" and
// "you".
const ZeroInitial = "0"

// Syllable is a syllable split into its parts. Final is spelled in full:
// y/w restored to i/u/ü, abbreviated finals expanded and u after j/q/x
// written as ü.
type Syllable struct {
	Raw     string    // as given, e.g. "you3"
	Plain   string    // lower case without tone, e.g. "you"
	Initial string    // e.g. "zh", or ZeroInitial
	Final   string    // e.g. "iou"
	Tone    chai.Tone // 1-5, or ToneUnknown for a digit out of range
}

// Parse splits a syllable written with a trailing tone digit ("you3") or
// with tone marks ("yǒu"). A syllable without either is in the neutral tone.
// The parts are not checked against any table.
func Parse(raw string) Syllable {
	s := Syllable{Raw: raw}
	text := strings.ToLower(strings.TrimSpace(raw))

	s.Tone, text = extractTone(text)
	text = strings.ReplaceAll(text, "v", "ü")
	s.Plain = text
	s.Initial, s.Final = splitInitial(text)
	return s
}

// extractTone removes a trailing tone digit or the tone marks of pinyin.
// A digit outside 1-5 gives ToneUnknown, which no tone rule matches.
func extractTone(pinyin string) (chai.Tone, string) {
	if n := len(pinyin); n > 0 && pinyin[n-1] >= '0' && pinyin[n-1] <= '9' {
		d, _ := strconv.Atoi(pinyin[n-1:])
		tone := chai.Tone(d)
		if tone < chai.Tone1 || tone > chai.Tone5 {
			tone = chai.ToneUnknown
		}
		return tone, pinyin[:n-1]
	}

	tone := chai.ToneUnknown
	var result strings.Builder
	for _, r := range pinyin {
		if mark, ok := toneMarks[r]; ok {
			result.WriteRune(mark.base)
			tone = mark.tone
		} else {
			result.WriteRune(r)
		}
	}
	if tone == chai.ToneUnknown {
		tone = chai.Tone5
	}
	return tone, result.String()
}

var toneMarks = map[rune]struct {
	base rune
	tone chai.Tone
}{
	'ā': {'a', chai.Tone1}, 'á': {'a', chai.Tone2}, 'ǎ': {'a', chai.Tone3}, 'à': {'a', chai.Tone4},
	'ē': {'e', chai.Tone1}, 'é': {'e', chai.Tone2}, 'ě': {'e', chai.Tone3}, 'è': {'e', chai.Tone4},
	'ī': {'i', chai.Tone1}, 'í': {'i', chai.Tone2}, 'ǐ': {'i', chai.Tone3}, 'ì': {'i', chai.Tone4},
	'ō': {'o', chai.Tone1}, 'ó': {'o', chai.Tone2}, 'ǒ': {'o', chai.Tone3}, 'ò': {'o', chai.Tone4},
	'ū': {'u', chai.Tone1}, 'ú': {'u', chai.Tone2}, 'ǔ': {'u', chai.Tone3}, 'ù': {'u', chai.Tone4},
	'ǖ': {'ü', chai.Tone1}, 'ǘ': {'ü', chai.Tone2}, 'ǚ': {'ü', chai.Tone3}, 'ǜ': {'ü', chai.Tone4},
	'ḿ': {'m', chai.Tone2}, 'ń': {'n', chai.Tone2}, 'ň': {'n', chai.Tone3}, 'ǹ': {'n', chai.Tone4},
}

// syllabic nasals of interjections such as 嗯 and 呣
var nasals = map[string]bool{"m": true, "n": true, "ng": true}

// splitInitial separates the initial and spells the final in full.
func splitInitial(pinyin string) (initial, final string) {
	switch {
	case pinyin == "":
		return ZeroInitial, ""
	case nasals[pinyin]:
		return ZeroInitial, pinyin
	case pinyin == "hm", pinyin == "hng":
		return "h", pinyin[1:]
	case strings.HasPrefix(pinyin, "y"):
		return ZeroInitial, restoreY(pinyin[1:])
	case strings.HasPrefix(pinyin, "w"):
		return ZeroInitial, restoreW(pinyin[1:])
	}

	for _, cc := range []string{"zh", "ch", "sh"} {
		if strings.HasPrefix(pinyin, cc) {
			return cc, expandFinal(cc, pinyin[2:])
		}
	}
	if isConsonant(pinyin[0]) {
		return pinyin[:1], expandFinal(pinyin[:1], pinyin[1:])
	}
	return ZeroInitial, pinyin
}

// restoreY spells the final of a syllable written with y.
func restoreY(rest string) string {
	switch {
	case strings.HasPrefix(rest, "u"), strings.HasPrefix(rest, "ü"):
		// yu yue yuan yun
		_, tail, _ := strings.Cut(strings.Replace(rest, "ü", "u", 1), "u")
		return "ü" + tail
	case strings.HasPrefix(rest, "i"):
		// yi yin ying
		return rest
	}
	// ya ye yao you yan yang yong
	return "i" + rest
}

// restoreW spells the final of a syllable written with w.
func restoreW(rest string) string {
	if strings.HasPrefix(rest, "u") {
		return rest
	}
	final := "u" + rest
	switch final {
	case "ui":
		return "uei"
	case "un":
		return "uen"
	}
	return final
}

// expandFinal undoes the abbreviations used after an initial.
func expandFinal(initial, rest string) string {
	if initial == "j" || initial == "q" || initial == "x" {
		if strings.HasPrefix(rest, "u") {
			rest = "ü" + rest[1:]
		}
	}
	switch rest {
	case "iu":
		return "iou"
	case "ui":
		return "uei"
	case "un":
		return "uen"
	}
	return rest
}

func isConsonant(c byte) bool {
	return strings.IndexByte("bpmfdtnlgkhjqxrzcs", c) >= 0
}
