package repertoire

import (
	"fmt"
	"unicode/utf8"
)

// Set names a character-set tier. Tiers are nested: every character in a
// tier is also in the tiers after it, except gb2312 which sits beside
// minimal inside general.
type Set string

const (
	Minimal       Set = "minimal"
	GB2312        Set = "gb2312"
	General       Set = "general"
	BasicSet      Set = "basic"
	Extended      Set = "extended"
	Supplementary Set = "supplementary"
	Maximal       Set = "maximal"
)

// Sets lists every tier from smallest to largest.
var Sets = []Set{Minimal, GB2312, General, BasicSet, Extended, Supplementary, Maximal}

// code point ranges of the CJK unified ideograph blocks
const (
	cjkStart  = 0x4E00
	cjkEnd    = 0x9FFF
	extAStart = 0x3400
	extAEnd   = 0x4DBF
	extBStart = 0x20000
	extLast   = 0x323AF
)

// ParseSet validates a tier name.
func ParseSet(s string) (Set, error) {
	for _, set := range Sets {
		if string(set) == s {
			return set, nil
		}
	}
	return "", fmt.Errorf("unknown character set %q", s)
}

// Contains reports whether e belongs to the tier.
func (s Set) Contains(e *Entry) bool {
	switch s {
	case Minimal:
		return e.GB2312 && e.TYGF > 0
	case GB2312:
		return e.GB2312
	case General:
		return e.GB2312 || e.TYGF > 0
	case BasicSet:
		return General.Contains(e) || inRange(e.Name, cjkStart, cjkEnd)
	case Extended:
		return BasicSet.Contains(e) || inRange(e.Name, extAStart, extAEnd)
	case Supplementary:
		return Extended.Contains(e) || inRange(e.Name, extBStart, extLast)
	case Maximal:
		return true
	}
	return false
}

// inRange reports whether name is a single code point in [lo, hi].
func inRange(name string, lo, hi rune) bool {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 || size != len(name) {
		return false
	}
	return r >= lo && r <= hi
}

// Filter returns the names in the tier, in code point order.
func (r *Repertoire) Filter(s Set) []string {
	var names []string
	for _, n := range r.Names() {
		if s.Contains(r.entries[n]) {
			names = append(names, n)
		}
	}
	return names
}

// Count returns how many entries fall in each tier.
func (r *Repertoire) Count() map[Set]int {
	counts := make(map[Set]int, len(Sets))
	for _, e := range r.entries {
		for _, s := range Sets {
			if s.Contains(e) {
				counts[s]++
			}
		}
	}
	return counts
}
