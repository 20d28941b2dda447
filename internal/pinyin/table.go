package pinyin

import (
	"fmt"
	"maps"
	"strconv"
)

// Table maps rule keys to phonetic element identifiers. Keys of the finals
// table may carry the initial as context (ContextFinalKey); such keys win
// over the bare final.
type Table map[string]string

// Names of the built-in rule tables.
const (
	Initials = "initials"
	Finals   = "finals"
	Tones    = "tones"
)

// DefaultOrder is the merge order used when none is configured.
var DefaultOrder = []string{Initials, Finals, Tones}

var (
	initialList = []string{
		"b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h",
		"j", "q", "x", "zh", "ch", "sh", "r", "z", "c", "s", ZeroInitial,
	}
	finalList = []string{
		"a", "o", "e", "ê", "er", "ai", "ei", "ao", "ou", "an", "en", "ang", "eng", "ong",
		"i", "ia", "ie", "iao", "iou", "ian", "in", "iang", "ing", "iong",
		"u", "ua", "uo", "uai", "uei", "uan", "uen", "uang", "ueng",
		"ü", "üe", "üan", "ün",
		"m", "n", "ng",
	}
)

// DefaultTables returns the standard rule tables keyed by name. Every table
// uses distinct key prefixes, so merging them never drops a rule.
func DefaultTables() map[string]Table {
	initials := make(Table, len(initialList))
	for _, i := range initialList {
		initials["声母|"+i] = "声母-" + i
	}
	finals := make(Table, len(finalList))
	for _, f := range finalList {
		finals["韵母|"+f] = "韵母-" + f
	}
	tones := make(Table, 5)
	for t := 1; t <= 5; t++ {
		d := strconv.Itoa(t)
		tones["声调|"+d] = "声调-" + d
	}
	return map[string]Table{Initials: initials, Finals: finals, Tones: tones}
}

// Merge combines tables in order; a later table overrides an earlier one on
// the same key.
func Merge(tables ...Table) Table {
	out := make(Table)
	for _, t := range tables {
		maps.Copy(out, t)
	}
	return out
}

// Build merges the named tables from available in the given order, then
// applies overrides.
func Build(available map[string]Table, order []string, overrides Table) (Table, error) {
	if len(order) == 0 {
		order = DefaultOrder
	}
	tables := make([]Table, 0, len(order)+1)
	for _, name := range order {
		t, ok := available[name]
		if !ok {
			return nil, fmt.Errorf("unknown rule table %q", name)
		}
		tables = append(tables, t)
	}
	return Merge(append(tables, overrides)...), nil
}

// InitialKey, FinalKey and ToneKey build the lookup keys of each slot.
func InitialKey(initial string) string { return "声母|" + initial }

func FinalKey(final string) string { return "韵母|" + final }

func ToneKey(tone int) string { return "声调|" + strconv.Itoa(tone) }

// ContextFinalKey is the final key narrowed to one initial.
func ContextFinalKey(initial, final string) string { return "韵母|" + initial + "|" + final }
