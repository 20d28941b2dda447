package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/pinyin"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/repertoire"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/scheme"
)

// Element names usable in char rules besides the numbered roots.
const (
	LastRoot   = "根末"
	rootPrefix = "根"
)

var phoneticElements = map[string]bool{
	pinyin.SlotInitial: true,
	pinyin.SlotFinal:   true,
	pinyin.SlotTone:    true,
	pinyin.SlotFirst:   true,
	pinyin.SlotLast:    true,
}

// RootIndex parses a char rule element naming a root: 根1 is 0, 根末 is -1.
// ok is false for other elements.
func RootIndex(element string) (index int, ok bool) {
	if element == LastRoot {
		return -1, true
	}
	n, found := strings.CutPrefix(element, rootPrefix)
	if !found {
		return 0, false
	}
	i, err := strconv.Atoi(n)
	if err != nil || i < 1 {
		return 0, false
	}
	return i - 1, true
}

// Validate reports every problem of c at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Info.Name == "" {
		errs = append(errs, errors.New("info.name is required"))
	}
	if c.Data.Characters != "" {
		if _, err := repertoire.ParseSet(c.Data.Characters); err != nil {
			errs = append(errs, fmt.Errorf("data.characters: %w", err))
		}
	}

	for alias, primary := range c.Form.Grouping {
		if _, ok := c.Form.Mapping[primary]; !ok {
			errs = append(errs, fmt.Errorf("form.grouping: %s groups under %s, which has no key", alias, primary))
		}
	}
	if _, err := scheme.ParseCriteria(c.Form.Selector); err != nil {
		errs = append(errs, fmt.Errorf("form.selector: %w", err))
	}

	if _, err := c.PhoneticAnalyzer(); err != nil {
		errs = append(errs, fmt.Errorf("pronunciation: %w", err))
	}

	if c.Encoder.MaxLength < 1 {
		errs = append(errs, fmt.Errorf("encoder.max_length must be positive, got %d", c.Encoder.MaxLength))
	}
	if len(c.Encoder.CharRules) == 0 {
		errs = append(errs, errors.New("encoder.char_rules is empty"))
	}
	for i, r := range c.Encoder.CharRules {
		if len(r.Elements) == 0 {
			errs = append(errs, fmt.Errorf("encoder.char_rules[%d] has no elements", i))
		}
		for _, e := range r.Elements {
			if _, ok := RootIndex(e); !ok && !phoneticElements[e] {
				errs = append(errs, fmt.Errorf("encoder.char_rules[%d]: unknown element %q", i, e))
			}
		}
	}
	for i, r := range c.Encoder.WordRules {
		if err := ValidateFormula(r.Formula); err != nil {
			errs = append(errs, fmt.Errorf("encoder.word_rules[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

// ValidateFormula checks that formula is a non-empty sequence of
// character/position letter pairs.
func ValidateFormula(formula string) error {
	if formula == "" || len(formula)%2 != 0 {
		return fmt.Errorf("formula %q must be letter pairs", formula)
	}
	for i := 0; i < len(formula); i += 2 {
		if c := formula[i]; c < 'A' || c > 'Z' {
			return fmt.Errorf("formula %q: %q is not a character index", formula, c)
		}
		if p := formula[i+1]; p < 'a' || p > 'z' {
			return fmt.Errorf("formula %q: %q is not a code position", formula, p)
		}
	}
	return nil
}
