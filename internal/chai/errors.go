package chai

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of the decomposition engine.
type Kind string

const (
	KindConfiguration Kind = "configuration" // arity, override indices, missing key mapping
	KindExhausted     Kind = "exhausted"     // no root partition covers every stroke
	KindPhonetic      Kind = "phonetic"      // syllable not covered by the rule tables
	KindCyclic        Kind = "cyclic"        // compound operand graph has a cycle
)

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrExhausted     = errors.New("no valid decomposition")
	ErrPhonetic      = errors.New("unrecognized syllable")
	ErrCyclic        = errors.New("cyclic repertoire")
)

// Error is the structured error reported for a single character or syllable.
type Error struct {
	Kind     Kind
	Char     string
	Syllable string
	Err      error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Syllable != "" && e.Char != "":
		return fmt.Sprintf("%s %q (%s): %s", e.Char, e.Syllable, e.Kind, msg)
	case e.Syllable != "":
		return fmt.Sprintf("%q (%s): %s", e.Syllable, e.Kind, msg)
	case e.Char != "":
		return fmt.Sprintf("%s (%s): %s", e.Char, e.Kind, msg)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConfiguration:
		return e.Kind == KindConfiguration
	case ErrExhausted:
		return e.Kind == KindExhausted
	case ErrPhonetic:
		return e.Kind == KindPhonetic
	case ErrCyclic:
		return e.Kind == KindCyclic
	}
	return false
}

// Configurationf builds a KindConfiguration error for char.
func Configurationf(char, format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Char: char, Err: fmt.Errorf(format, args...)}
}

// Exhausted reports that no partition of char's strokes exists.
func Exhausted(char string) *Error {
	return &Error{Kind: KindExhausted, Char: char, Err: ErrExhausted}
}

// Phonetic reports an unrecognized syllable of char.
func Phonetic(char, syllable string) *Error {
	return &Error{Kind: KindPhonetic, Char: char, Syllable: syllable, Err: ErrPhonetic}
}

// Cyclic reports a cycle found while resolving char; path lists the cycle.
func Cyclic(char string, path []string) *Error {
	return &Error{Kind: KindCyclic, Char: char, Err: fmt.Errorf("%w: %v", ErrCyclic, path)}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
