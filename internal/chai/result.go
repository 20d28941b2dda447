package chai

import "errors"

// Result is the tagged value that crosses the worker boundary.
type Result[T any] struct {
	OK    bool         `json:"ok"`
	Value T            `json:"value,omitempty"`
	Error *ResultError `json:"error,omitempty"`
}

// ResultError is the serializable form of a failure.
type ResultError struct {
	Kind     Kind   `json:"kind,omitempty"`
	Char     string `json:"char,omitempty"`
	Syllable string `json:"syllable,omitempty"`
	Message  string `json:"message"`
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{OK: true, Value: v}
}

// Fail wraps err, keeping the structured fields of an *Error.
func Fail[T any](err error) Result[T] {
	re := &ResultError{Message: err.Error()}
	var ce *Error
	if errors.As(err, &ce) {
		re.Kind = ce.Kind
		re.Char = ce.Char
		re.Syllable = ce.Syllable
	}
	return Result[T]{Error: re}
}

// From builds a Result from a conventional (value, error) pair.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}
