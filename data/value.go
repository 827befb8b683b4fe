package data

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/b0tShaman/neuro-core/ml"
)

var (
	// ErrEmptyInput is the same value as ml.ErrEmptyInput.
	ErrEmptyInput = ml.ErrEmptyInput
	// ErrNonNumeric is returned when a numeric rule meets a symbol.
	ErrNonNumeric = errors.New("non-numeric element")
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNumber Kind = iota
	KindSymbol
)

// Value is either a number or an opaque symbol. Aggregation rules that only
// pick an element (consensus, the first-element fallback) hand back symbols
// untouched; arithmetic rules need numbers.
type Value struct {
	Kind   Kind
	Number float64
	Symbol string
}

func Number(v float64) Value { return Value{Kind: KindNumber, Number: v} }
func Symbol(s string) Value  { return Value{Kind: KindSymbol, Symbol: s} }

// Numbers wraps a float slice.
func Numbers(vs []float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Number(v)
	}
	return out
}

// ParseValue reads a number when it can and keeps the text as a symbol otherwise.
func ParseValue(s string) Value {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return Symbol(s)
}

func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// Interface returns the held variant as float64 or string.
func (v Value) Interface() any {
	if v.IsNumber() {
		return v.Number
	}
	return v.Symbol
}

func (v Value) String() string {
	if v.IsNumber() {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Symbol
}

// key identifies equal elements for counting. Numbers and symbols never collide,
// and -0 counts as 0.
func (v Value) key() string {
	if v.IsNumber() {
		if v.Number == 0 {
			return "n:0"
		}
		return "n:" + strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return "s:" + v.Symbol
}

func numbersOf(values []Value) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		if !v.IsNumber() {
			return nil, fmt.Errorf("%w: element %d is %q", ErrNonNumeric, i, v.Symbol)
		}
		out[i] = v.Number
	}
	return out, nil
}
