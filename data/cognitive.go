package data

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CognitiveState splits values into three contiguous parts at len/3 and
// 2*len/3 and returns
//
//	[mean(first), mean(second), mean(rest), max(values), min(values)]
//
// The last part takes the remainder when len is not a multiple of three.
// Fewer than three values would leave a part empty, so they are rejected.
func CognitiveState(values []float64) ([]float64, error) {
	n := len(values)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 values to split into thirds, got %d", ErrEmptyInput, n)
	}

	a, b := n/3, 2*n/3
	return []float64{
		stat.Mean(values[:a], nil),
		stat.Mean(values[a:b], nil),
		stat.Mean(values[b:], nil),
		floats.Max(values),
		floats.Min(values),
	}, nil
}
