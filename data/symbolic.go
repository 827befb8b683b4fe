package data

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	RuleMax       = "max"
	RuleMin       = "min"
	RuleAvg       = "avg"
	RuleConsensus = "consensus"
)

// SymbolicReasoning reduces values under a named rule:
//
//	max, min   the extreme element
//	avg        the arithmetic mean
//	consensus  the most frequent element, ties going to the one seen first
//	other      the first element, unchanged
//
// max, min and avg need numeric elements.
func SymbolicReasoning(values []Value, rule string) (Value, error) {
	if len(values) == 0 {
		return Value{}, ErrEmptyInput
	}

	switch rule {
	case RuleMax, RuleMin, RuleAvg:
		nums, err := numbersOf(values)
		if err != nil {
			return Value{}, err
		}
		switch rule {
		case RuleMax:
			return Number(floats.Max(nums)), nil
		case RuleMin:
			return Number(floats.Min(nums)), nil
		default:
			return Number(stat.Mean(nums, nil)), nil
		}
	case RuleConsensus:
		return consensus(values), nil
	default:
		return values[0], nil
	}
}

// SymbolicReasoningFloats is SymbolicReasoning over plain numbers.
func SymbolicReasoningFloats(values []float64, rule string) (float64, error) {
	v, err := SymbolicReasoning(Numbers(values), rule)
	if err != nil {
		return 0, err
	}
	return v.Number, nil
}

// consensus returns the most frequent element. A later element only wins
// with a strictly higher count.
func consensus(values []Value) Value {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v.key()]++
	}

	best, bestCount := values[0], 0
	for _, v := range values {
		if c := counts[v.key()]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}
