package ml

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
)

const (
	ActLinear ActivationType = iota
	ActRelu
	ActSigmoid
	ActTanh
	// ActUnknown marks an activation name outside the table. It behaves as identity.
	ActUnknown
)

var activationMap = map[string]ActivationType{
	"linear":  ActLinear,
	"relu":    ActRelu,
	"sigmoid": ActSigmoid,
	"tanh":    ActTanh,
}

// -------- TYPE DEFINITIONS -------- //
type ActivationType int

// ParseActivation maps a name onto the closed activation set.
// Names outside the set are accepted and map to ActUnknown.
func ParseActivation(name string) ActivationType {
	if act, ok := activationMap[name]; ok {
		return act
	}
	return ActUnknown
}

func (a ActivationType) String() string {
	switch a {
	case ActLinear:
		return "linear"
	case ActRelu:
		return "relu"
	case ActSigmoid:
		return "sigmoid"
	case ActTanh:
		return "tanh"
	default:
		return "unknown"
	}
}

// Layer is one affine transform plus an activation.
// Weights is OutputSize x InputSize, Biases has OutputSize entries.
type Layer struct {
	ID         int
	InputSize  int
	OutputSize int

	ActType ActivationType
	ActName string // as given at creation

	Weights *Matrix
	Biases  []float64

	mu sync.RWMutex
}

// LayerInfo is a lock-free snapshot of a layer's shape and activation.
type LayerInfo struct {
	ID         int
	InputSize  int
	OutputSize int
	Activation string
}

func (l *Layer) info() LayerInfo {
	return LayerInfo{
		ID:         l.ID,
		InputSize:  l.InputSize,
		OutputSize: l.OutputSize,
		Activation: l.ActName,
	}
}

// ------- ACTIVATION FUNCTIONS ------- //
func Relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func Tanh(x float64) float64 {
	return math.Tanh(x)
}

func Linear(x float64) float64 {
	return x
}

// Func returns the scalar function for an activation.
func (a ActivationType) Func() func(float64) float64 {
	switch a {
	case ActRelu:
		return Relu
	case ActSigmoid:
		return Sigmoid
	case ActTanh:
		return Tanh
	default:
		return Linear
	}
}

// Activate applies an activation elementwise and returns a new slice.
func Activate(act ActivationType, xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	ApplyActivation(act, out)
	return out
}

// ApplyActivation applies an activation elementwise in place.
func ApplyActivation(act ActivationType, xs []float64) {
	switch act {
	case ActRelu:
		for i, v := range xs {
			if v < 0 {
				xs[i] = 0
			}
		}
	case ActSigmoid:
		for i, v := range xs {
			xs[i] = 1.0 / (1.0 + math.Exp(-v))
		}
	case ActTanh:
		for i, v := range xs {
			xs[i] = math.Tanh(v)
		}
	case ActLinear, ActUnknown:
	}
}

// Softmax subtracts the max before exponentiating, so large inputs do not overflow.
// An infinite max splits the mass evenly over the entries equal to it.
func Softmax(xs []float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	maxVal := floats.Max(xs)
	out := make([]float64, len(xs))
	if math.IsInf(maxVal, 0) {
		for i, v := range xs {
			if v == maxVal {
				out[i] = 1
			}
		}
		floats.Scale(1/floats.Sum(out), out)
		return out, nil
	}
	for i, v := range xs {
		out[i] = math.Exp(v - maxVal)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out, nil
}
