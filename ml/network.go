package ml

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Network is an ordered sequence of registry-owned layers. A layer id that
// appears twice is the same parameters applied twice, not a copy.
type Network struct {
	ID     int
	Layers []*Layer
}

// -------- NETWORK METHODS -------- //

// checkShapes reports the first adjacent pair whose sizes do not chain.
func (nw *Network) checkShapes() error {
	for i := 1; i < len(nw.Layers); i++ {
		prev, next := nw.Layers[i-1], nw.Layers[i]
		if prev.OutputSize != next.InputSize {
			return fmt.Errorf("%w: layer %d outputs %d values, layer %d expects %d",
				ErrDimensionMismatch, prev.ID, prev.OutputSize, next.ID, next.InputSize)
		}
	}
	return nil
}

// forward runs every layer in order and returns the network output together
// with the vector that was fed into the last layer. Callers hold the read
// locks of all layers involved.
func (nw *Network) forward(input []float64) (output, lastInput []float64, err error) {
	activation := input
	for _, layer := range nw.Layers {
		lastInput = activation
		activation, err = layer.forward(activation)
		if err != nil {
			return nil, nil, err
		}
	}
	return activation, lastInput, nil
}

// forward computes act(W·x + b) into a fresh slice.
func (l *Layer) forward(x []float64) ([]float64, error) {
	if len(x) != l.InputSize {
		return nil, fmt.Errorf("%w: layer %d expects %d inputs, got %d",
			ErrDimensionMismatch, l.ID, l.InputSize, len(x))
	}

	out := make([]float64, l.OutputSize)
	z := mat.NewVecDense(l.OutputSize, out)
	z.MulVec(l.Weights.dense, mat.NewVecDense(len(x), x))
	floats.Add(out, l.Biases)

	ApplyActivation(l.ActType, out)
	return out, nil
}

// lockLayers takes each distinct layer's lock once, in ascending id order, so
// two operations over overlapping networks can never wait on each other in a
// cycle. The writer layer (may be nil) is locked exclusively, the rest shared.
func lockLayers(layers []*Layer, writer *Layer) (unlock func()) {
	seen := make(map[int]bool, len(layers))
	distinct := make([]*Layer, 0, len(layers))
	for _, l := range layers {
		if !seen[l.ID] {
			seen[l.ID] = true
			distinct = append(distinct, l)
		}
	}
	sort.Slice(distinct, func(i, j int) bool { return distinct[i].ID < distinct[j].ID })

	for _, l := range distinct {
		if l == writer {
			l.mu.Lock()
		} else {
			l.mu.RLock()
		}
	}
	return func() {
		for i := len(distinct) - 1; i >= 0; i-- {
			if distinct[i] == writer {
				distinct[i].mu.Unlock()
			} else {
				distinct[i].mu.RUnlock()
			}
		}
	}
}
