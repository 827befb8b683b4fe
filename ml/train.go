package ml

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// TrainStep runs one gradient-descent step that updates only the last layer of
// the network:
//
//	error = forward(input) - target
//	b    -= lr * error
//	W    -= lr * error ⊗ lastInput
//
// where lastInput is what the last layer received during the forward pass.
// Earlier layers are left untouched; there is no backpropagation through them.
// learningRate is used as given, zero or negative included.
func (r *Registry) TrainStep(networkID int, input, target []float64, learningRate float64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nw, err := r.network(networkID)
	if err != nil {
		return err
	}
	last := nw.Layers[len(nw.Layers)-1]

	// 1. Validate before touching anything
	if len(target) != last.OutputSize {
		return fmt.Errorf("%w: target has %d entries, layer %d outputs %d",
			ErrDimensionMismatch, len(target), last.ID, last.OutputSize)
	}

	unlock := lockLayers(nw.Layers, last)
	defer unlock()

	// 2. Forward pass
	output, lastInput, err := nw.forward(input)
	if err != nil {
		return err
	}

	// 3. Output error
	errVec := make([]float64, len(output))
	floats.SubTo(errVec, output, target)

	// 4. Update last layer only
	floats.AddScaled(last.Biases, -learningRate, errVec)
	w := last.Weights.dense
	w.RankOne(w, -learningRate, mat.NewVecDense(len(errVec), errVec), mat.NewVecDense(len(lastInput), lastInput))

	return nil
}
