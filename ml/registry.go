package ml

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

// Registry owns every Layer and Network and hands out integer ids for them.
// Layers and networks live in append-only arenas indexed by id; ids are never
// reused until Reset, which clears both arenas and restarts both counters at zero.
//
// Creation and Reset hold the registry lock exclusively. Every other operation
// holds it shared for its whole duration and then locks the layers it touches.
type Registry struct {
	mu sync.RWMutex

	layers        []*Layer
	networks      []*Network
	nextLayerID   int
	nextNetworkID int

	normal          distuv.Normal
	eagerShapeCheck bool
}

type Option func(*Registry)

// WithSeed makes weight initialization reproducible.
func WithSeed(seed uint64) Option {
	return func(r *Registry) {
		r.normal.Src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	}
}

// WithEagerShapeCheck makes CreateNetwork reject adjacent layers whose sizes do
// not chain. Without it the mismatch surfaces from Forward.
func WithEagerShapeCheck() Option {
	return func(r *Registry) {
		r.eagerShapeCheck = true
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		normal: distuv.Normal{
			Mu:    0,
			Sigma: 1,
			Src:   rand.NewPCG(rand.Uint64(), rand.Uint64()),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// -------- LIFECYCLE -------- //

// Reset drops every layer and network. Ids issued before the reset stop
// resolving until the counters reach them again.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.layers = nil
	r.networks = nil
	r.nextLayerID = 0
	r.nextNetworkID = 0
}

func (r *Registry) LayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.layers)
}

func (r *Registry) NetworkCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.networks)
}

func (r *Registry) HasLayer(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, err := r.layer(id)
	return err == nil
}

func (r *Registry) HasNetwork(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, err := r.network(id)
	return err == nil
}

// Layer returns the shape and activation of a layer.
func (r *Registry) Layer(id int) (LayerInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, err := r.layer(id)
	if err != nil {
		return LayerInfo{}, err
	}
	return l.info(), nil
}

// NetworkLayers returns the layer ids of a network in evaluation order.
func (r *Registry) NetworkLayers(id int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nw, err := r.network(id)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(nw.Layers))
	for i, l := range nw.Layers {
		ids[i] = l.ID
	}
	return ids, nil
}

// layer and network expect r.mu to be held.
func (r *Registry) layer(id int) (*Layer, error) {
	if id < 0 || id >= len(r.layers) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownLayer, id)
	}
	return r.layers[id], nil
}

func (r *Registry) network(id int) (*Network, error) {
	if id < 0 || id >= len(r.networks) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownNetwork, id)
	}
	return r.networks[id], nil
}

// -------- LAYERS -------- //

// CreateLayer allocates a layer with He-scaled normal weights and zero biases.
// The activation name is stored as given; names outside relu, sigmoid, tanh
// and linear act as identity.
func (r *Registry) CreateLayer(inputSize, outputSize int, activation string) (int, error) {
	if inputSize <= 0 || outputSize <= 0 {
		return 0, fmt.Errorf("%w: input %d, output %d", ErrInvalidDimension, inputSize, outputSize)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	layer := &Layer{
		ID:         r.nextLayerID,
		InputSize:  inputSize,
		OutputSize: outputSize,
		ActType:    ParseActivation(activation),
		ActName:    activation,
		Weights:    NewMatrix(outputSize, inputSize),
		Biases:     make([]float64, outputSize),
	}
	layer.Weights.Randomize(inputSize, r.normal)

	r.layers = append(r.layers, layer)
	r.nextLayerID++
	return layer.ID, nil
}

// GetWeights returns copies of a layer's weights (OutputSize rows of
// InputSize) and biases.
func (r *Registry) GetWeights(layerID int) ([][]float64, []float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	layer, err := r.layer(layerID)
	if err != nil {
		return nil, nil, err
	}

	layer.mu.RLock()
	defer layer.mu.RUnlock()
	return layer.Weights.ToRows(), append([]float64(nil), layer.Biases...), nil
}

// SetWeights replaces a layer's parameters wholesale. The replacement must have
// the layer's recorded shape; nothing is written when it does not.
func (r *Registry) SetWeights(layerID int, weights [][]float64, biases []float64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	layer, err := r.layer(layerID)
	if err != nil {
		return err
	}

	if len(weights) != layer.OutputSize || len(biases) != layer.OutputSize {
		return fmt.Errorf("%w: layer %d needs %d weight rows and %d biases, got %d and %d",
			ErrDimensionMismatch, layerID, layer.OutputSize, layer.OutputSize, len(weights), len(biases))
	}
	for i, row := range weights {
		if len(row) != layer.InputSize {
			return fmt.Errorf("%w: layer %d weight row %d has %d entries, want %d",
				ErrDimensionMismatch, layerID, i, len(row), layer.InputSize)
		}
	}
	replacement, _ := NewMatrixFromRows(weights)

	layer.mu.Lock()
	defer layer.mu.Unlock()
	layer.Weights.CopyFrom(replacement)
	copy(layer.Biases, biases)
	return nil
}

// -------- NETWORKS -------- //

// CreateNetwork builds a network over existing layers in the given order.
func (r *Registry) CreateNetwork(layerIDs []int) (int, error) {
	if len(layerIDs) == 0 {
		return 0, fmt.Errorf("%w: network needs at least one layer", ErrEmptyInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	nw := &Network{Layers: make([]*Layer, len(layerIDs))}
	for i, id := range layerIDs {
		layer, err := r.layer(id)
		if err != nil {
			return 0, err
		}
		nw.Layers[i] = layer
	}
	if r.eagerShapeCheck {
		if err := nw.checkShapes(); err != nil {
			return 0, err
		}
	}

	nw.ID = r.nextNetworkID
	r.networks = append(r.networks, nw)
	r.nextNetworkID++
	return nw.ID, nil
}

// Forward evaluates a network on one input vector. It reads registry state only.
func (r *Registry) Forward(networkID int, input []float64) ([]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nw, err := r.network(networkID)
	if err != nil {
		return nil, err
	}

	unlock := lockLayers(nw.Layers, nil)
	defer unlock()

	output, _, err := nw.forward(input)
	return output, err
}
