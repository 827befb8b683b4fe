// Package host is the call surface an embedding application uses to drive the
// runtime: layers, networks, forward and train calls, the stateless tensor and
// activation primitives, and the aggregation helpers. Failures come back as
// errors wrapping the ml and data sentinels; nothing here retries.
package host

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/b0tShaman/neuro-core/config"
	"github.com/b0tShaman/neuro-core/data"
	"github.com/b0tShaman/neuro-core/ml"
)

var (
	// ErrUnknownActivation is returned by Activate for names it cannot dispatch.
	ErrUnknownActivation = errors.New("unknown activation")
	// ErrBadArgument is returned when a dynamically typed argument has the wrong type.
	ErrBadArgument = errors.New("bad argument")
)

// Runtime wraps one registry. Several runtimes can coexist in a process.
type Runtime struct {
	reg     *ml.Registry
	log     *log.Logger
	verbose bool
}

// New builds a runtime from configuration. A nil logger discards output.
func New(cfg *config.Config, logger *log.Logger) *Runtime {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var opts []ml.Option
	if cfg.Runtime.Seed != 0 {
		opts = append(opts, ml.WithSeed(cfg.Runtime.Seed))
	}
	if cfg.Runtime.EagerShapeCheck {
		opts = append(opts, ml.WithEagerShapeCheck())
	}

	return &Runtime{
		reg:     ml.NewRegistry(opts...),
		log:     logger,
		verbose: cfg.Log.Verbose,
	}
}

// Registry exposes the underlying registry.
func (r *Runtime) Registry() *ml.Registry { return r.reg }

// trace logs failures always and successes only in verbose mode.
func (r *Runtime) trace(op string, err error, format string, args ...any) {
	if err != nil {
		r.log.Printf("%s failed: %v", op, err)
		return
	}
	if r.verbose {
		r.log.Printf("%s: %s", op, fmt.Sprintf(format, args...))
	}
}

// -------- REGISTRY CALLS -------- //

func (r *Runtime) CreateLayer(inputSize, outputSize int, activation string) (int, error) {
	id, err := r.reg.CreateLayer(inputSize, outputSize, activation)
	r.trace("create_layer", err, "layer %d (%d -> %d, %s)", id, inputSize, outputSize, activation)
	return id, err
}

func (r *Runtime) CreateNetwork(layerIDs []int) (int, error) {
	id, err := r.reg.CreateNetwork(layerIDs)
	r.trace("create_network", err, "network %d over layers %v", id, layerIDs)
	return id, err
}

func (r *Runtime) Forward(networkID int, input []float64) ([]float64, error) {
	out, err := r.reg.Forward(networkID, input)
	r.trace("forward", err, "network %d, %d -> %d values", networkID, len(input), len(out))
	return out, err
}

func (r *Runtime) TrainStep(networkID int, input, target []float64, learningRate float64) error {
	err := r.reg.TrainStep(networkID, input, target, learningRate)
	r.trace("train_step", err, "network %d, lr %g", networkID, learningRate)
	return err
}

func (r *Runtime) SetWeights(layerID int, weights [][]float64, biases []float64) error {
	err := r.reg.SetWeights(layerID, weights, biases)
	r.trace("set_weights", err, "layer %d", layerID)
	return err
}

func (r *Runtime) GetWeights(layerID int) ([][]float64, []float64, error) {
	w, b, err := r.reg.GetWeights(layerID)
	r.trace("get_weights", err, "layer %d", layerID)
	return w, b, err
}

// Reset clears every layer and network.
func (r *Runtime) Reset() {
	r.reg.Reset()
	r.trace("reset", nil, "registry cleared")
}

// -------- STATELESS PRIMITIVES -------- //

// Activate applies relu, sigmoid or tanh to a number or a list of numbers,
// returning the same shape. softmax takes lists only.
func (r *Runtime) Activate(name string, v any) (any, error) {
	out, err := activate(name, v)
	if err != nil {
		r.trace(name, err, "")
	}
	return out, err
}

func activate(name string, v any) (any, error) {
	var act ml.ActivationType
	switch name {
	case "relu", "sigmoid", "tanh":
		act = ml.ParseActivation(name)
	case "softmax":
		xs, err := toFloats(v)
		if err != nil {
			return nil, err
		}
		return ml.Softmax(xs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}

	if x, ok := toFloat(v); ok {
		return act.Func()(x), nil
	}
	xs, err := toFloats(v)
	if err != nil {
		return nil, err
	}
	return ml.Activate(act, xs), nil
}

func (r *Runtime) TensorAdd(a, b []float64) ([]float64, error) {
	out, err := ml.TensorAdd(a, b)
	r.trace("tensor_add", err, "%d elements", len(out))
	return out, err
}

func (r *Runtime) TensorMultiply(m1, m2 [][]float64) ([][]float64, error) {
	out, err := ml.TensorMultiply(m1, m2)
	r.trace("tensor_multiply", err, "%d rows", len(out))
	return out, err
}

func (r *Runtime) TensorTranspose(m [][]float64) ([][]float64, error) {
	out, err := ml.TensorTranspose(m)
	r.trace("tensor_transpose", err, "%d rows", len(out))
	return out, err
}

// -------- AGGREGATION -------- //

// SymbolicReasoning accepts numbers and strings. The result is a float64 or,
// for element-picking rules over symbols, the original string.
func (r *Runtime) SymbolicReasoning(values []any, rule string) (any, error) {
	vals := make([]data.Value, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			vals[i] = data.Symbol(s)
			continue
		}
		x, ok := toFloat(v)
		if !ok {
			err := fmt.Errorf("%w: element %d has type %T", ErrBadArgument, i, v)
			r.trace("symbolic_reasoning", err, "")
			return nil, err
		}
		vals[i] = data.Number(x)
	}

	out, err := data.SymbolicReasoning(vals, rule)
	r.trace("symbolic_reasoning", err, "rule %q over %d values", rule, len(values))
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

func (r *Runtime) CognitiveState(values []float64) ([]float64, error) {
	out, err := data.CognitiveState(values)
	r.trace("cognitive_state", err, "%d values", len(values))
	return out, err
}

// -------- ARGUMENT COERCION -------- //

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

func toFloats(v any) ([]float64, error) {
	switch xs := v.(type) {
	case []float64:
		return xs, nil
	case []int:
		out := make([]float64, len(xs))
		for i, x := range xs {
			out[i] = float64(x)
		}
		return out, nil
	case []any:
		out := make([]float64, len(xs))
		for i, x := range xs {
			f, ok := toFloat(x)
			if !ok {
				return nil, fmt.Errorf("%w: element %d has type %T", ErrBadArgument, i, x)
			}
			out[i] = f
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: want a number or a list of numbers, got %T", ErrBadArgument, v)
	}
}
