package host

import (
	"bytes"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b0tShaman/neuro-core/config"
	"github.com/b0tShaman/neuro-core/data"
	"github.com/b0tShaman/neuro-core/ml"
)

func newRuntime(t *testing.T) (*Runtime, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Runtime.Seed = 1
	var buf bytes.Buffer
	return New(cfg, log.New(&buf, "", 0)), &buf
}

func TestRuntime_EndToEnd(t *testing.T) {
	rt, _ := newRuntime(t)

	l1, err := rt.CreateLayer(3, 4, "relu")
	require.NoError(t, err)
	l2, err := rt.CreateLayer(4, 2, "linear")
	require.NoError(t, err)
	n, err := rt.CreateNetwork([]int{l1, l2})
	require.NoError(t, err)

	x := []float64{0.2, -0.4, 0.9}
	out, err := rt.Forward(n, x)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	before, _, err := rt.GetWeights(l1)
	require.NoError(t, err)
	require.NoError(t, rt.TrainStep(n, x, []float64{1, 0}, 0.1))
	after, _, err := rt.GetWeights(l1)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	rt.Reset()
	_, err = rt.Forward(n, x)
	assert.ErrorIs(t, err, ml.ErrUnknownNetwork)
}

func TestRuntime_SeedFromConfig(t *testing.T) {
	a, _ := newRuntime(t)
	b, _ := newRuntime(t)
	la, _ := a.CreateLayer(3, 3, "tanh")
	lb, _ := b.CreateLayer(3, 3, "tanh")

	wa, _, _ := a.GetWeights(la)
	wb, _, _ := b.GetWeights(lb)
	assert.Equal(t, wa, wb)
}

func TestRuntime_EagerShapeCheckFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Runtime.EagerShapeCheck = true
	rt := New(cfg, nil)

	a, _ := rt.CreateLayer(2, 3, "linear")
	b, _ := rt.CreateLayer(2, 1, "linear")
	_, err := rt.CreateNetwork([]int{a, b})
	assert.ErrorIs(t, err, ml.ErrDimensionMismatch)
}

func TestRuntime_LogsFailures(t *testing.T) {
	rt, buf := newRuntime(t)

	_, err := rt.CreateLayer(0, 1, "relu")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "create_layer failed")

	buf.Reset()
	_, err = rt.CreateLayer(1, 1, "relu")
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "successes are quiet unless verbose")
}

func TestRuntime_VerboseLogsSuccesses(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Verbose = true
	var buf bytes.Buffer
	rt := New(cfg, log.New(&buf, "", 0))

	_, err := rt.CreateLayer(2, 2, "relu")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "create_layer: layer 0 (2 -> 2, relu)")
}

func TestActivate(t *testing.T) {
	rt, _ := newRuntime(t)

	got, err := rt.Activate("relu", -3.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = rt.Activate("relu", 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	got, err = rt.Activate("sigmoid", []float64{0, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, got)

	got, err = rt.Activate("tanh", []any{0, 0.0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got)

	got, err = rt.Activate("softmax", []int{1, 1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, got, 1e-12)
}

func TestActivate_Errors(t *testing.T) {
	rt, _ := newRuntime(t)

	_, err := rt.Activate("gelu", 1.0)
	assert.ErrorIs(t, err, ErrUnknownActivation)

	_, err = rt.Activate("relu", "one")
	assert.ErrorIs(t, err, ErrBadArgument)

	_, err = rt.Activate("relu", []any{1, "two"})
	assert.ErrorIs(t, err, ErrBadArgument)

	_, err = rt.Activate("softmax", 2.0)
	assert.ErrorIs(t, err, ErrBadArgument)

	_, err = rt.Activate("softmax", []float64{})
	assert.ErrorIs(t, err, ml.ErrEmptyInput)
}

func TestTensorCalls(t *testing.T) {
	rt, _ := newRuntime(t)

	sum, err := rt.TensorAdd([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, sum)

	prod, err := rt.TensorMultiply([][]float64{{1, 2}, {3, 4}}, [][]float64{{5, 6}, {7, 8}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{19, 22}, {43, 50}}, prod)

	tr, err := rt.TensorTranspose([][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr)
}

func TestSymbolicReasoning(t *testing.T) {
	rt, _ := newRuntime(t)

	got, err := rt.SymbolicReasoning([]any{1, 5, 3, 9, 2}, "max")
	require.NoError(t, err)
	assert.Equal(t, 9.0, got)

	got, err = rt.SymbolicReasoning([]any{1, 5, 3, 9, 2}, "avg")
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	got, err = rt.SymbolicReasoning([]any{"a", "b", "b"}, "consensus")
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	_, err = rt.SymbolicReasoning(nil, "max")
	assert.ErrorIs(t, err, data.ErrEmptyInput)

	_, err = rt.SymbolicReasoning([]any{true}, "max")
	assert.ErrorIs(t, err, ErrBadArgument)
}

func TestCognitiveState(t *testing.T) {
	rt, _ := newRuntime(t)
	got, err := rt.CognitiveState([]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6})
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, 0.6, got[3])
	assert.Equal(t, 0.1, got[4])
}

func TestOrchestrateModels(t *testing.T) {
	rt, _ := newRuntime(t)
	l, _ := rt.CreateLayer(1, 1, "linear")
	n1, _ := rt.CreateNetwork([]int{l})
	n2, _ := rt.CreateNetwork([]int{l, l})

	rc, err := rt.OrchestrateModels([]int{n1, n2}, "ensemble")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rc.ID)
	assert.Equal(t, ReceiptOrchestrate, rc.Kind)
	assert.Equal(t, "ensemble", rc.Strategy)
	assert.Equal(t, []int{n1, n2}, rc.NetworkIDs)

	_, err = rt.OrchestrateModels([]int{n1, 42}, "ensemble")
	assert.ErrorIs(t, err, ml.ErrUnknownNetwork)
}

func TestNeuralBroadcast(t *testing.T) {
	rt, _ := newRuntime(t)
	l, _ := rt.CreateLayer(1, 1, "linear")
	n, _ := rt.CreateNetwork([]int{l})

	payload := []float64{1, 2}
	rc, err := rt.NeuralBroadcast(n, payload)
	require.NoError(t, err)
	assert.Equal(t, ReceiptBroadcast, rc.Kind)
	assert.Equal(t, []float64{1, 2}, rc.Payload)

	other, err := rt.NeuralBroadcast(n, payload)
	require.NoError(t, err)
	assert.NotEqual(t, rc.ID, other.ID)

	_, err = rt.NeuralBroadcast(n+1, payload)
	assert.ErrorIs(t, err, ml.ErrUnknownNetwork)
}
