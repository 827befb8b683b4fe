package host

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/b0tShaman/neuro-core/ml"
)

const (
	ReceiptOrchestrate = "orchestrate"
	ReceiptBroadcast   = "broadcast"
)

// Receipt records an accepted orchestration or broadcast request. Delivery is
// the embedding host's job; the runtime only checks the ids and hands this back.
type Receipt struct {
	ID         uuid.UUID
	Kind       string
	Strategy   string
	NetworkIDs []int
	Payload    []float64
	CreatedAt  time.Time
}

// OrchestrateModels checks that every id names an existing network.
func (r *Runtime) OrchestrateModels(networkIDs []int, strategy string) (Receipt, error) {
	for _, id := range networkIDs {
		if !r.reg.HasNetwork(id) {
			err := fmt.Errorf("%w: id %d", ml.ErrUnknownNetwork, id)
			r.trace("orchestrate_models", err, "")
			return Receipt{}, err
		}
	}

	rc := Receipt{
		ID:         uuid.New(),
		Kind:       ReceiptOrchestrate,
		Strategy:   strategy,
		NetworkIDs: append([]int(nil), networkIDs...),
		CreatedAt:  time.Now(),
	}
	r.trace("orchestrate_models", nil, "%s strategy %q over %v", rc.ID, strategy, networkIDs)
	return rc, nil
}

// NeuralBroadcast checks that the source network exists.
func (r *Runtime) NeuralBroadcast(sourceID int, payload []float64) (Receipt, error) {
	if !r.reg.HasNetwork(sourceID) {
		err := fmt.Errorf("%w: id %d", ml.ErrUnknownNetwork, sourceID)
		r.trace("neural_broadcast", err, "")
		return Receipt{}, err
	}

	rc := Receipt{
		ID:         uuid.New(),
		Kind:       ReceiptBroadcast,
		NetworkIDs: []int{sourceID},
		Payload:    append([]float64(nil), payload...),
		CreatedAt:  time.Now(),
	}
	r.trace("neural_broadcast", nil, "%s from network %d, %d values", rc.ID, sourceID, len(payload))
	return rc, nil
}
