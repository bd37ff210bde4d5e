package lightning

import (
	"context"
	"fmt"
	"time"
)

// MaxQubits is the largest qubit count an engine is built for.
const MaxQubits = 16

/*
Dispatcher routes requests to the Engine built for their qubit count. The
engine table is filled once by NewDispatcher, so choosing an engine is an
index into an array rather than any per-call setup.
*/
type Dispatcher struct {
	cfg     *Config
	engines [MaxQubits + 1]*Engine
	pool    *Pool
	metrics *Metrics
}

// NewDispatcher builds engines for 1..MaxQubits qubits. A nil cfg uses
// NewConfig. The worker pool, if any, stops when ctx is cancelled or Close
// is called.
func NewDispatcher(ctx context.Context, cfg *Config) *Dispatcher {
	if cfg == nil {
		cfg = NewConfig()
	}
	cfg.normalize()
	applyLogLevel(cfg.LogLevel)

	d := &Dispatcher{cfg: cfg}

	if cfg.EnableMetrics {
		d.metrics = NewMetrics()
	}
	if cfg.Workers > 1 && cfg.ParallelQubits <= MaxQubits {
		d.pool = NewPool(ctx, cfg.Workers)
	}

	for n := 1; n <= MaxQubits; n++ {
		d.engines[n] = newEngine(n, cfg, d.pool, d.metrics)
	}

	Logger().Debug(
		"dispatcher ready",
		"engines", MaxQubits,
		"workers", cfg.Workers,
		"parallel_qubits", cfg.ParallelQubits,
		"validate_first", cfg.ValidateFirst,
	)

	return d
}

// Engine returns the engine for the given qubit count.
func (d *Dispatcher) Engine(qubits int) (*Engine, error) {
	if qubits <= 0 {
		return nil, fmt.Errorf("%w: must specify one or more qubits", ErrInvalidArgument)
	}
	if qubits > MaxQubits {
		return nil, fmt.Errorf("%w: no support for %d > %d qubits", ErrUnsupportedSize, qubits, MaxQubits)
	}
	return d.engines[qubits], nil
}

/*
Apply applies ops to state, using wires[i] and params[i] for ops[i], and
returns the transformed vector. state is modified in place and is the
returned slice.

Parameters:
  - state: 2^qubits amplitudes, wire 0 most significant
  - ops: operation names from Gates()
  - wires: one wire list per operation
  - params: one parameter list per operation, empty for fixed gates
  - qubits: 1..MaxQubits

Returns:
  - StateVector: state after every operation
  - error: a package sentinel, wrapped in *OperationError for per-operation failures
*/
func (d *Dispatcher) Apply(state StateVector, ops []string, wires [][]int, params [][]float64, qubits int) (StateVector, error) {
	start := time.Now()

	engine, err := d.Engine(qubits)
	if err != nil {
		return state, d.observe(start, qubits, err)
	}

	operations, err := NewOperations(ops, wires, params)
	if err != nil {
		return state, d.observe(start, qubits, err)
	}

	out, err := engine.Apply(state, operations)
	return out, d.observe(start, qubits, err)
}

// ApplyOperations is Apply for callers that already hold Operation records.
func (d *Dispatcher) ApplyOperations(state StateVector, ops []Operation, qubits int) (StateVector, error) {
	start := time.Now()

	engine, err := d.Engine(qubits)
	if err != nil {
		return state, d.observe(start, qubits, err)
	}

	out, err := engine.Apply(state, ops)
	return out, d.observe(start, qubits, err)
}

func (d *Dispatcher) observe(start time.Time, qubits int, err error) error {
	d.metrics.recordApply(start, err)
	if err != nil {
		Logger().Debug("apply failed", "qubits", qubits, "err", err)
	}
	return err
}

func (d *Dispatcher) Config() *Config {
	return d.cfg
}

// Metrics returns the dispatcher's metrics, nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Close stops the worker pool. Apply keeps working afterwards, serially.
func (d *Dispatcher) Close() {
	d.pool.Close()
}

var defaultDispatcher = NewDispatcher(context.Background(), NewConfig())

// Apply runs ops on state with the default dispatcher.
func Apply(state StateVector, ops []string, wires [][]int, params [][]float64, qubits int) (StateVector, error) {
	return defaultDispatcher.Apply(state, ops, wires, params, qubits)
}

// ApplyOperations runs ops on state with the default dispatcher.
func ApplyOperations(state StateVector, ops []Operation, qubits int) (StateVector, error) {
	return defaultDispatcher.ApplyOperations(state, ops, qubits)
}

// DefaultMetrics returns the metrics of the default dispatcher.
func DefaultMetrics() *Metrics {
	return defaultDispatcher.Metrics()
}
