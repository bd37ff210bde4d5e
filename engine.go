package lightning

import "fmt"

/*
Engine applies operation sequences to statevectors of one fixed qubit count.
A Dispatcher builds one Engine per supported count up front, so the
dimension, the wire masks and the parallel cut-over are settled before any
request arrives and every call only does index arithmetic.

An Engine keeps no state between calls and is safe for concurrent use on
distinct statevectors.
*/
type Engine struct {
	qubits   int
	dim      int
	masks    [MaxQubits]int
	parallel bool
	strip    int
	pool     *Pool
	metrics  *Metrics
	validate bool
}

func newEngine(qubits int, cfg *Config, pool *Pool, metrics *Metrics) *Engine {
	e := &Engine{
		qubits:   qubits,
		dim:      1 << qubits,
		parallel: pool != nil && qubits >= cfg.ParallelQubits,
		strip:    cfg.StripSize,
		pool:     pool,
		metrics:  metrics,
		validate: cfg.ValidateFirst,
	}

	for w := 0; w < qubits; w++ {
		e.masks[w] = 1 << (qubits - 1 - w)
	}

	return e
}

func (e *Engine) Qubits() int {
	return e.qubits
}

// step is a validated operation ready to run.
type step struct {
	gate   *Gate
	part   partition
	kernel Kernel
}

// plan validates op against the gate library and the engine's width.
func (e *Engine) plan(index int, op Operation) (step, error) {
	fail := func(err error) (step, error) {
		return step{}, &OperationError{Index: index, Name: op.Name, Err: err}
	}

	gate, err := Lookup(op.Name)
	if err != nil {
		return fail(err)
	}

	if len(op.Wires) != gate.Wires {
		return fail(fmt.Errorf("%w: %s takes %d wires, got %d", ErrArityMismatch, gate.Name, gate.Wires, len(op.Wires)))
	}
	if len(op.Params) != gate.Params {
		return fail(fmt.Errorf("%w: %s takes %d parameters, got %d", ErrArityMismatch, gate.Name, gate.Params, len(op.Params)))
	}

	for i, w := range op.Wires {
		if w < 0 || w >= e.qubits {
			return fail(fmt.Errorf("%w: wire %d outside [0, %d)", ErrInvalidWire, w, e.qubits))
		}
		for _, prev := range op.Wires[:i] {
			if prev == w {
				return fail(fmt.Errorf("%w: wire %d repeated", ErrInvalidWire, w))
			}
		}
	}

	return step{
		gate:   gate,
		part:   newPartition(&e.masks, e.qubits, op.Wires, gate.Controlled),
		kernel: gate.Kernel(op.Params),
	}, nil
}

func (e *Engine) checkState(state StateVector) error {
	if len(state) != e.dim {
		return fmt.Errorf("%w: statevector has %d amplitudes, %d qubits need %d", ErrInvalidArgument, len(state), e.qubits, e.dim)
	}
	return nil
}

/*
Apply transforms state in place by every operation in ops, in order, and
returns it.

Each operation is validated right before its amplitudes are touched. When
validation fails the error is returned and the operations before it stay
applied. With Config.ValidateFirst the whole sequence is validated before the
first write instead, and a failure leaves state untouched.
*/
func (e *Engine) Apply(state StateVector, ops []Operation) (StateVector, error) {
	if err := e.checkState(state); err != nil {
		return state, err
	}

	if e.validate {
		prog, err := e.Compile(ops)
		if err != nil {
			return state, err
		}
		prog.run(state)
		return state, nil
	}

	for i, op := range ops {
		s, err := e.plan(i, op)
		if err != nil {
			return state, err
		}
		e.execute(state, s)
	}

	return state, nil
}

// Compile validates the whole sequence into a Program that can be run on
// any number of statevectors of this engine's size.
func (e *Engine) Compile(ops []Operation) (*Program, error) {
	prog := &Program{engine: e, steps: make([]step, 0, len(ops))}

	for i, op := range ops {
		s, err := e.plan(i, op)
		if err != nil {
			return nil, err
		}
		prog.steps = append(prog.steps, s)
	}

	return prog, nil
}

func (e *Engine) execute(state StateVector, s step) {
	groups := s.part.groups

	if e.parallel && groups > e.strip {
		strips := e.pool.Run(groups, e.strip, func(lo, hi int) {
			s.part.apply(state, s.kernel, lo, hi)
		})
		e.metrics.recordGate(s.gate, strips)
		return
	}

	s.part.apply(state, s.kernel, 0, groups)
	e.metrics.recordGate(s.gate, 0)
}

// Program is a validated operation sequence bound to one Engine.
type Program struct {
	engine *Engine
	steps  []step
}

func (p *Program) Len() int {
	return len(p.steps)
}

// Run applies the program to state in place.
func (p *Program) Run(state StateVector) (StateVector, error) {
	if err := p.engine.checkState(state); err != nil {
		return state, err
	}
	p.run(state)
	return state, nil
}

func (p *Program) run(state StateVector) {
	for _, s := range p.steps {
		p.engine.execute(state, s)
	}
}
