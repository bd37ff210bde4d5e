package lightning

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

/*
ApplyBatch applies one operation sequence to many independent statevectors,
at most Config.BatchConcurrency at a time. The sequence is validated once,
before any statevector is touched. The first failure cancels the states that
have not started yet; states already running finish their sequence.
*/
func (d *Dispatcher) ApplyBatch(
	ctx context.Context,
	states []StateVector,
	ops []string,
	wires [][]int,
	params [][]float64,
	qubits int,
) error {
	engine, err := d.Engine(qubits)
	if err != nil {
		return err
	}

	operations, err := NewOperations(ops, wires, params)
	if err != nil {
		return err
	}

	prog, err := engine.Compile(operations)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.BatchConcurrency)

	for i, state := range states {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := d.runProgram(prog, state, qubits); err != nil {
				return fmt.Errorf("state %d: %w", i, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (d *Dispatcher) runProgram(prog *Program, state StateVector, qubits int) (StateVector, error) {
	start := time.Now()
	out, err := prog.Run(state)
	return out, d.observe(start, qubits, err)
}

// ApplyBatch runs ApplyBatch on the default dispatcher.
func ApplyBatch(ctx context.Context, states []StateVector, ops []string, wires [][]int, params [][]float64, qubits int) error {
	return defaultDispatcher.ApplyBatch(ctx, states, ops, wires, params, qubits)
}
