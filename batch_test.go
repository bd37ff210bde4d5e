package lightning

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApplyBatch(t *testing.T) {
	Convey("Given a batch of three qubit states", t, func() {
		ctx := context.Background()
		d := NewDispatcher(ctx, &Config{Workers: 1, BatchConcurrency: 3, EnableMetrics: true})

		states := make([]StateVector, 8)
		originals := make([]StateVector, len(states))
		for i := range states {
			states[i] = randomState(3, uint64(100+i))
			originals[i] = states[i].Clone()
		}

		ops, wires, params := randomCircuit(3, 20, 5)

		Convey("Every state is transformed as a single Apply would", func() {
			So(d.ApplyBatch(ctx, states, ops, wires, params, 3), ShouldBeNil)

			for i := range states {
				want, err := d.Apply(originals[i].Clone(), ops, wires, params, 3)
				So(err, ShouldBeNil)
				So(states[i], shouldApproximateState, want)
			}
		})

		Convey("An invalid sequence touches no state", func() {
			bad := append(append([]string{}, ops...), "Nope")
			badWires := append(append([][]int{}, wires...), []int{0})
			badParams := append(append([][]float64{}, params...), []float64{})

			err := d.ApplyBatch(ctx, states, bad, badWires, badParams, 3)
			So(errors.Is(err, ErrUnknownOperation), ShouldBeTrue)

			for i := range states {
				So(states[i], shouldApproximateState, originals[i])
			}
		})

		Convey("A state of the wrong size fails the batch", func() {
			states[4] = basisState(2, 0)
			err := d.ApplyBatch(ctx, states, ops, wires, params, 3)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "state 4")
		})

		Convey("A cancelled context is reported", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()

			err := d.ApplyBatch(cctx, states, ops, wires, params, 3)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})

		Convey("Bad qubit counts fail before any work", func() {
			So(errors.Is(d.ApplyBatch(ctx, states, ops, wires, params, 0), ErrInvalidArgument), ShouldBeTrue)
			So(errors.Is(d.ApplyBatch(ctx, states, ops, wires, params, 99), ErrUnsupportedSize), ShouldBeTrue)
		})

		Convey("The package-level helper uses the default dispatcher", func() {
			So(ApplyBatch(ctx, states[:2], ops, wires, params, 3), ShouldBeNil)
			So(states[2], shouldApproximateState, originals[2])
		})
	})
}
