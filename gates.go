package lightning

import (
	"fmt"
	"sort"
)

/*
Gate describes one entry of the kernel library: how many wires and parameters
the operation takes, and how to turn its parameters into a Kernel.

Controlled gates list two wires, control first. Their Kernel is the
single-qubit kernel of the target, applied only where the control bit is 1.
*/
type Gate struct {
	Name       string
	Wires      int
	Params     int
	Controlled bool

	id   int
	bind func(params []float64) Kernel
}

// Kernel binds params, which must already have the gate's arity.
func (g *Gate) Kernel(params []float64) Kernel {
	return g.bind(params)
}

func fixed(k Kernel) func([]float64) Kernel {
	return func([]float64) Kernel { return k }
}

func oneParam(f func(float64) Kernel) func([]float64) Kernel {
	return func(p []float64) Kernel { return f(p[0]) }
}

func threeParams(f func(float64, float64, float64) Kernel) func([]float64) Kernel {
	return func(p []float64) Kernel { return f(p[0], p[1], p[2]) }
}

var library = []*Gate{
	{Name: "Identity", Wires: 1, bind: fixed(identity)},
	{Name: "PauliX", Wires: 1, bind: fixed(pauliX)},
	{Name: "PauliY", Wires: 1, bind: fixed(pauliY)},
	{Name: "PauliZ", Wires: 1, bind: fixed(pauliZ)},
	{Name: "Hadamard", Wires: 1, bind: fixed(hadamard)},
	{Name: "S", Wires: 1, bind: fixed(sGate)},
	{Name: "T", Wires: 1, bind: fixed(tGate)},
	{Name: "SX", Wires: 1, bind: fixed(sqrtX)},
	{Name: "PhaseShift", Wires: 1, Params: 1, bind: oneParam(phaseShift)},
	{Name: "RX", Wires: 1, Params: 1, bind: oneParam(rx)},
	{Name: "RY", Wires: 1, Params: 1, bind: oneParam(ry)},
	{Name: "RZ", Wires: 1, Params: 1, bind: oneParam(rz)},
	{Name: "Rot", Wires: 1, Params: 3, bind: threeParams(rot)},
	{Name: "SWAP", Wires: 2, bind: fixed(swap)},
	{Name: "CNOT", Wires: 2, Controlled: true, bind: fixed(pauliX)},
	{Name: "CY", Wires: 2, Controlled: true, bind: fixed(pauliY)},
	{Name: "CZ", Wires: 2, Controlled: true, bind: fixed(pauliZ)},
	{Name: "ControlledPhaseShift", Wires: 2, Params: 1, Controlled: true, bind: oneParam(phaseShift)},
	{Name: "CRX", Wires: 2, Params: 1, Controlled: true, bind: oneParam(rx)},
	{Name: "CRY", Wires: 2, Params: 1, Controlled: true, bind: oneParam(ry)},
	{Name: "CRZ", Wires: 2, Params: 1, Controlled: true, bind: oneParam(rz)},
	{Name: "CRot", Wires: 2, Params: 3, Controlled: true, bind: threeParams(rot)},
}

var gates = func() map[string]*Gate {
	m := make(map[string]*Gate, len(library))
	for i, g := range library {
		g.id = i
		m[g.Name] = g
	}
	return m
}()

// Lookup resolves an operation name to its gate.
func Lookup(name string) (*Gate, error) {
	g, ok := gates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return g, nil
}

// Gates returns the supported operation names in sorted order.
func Gates() []string {
	names := make([]string, 0, len(library))
	for _, g := range library {
		names = append(names, g.Name)
	}
	sort.Strings(names)
	return names
}
