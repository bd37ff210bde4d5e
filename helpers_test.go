package lightning

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
)

const tolerance = 1e-9

var approxComplex = cmp.Comparer(func(a, b complex128) bool {
	return cmplx.Abs(a-b) <= tolerance
})

func asAmplitudes(v interface{}) ([]complex128, bool) {
	switch s := v.(type) {
	case StateVector:
		return []complex128(s), true
	case []complex128:
		return s, true
	default:
		return nil, false
	}
}

// shouldApproximateState compares two statevectors amplitude by amplitude.
func shouldApproximateState(actual interface{}, expected ...interface{}) string {
	if len(expected) != 1 {
		return "shouldApproximateState takes exactly one expected statevector"
	}

	got, ok := asAmplitudes(actual)
	want, ok2 := asAmplitudes(expected[0])
	if !ok || !ok2 {
		return fmt.Sprintf("shouldApproximateState needs statevectors, got %T and %T", actual, expected[0])
	}

	if cmp.Equal(got, want, approxComplex) {
		return ""
	}

	return fmt.Sprintf(
		"statevectors differ (-want +got):\n%s\ngot:\n%swant:\n%s",
		cmp.Diff(want, got, approxComplex), spew.Sdump(got), spew.Sdump(want),
	)
}

// shouldNotApproximateState is the negation of shouldApproximateState.
func shouldNotApproximateState(actual interface{}, expected ...interface{}) string {
	if shouldApproximateState(actual, expected...) == "" {
		return "expected statevectors to differ, but they match:\n" + spew.Sdump(actual)
	}
	return ""
}

// randomState returns a unit-norm statevector with a fixed seed.
func randomState(qubits int, seed uint64) StateVector {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	sv := make(StateVector, 1<<qubits)

	norm := 0.0
	for i := range sv {
		sv[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		norm += real(sv[i] * cmplx.Conj(sv[i]))
	}

	scale := complex(1/math.Sqrt(norm), 0)
	for i := range sv {
		sv[i] *= scale
	}
	return sv
}

func basisState(qubits, index int) StateVector {
	sv := make(StateVector, 1<<qubits)
	sv[index] = 1
	return sv
}

// applyDense multiplies a 2^k x 2^k matrix into state on wires by brute
// force over every basis index, wire 0 most significant.
func applyDense(state StateVector, qubits int, wires []int, m [][]complex128) StateVector {
	k := len(wires)
	out := make(StateVector, len(state))

	for i := range state {
		row := 0
		for _, w := range wires {
			row = row<<1 | (i>>(qubits-1-w))&1
		}

		for col := 0; col < 1<<k; col++ {
			j := i
			for t, w := range wires {
				mask := 1 << (qubits - 1 - w)
				if (col>>(k-1-t))&1 == 1 {
					j |= mask
				} else {
					j &^= mask
				}
			}
			out[i] += m[row][col] * state[j]
		}
	}

	return out
}

func controlledMatrix(u [][]complex128) [][]complex128 {
	return [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, u[0][0], u[0][1]},
		{0, 0, u[1][0], u[1][1]},
	}
}

func rotMatrix(phi, theta, omega float64) [][]complex128 {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	return [][]complex128{
		{cmplx.Exp(complex(0, -(phi+omega)/2)) * complex(c, 0), -cmplx.Exp(complex(0, (phi-omega)/2)) * complex(s, 0)},
		{cmplx.Exp(complex(0, -(phi-omega)/2)) * complex(s, 0), cmplx.Exp(complex(0, (phi+omega)/2)) * complex(c, 0)},
	}
}

// denseMatrices is an independent, textbook rendition of every gate.
var denseMatrices = map[string]func(p []float64) [][]complex128{
	"Identity": func([]float64) [][]complex128 { return [][]complex128{{1, 0}, {0, 1}} },
	"PauliX":   func([]float64) [][]complex128 { return [][]complex128{{0, 1}, {1, 0}} },
	"PauliY":   func([]float64) [][]complex128 { return [][]complex128{{0, -1i}, {1i, 0}} },
	"PauliZ":   func([]float64) [][]complex128 { return [][]complex128{{1, 0}, {0, -1}} },
	"Hadamard": func([]float64) [][]complex128 {
		h := complex(1/math.Sqrt2, 0)
		return [][]complex128{{h, h}, {h, -h}}
	},
	"S": func([]float64) [][]complex128 { return [][]complex128{{1, 0}, {0, 1i}} },
	"T": func([]float64) [][]complex128 {
		return [][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
	},
	"SX": func([]float64) [][]complex128 {
		return [][]complex128{{0.5 + 0.5i, 0.5 - 0.5i}, {0.5 - 0.5i, 0.5 + 0.5i}}
	},
	"PhaseShift": func(p []float64) [][]complex128 {
		return [][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, p[0]))}}
	},
	"RX": func(p []float64) [][]complex128 {
		c, s := complex(math.Cos(p[0]/2), 0), complex(math.Sin(p[0]/2), 0)
		return [][]complex128{{c, -1i * s}, {-1i * s, c}}
	},
	"RY": func(p []float64) [][]complex128 {
		c, s := complex(math.Cos(p[0]/2), 0), complex(math.Sin(p[0]/2), 0)
		return [][]complex128{{c, -s}, {s, c}}
	},
	"RZ": func(p []float64) [][]complex128 {
		return [][]complex128{{cmplx.Exp(complex(0, -p[0]/2)), 0}, {0, cmplx.Exp(complex(0, p[0]/2))}}
	},
	"Rot": func(p []float64) [][]complex128 { return rotMatrix(p[0], p[1], p[2]) },
	"SWAP": func([]float64) [][]complex128 {
		return [][]complex128{{1, 0, 0, 0}, {0, 0, 1, 0}, {0, 1, 0, 0}, {0, 0, 0, 1}}
	},
}

func init() {
	for name, target := range map[string]string{
		"CNOT":                 "PauliX",
		"CY":                   "PauliY",
		"CZ":                   "PauliZ",
		"ControlledPhaseShift": "PhaseShift",
		"CRX":                  "RX",
		"CRY":                  "RY",
		"CRZ":                  "RZ",
		"CRot":                 "Rot",
	} {
		single := denseMatrices[target]
		denseMatrices[name] = func(p []float64) [][]complex128 {
			return controlledMatrix(single(p))
		}
	}
}

// randomCircuit draws length operations from the whole gate library with
// distinct random wires and random angles.
func randomCircuit(qubits, length int, seed uint64) ([]string, [][]int, [][]float64) {
	rng := rand.New(rand.NewPCG(seed, seed+1))

	var candidates []*Gate
	for _, g := range library {
		if g.Wires <= qubits {
			candidates = append(candidates, g)
		}
	}

	ops := make([]string, length)
	wires := make([][]int, length)
	params := make([][]float64, length)

	for i := range ops {
		g := candidates[rng.IntN(len(candidates))]
		ops[i] = g.Name
		wires[i] = rng.Perm(qubits)[:g.Wires]
		params[i] = make([]float64, g.Params)
		for j := range params[i] {
			params[i][j] = (rng.Float64()*2 - 1) * math.Pi
		}
	}

	return ops, wires, params
}
