package lightning

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
)

// StateVector holds one complex amplitude per computational basis state.
// Wire 0 is the most-significant bit of the basis index.
type StateVector []complex128

// NewStateVector returns |0...0> for the given number of qubits.
func NewStateVector(qubits int) (StateVector, error) {
	if qubits <= 0 {
		return nil, fmt.Errorf("%w: must specify one or more qubits", ErrInvalidArgument)
	}
	if qubits > MaxQubits {
		return nil, fmt.Errorf("%w: no support for %d > %d qubits", ErrUnsupportedSize, qubits, MaxQubits)
	}

	sv := make(StateVector, 1<<qubits)
	sv[0] = 1
	return sv, nil
}

// Qubits derives the qubit count from the vector length.
func (sv StateVector) Qubits() (int, error) {
	n := len(sv)
	if n < 2 || n&(n-1) != 0 {
		return 0, fmt.Errorf("%w: statevector length %d is not a power of two", ErrInvalidArgument, n)
	}
	return bits.TrailingZeros(uint(n)), nil
}

func (sv StateVector) Clone() StateVector {
	out := make(StateVector, len(sv))
	copy(out, sv)
	return out
}

// Norm is the Euclidean norm of the amplitudes. No normalisation is ever
// applied by the engine, so this is how callers check for drift.
func (sv StateVector) Norm() float64 {
	sum := 0.0
	for _, amp := range sv {
		re, im := real(amp), imag(amp)
		sum += re*re + im*im
	}
	return math.Sqrt(sum)
}

// Inner returns <sv|other>.
func (sv StateVector) Inner(other StateVector) (complex128, error) {
	if len(sv) != len(other) {
		return 0, fmt.Errorf("%w: inner product of lengths %d and %d", ErrInvalidArgument, len(sv), len(other))
	}

	var sum complex128
	for i, amp := range sv {
		sum += cmplx.Conj(amp) * other[i]
	}
	return sum, nil
}
