package lightning

import (
	"math"
	"math/cmplx"
)

// Kernel updates one gate sub-vector in place. Single-qubit kernels read and
// write v[0] (|0>) and v[1] (|1>); two-qubit kernels use all four entries.
type Kernel func(v *[4]complex128)

const invSqrt2 = complex(1/math.Sqrt2, 0)

var tPhase = cmplx.Rect(1, math.Pi/4)

func identity(*[4]complex128) {}

func pauliX(v *[4]complex128) {
	v[0], v[1] = v[1], v[0]
}

func pauliY(v *[4]complex128) {
	v[0], v[1] = -1i*v[1], 1i*v[0]
}

func pauliZ(v *[4]complex128) {
	v[1] = -v[1]
}

// H = 1/√2 * [1  1]
//
//	[1 -1]
func hadamard(v *[4]complex128) {
	a, b := v[0], v[1]
	v[0] = (a + b) * invSqrt2
	v[1] = (a - b) * invSqrt2
}

func sGate(v *[4]complex128) {
	v[1] *= 1i
}

func tGate(v *[4]complex128) {
	v[1] *= tPhase
}

func sqrtX(v *[4]complex128) {
	a, b := v[0], v[1]
	v[0] = 0.5 * ((1+1i)*a + (1-1i)*b)
	v[1] = 0.5 * ((1-1i)*a + (1+1i)*b)
}

func phaseShift(phi float64) Kernel {
	p := cmplx.Rect(1, phi)
	return func(v *[4]complex128) {
		v[1] *= p
	}
}

func rx(theta float64) Kernel {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return func(v *[4]complex128) {
		a, b := v[0], v[1]
		v[0] = c*a + js*b
		v[1] = js*a + c*b
	}
}

func ry(theta float64) Kernel {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return func(v *[4]complex128) {
		a, b := v[0], v[1]
		v[0] = c*a - s*b
		v[1] = s*a + c*b
	}
}

func rz(theta float64) Kernel {
	lo := cmplx.Rect(1, -theta/2)
	hi := cmplx.Rect(1, theta/2)
	return func(v *[4]complex128) {
		v[0] *= lo
		v[1] *= hi
	}
}

// rot is RZ(omega) RY(theta) RZ(phi).
func rot(phi, theta, omega float64) Kernel {
	c, s := math.Cos(theta/2), math.Sin(theta/2)
	m00 := cmplx.Rect(c, -(phi+omega)/2)
	m01 := -cmplx.Rect(s, (phi-omega)/2)
	m10 := cmplx.Rect(s, -(phi-omega)/2)
	m11 := cmplx.Rect(c, (phi+omega)/2)
	return func(v *[4]complex128) {
		a, b := v[0], v[1]
		v[0] = m00*a + m01*b
		v[1] = m10*a + m11*b
	}
}

func swap(v *[4]complex128) {
	v[1], v[2] = v[2], v[1]
}
