package lightning

/*
partition splits the 2^N basis indices into groups that differ only in the
bits of an operation's wires. A group is addressed by its index g in
[0, 2^(N-k)): expanding g with a zero bit at every target bit position gives
the group base, and adding offsets[j] to the base gives the amplitude that
sits at local index j of the gate's sub-vector.

Local indices order the wires as the operation lists them, first wire most
significant, so offsets[2] of a two-wire gate on [c, t] is the amplitude with
c=1 and t=0.

lanes selects which local indices a kernel sees. For plain gates that is all
of them; controlled gates only see the control=1 half.
*/
type partition struct {
	k       int
	groups  int
	offsets [4]int
	holes   [2]uint
	lanes   [4]int
	width   int
}

func newPartition(masks *[MaxQubits]int, qubits int, wires []int, controlled bool) partition {
	p := partition{
		k:      len(wires),
		groups: 1 << (qubits - len(wires)),
	}

	size := 1 << p.k
	for j := 0; j < size; j++ {
		off := 0
		for i, w := range wires {
			if (j>>(p.k-1-i))&1 == 1 {
				off |= masks[w]
			}
		}
		p.offsets[j] = off
	}

	for i, w := range wires {
		p.holes[i] = uint(qubits - 1 - w)
	}
	if p.k == 2 && p.holes[0] > p.holes[1] {
		p.holes[0], p.holes[1] = p.holes[1], p.holes[0]
	}

	if controlled {
		p.lanes[0], p.lanes[1] = p.offsets[size-2], p.offsets[size-1]
		p.width = 2
		return p
	}

	copy(p.lanes[:], p.offsets[:size])
	p.width = size
	return p
}

// base inserts a zero bit at every hole, lowest hole first.
func (p *partition) base(g int) int {
	for i := 0; i < p.k; i++ {
		low := g & (1<<p.holes[i] - 1)
		g = (g^low)<<1 | low
	}
	return g
}

// apply runs kernel over the groups in [lo, hi). Strips never share an
// amplitude, so disjoint ranges may run concurrently.
func (p *partition) apply(state []complex128, kernel Kernel, lo, hi int) {
	var v [4]complex128

	switch p.width {
	case 2:
		l0, l1 := p.lanes[0], p.lanes[1]
		for g := lo; g < hi; g++ {
			b := p.base(g)
			v[0], v[1] = state[b+l0], state[b+l1]
			kernel(&v)
			state[b+l0], state[b+l1] = v[0], v[1]
		}
	default:
		for g := lo; g < hi; g++ {
			b := p.base(g)
			for j := 0; j < p.width; j++ {
				v[j] = state[b+p.lanes[j]]
			}
			kernel(&v)
			for j := 0; j < p.width; j++ {
				state[b+p.lanes[j]] = v[j]
			}
		}
	}
}
