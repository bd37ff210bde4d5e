package lightning

import "fmt"

// Operation is one named gate with its wires and parameters.
type Operation struct {
	Name   string
	Wires  []int
	Params []float64
}

func (op Operation) String() string {
	if len(op.Params) == 0 {
		return fmt.Sprintf("%s%v", op.Name, op.Wires)
	}
	return fmt.Sprintf("%s%v%v", op.Name, op.Wires, op.Params)
}

// NewOperations zips parallel name, wire and parameter lists into Operations.
func NewOperations(ops []string, wires [][]int, params [][]float64) ([]Operation, error) {
	if len(ops) != len(wires) || len(ops) != len(params) {
		return nil, fmt.Errorf(
			"%w: %d ops, %d wire lists, %d parameter lists",
			ErrLengthMismatch, len(ops), len(wires), len(params),
		)
	}

	out := make([]Operation, len(ops))
	for i, name := range ops {
		out[i] = Operation{Name: name, Wires: wires[i], Params: params[i]}
	}
	return out, nil
}
