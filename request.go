package fabric

// A RequestMatrix maps each output port to the set of input ports whose
// head flit targets it. It is a transient, per-cycle structure: the
// core clears and rebuilds it from the queue heads on every Step, so it
// carries no state from one cycle to the next.
//
// Requester sets are kept sorted by construction: inputs are added in
// ascending port order, which is what lets FixedPriority grant the
// first entry without searching.
//
type RequestMatrix struct {
	reqs [][]int
}

// NewRequestMatrix returns an empty matrix for the given output count.
//
func NewRequestMatrix(outputs int) *RequestMatrix {
	return &RequestMatrix{reqs: make([][]int, outputs)}
}

// Clear empties every requester set, keeping the underlying storage for
// reuse by the next cycle.
//
func (m *RequestMatrix) Clear() {
	for o := range m.reqs {
		m.reqs[o] = m.reqs[o][:0]
	}
}

// Add records input port in as a requester of output port out.
// Destinations outside [0, outputs) are ignored: an out-of-range head
// never generates a request.
//
func (m *RequestMatrix) Add(out, in int) {
	if out < 0 || out >= len(m.reqs) {
		return
	}
	m.reqs[out] = append(m.reqs[out], in)
}

// Requesters returns the input ports requesting output port out, in
// ascending order. The slice is owned by the matrix and valid until the
// next Clear.
//
func (m *RequestMatrix) Requesters(out int) []int {
	return m.reqs[out]
}
