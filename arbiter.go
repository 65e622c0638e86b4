package fabric

// An Arbiter selects at most one winner among the inputs requesting an
// output port. The requesters slice is sorted in ascending port order
// and must not be retained. An arbiter must be a pure function of its
// argument: the core re-runs it every cycle and expects identical
// answers for identical request sets.
//
type Arbiter func(requesters []int) (winner int, ok bool)

// FixedPriority grants the lowest-numbered requester. There is no
// fairness memory and no starvation protection: a persistent low port
// shuts out every port above it. The guarantee is determinism, nothing
// more.
//
func FixedPriority(requesters []int) (int, bool) {
	if len(requesters) == 0 {
		return 0, false
	}
	return requesters[0], true
}
