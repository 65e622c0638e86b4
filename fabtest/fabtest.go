// Package fabtest provides utility functions for testing switch
// fabrics, chiefly by comparing an implementation against a naive
// reference model under random traffic.
//
package fabtest

import (
	"math/rand"
	"testing"

	fabric "github.com/XhovaniM8/A-Very-Simple-Switch-Fabric"
)

// A Stepper is anything that behaves like a switch fabric core.
//
type Stepper interface {
	Step(in []fabric.In) []fabric.Out
	Reset()
	Inputs() int
	Outputs() int
}

// RefCore is a deliberately naive rendition of the fabric semantics:
// slice-backed queues, linear scans, fresh allocations every cycle. It
// exists only as a comparison oracle; keep it obvious, not fast.
//
type RefCore struct {
	inputs  int
	outputs int
	depth   int
	mask    uint64
	qs      [][]fabric.Flit
}

// NewRef returns a reference core with the given port counts, queue
// depth and payload width.
//
func NewRef(inputs, outputs, depth, width int) *RefCore {
	mask := ^uint64(0)
	if width < 64 {
		mask = 1<<uint(width) - 1
	}
	return &RefCore{
		inputs:  inputs,
		outputs: outputs,
		depth:   depth,
		mask:    mask,
		qs:      make([][]fabric.Flit, inputs),
	}
}

// Inputs implements Stepper.
func (r *RefCore) Inputs() int { return r.inputs }

// Outputs implements Stepper.
func (r *RefCore) Outputs() int { return r.outputs }

// Reset implements Stepper.
func (r *RefCore) Reset() {
	for i := range r.qs {
		r.qs[i] = nil
	}
}

// Step implements Stepper with the same observe/commit split as the
// real core: outputs reflect pre-cycle state, pushes land only in
// queues that were not full at the start of the cycle, winners pop.
//
func (r *RefCore) Step(in []fabric.In) []fabric.Out {
	full := make([]bool, r.inputs)
	for i, q := range r.qs {
		full[i] = len(q) == r.depth
	}

	out := make([]fabric.Out, r.outputs)
	winner := make([]int, r.outputs)
	for o := range winner {
		winner[o] = -1
		for i, q := range r.qs {
			if len(q) > 0 && q[0].Dest == o {
				winner[o] = i
				out[o] = fabric.Out{Valid: true, Data: q[0].Data}
				break
			}
		}
	}

	for i, port := range in {
		if port.Valid && !full[i] {
			r.qs[i] = append(r.qs[i], fabric.Flit{Data: port.Data & r.mask, Dest: port.Dest})
		}
	}
	for _, w := range winner {
		if w >= 0 {
			r.qs[w] = r.qs[w][1:]
		}
	}
	return out
}

// Compare drives a and b with the same random traffic for the given
// number of cycles and fails the test on the first cycle where their
// output vectors differ. Destinations are drawn from a range slightly
// wider than the output count so undeliverable heads get exercised
// too.
//
func Compare(t *testing.T, a, b Stepper, cycles int, seed int64) {
	t.Helper()
	if a.Inputs() != b.Inputs() || a.Outputs() != b.Outputs() {
		t.Fatalf("port count mismatch: %dx%d vs %dx%d",
			a.Inputs(), a.Outputs(), b.Inputs(), b.Outputs())
	}
	rng := rand.New(rand.NewSource(seed))
	in := make([]fabric.In, a.Inputs())
	for cycle := 0; cycle < cycles; cycle++ {
		for i := range in {
			in[i] = fabric.In{
				Valid: rng.Intn(2) == 0,
				Data:  rng.Uint64(),
				Dest:  rng.Intn(a.Outputs() + 2),
			}
		}
		oa := a.Step(in)
		ob := b.Step(in)
		for o := range oa {
			if oa[o] != ob[o] {
				t.Fatalf("seed %d cycle %d output %d: got %+v, reference %+v",
					seed, cycle, o, oa[o], ob[o])
			}
		}
	}
}
