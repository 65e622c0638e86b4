package fabtest_test

import (
	"testing"
	"time"

	fabric "github.com/XhovaniM8/A-Very-Simple-Switch-Fabric"
	"github.com/XhovaniM8/A-Very-Simple-Switch-Fabric/fabtest"
)

// The reference model must itself honor the one-cycle latency contract
// before it is any use as an oracle.
func TestRefCore_latency(t *testing.T) {
	r := fabtest.NewRef(2, 2, 16, 64)
	in := make([]fabric.In, 2)
	in[0] = fabric.In{Valid: true, Data: 99, Dest: 1}
	out := r.Step(in)
	if out[1].Valid {
		t.Fatal("reference model delivered in the push cycle")
	}
	out = r.Step(make([]fabric.In, 2))
	if !out[1].Valid || out[1].Data != 99 {
		t.Fatalf("output 1 = %+v; want valid 99", out[1])
	}
	out = r.Step(make([]fabric.In, 2))
	if out[1].Valid {
		t.Fatal("output valid for more than one cycle")
	}
}

func TestCompare_randomTraffic(t *testing.T) {
	seed := time.Now().UnixNano()
	td := []struct {
		name                   string
		inputs, outputs, depth int
		width                  int
	}{
		{"8x8 reference sizing", 8, 8, 16, 64},
		{"narrow 2x2", 2, 2, 2, 8},
		{"asymmetric 4x2", 4, 2, 3, 16},
		{"asymmetric 2x6", 2, 6, 16, 48},
		{"single port", 1, 1, 1, 1},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			c, err := fabric.New(fabric.Config{
				DataWidth: d.width,
				Inputs:    d.inputs,
				Outputs:   d.outputs,
				Depth:     d.depth,
			})
			if err != nil {
				t.Fatal(err)
			}
			ref := fabtest.NewRef(d.inputs, d.outputs, d.depth, d.width)
			fabtest.Compare(t, c, ref, 5000, seed)
		})
	}
}
