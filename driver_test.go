package fabric_test

import (
	"testing"

	fabric "github.com/XhovaniM8/A-Very-Simple-Switch-Fabric"
)

func TestDriver(t *testing.T) {
	c, err := fabric.New(fabric.Config{DataWidth: 32, Inputs: 2, Outputs: 2})
	if err != nil {
		t.Fatal(err)
	}
	d := fabric.NewDriver(c)

	// input 0 sends its cycle number to output 1 for the first 3 cycles
	d.BindSource(0, func(cycle uint64) fabric.In {
		if cycle < 3 {
			return fabric.In{Valid: true, Data: cycle, Dest: 1}
		}
		return fabric.In{}
	})
	var got []uint64
	d.BindSink(1, func(cycle uint64, out fabric.Out) {
		if out.Valid {
			got = append(got, out.Data)
		}
	})
	// output 0 is unbound, input 1 is unbound: both must be harmless
	d.Run(6)

	want := []uint64{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("delivered %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivered %v; want %v", got, want)
		}
	}
}

func TestDriver_reset(t *testing.T) {
	c, err := fabric.New(fabric.Config{DataWidth: 8, Inputs: 1, Outputs: 1})
	if err != nil {
		t.Fatal(err)
	}
	d := fabric.NewDriver(c)
	d.BindSource(0, func(cycle uint64) fabric.In {
		return fabric.In{Valid: true, Data: 1, Dest: 0}
	})
	d.Run(4)
	d.Reset()
	if c.Cycle() != 0 || c.QueueLen(0) != 0 {
		t.Errorf("cycle %d, queue %d after reset; want 0, 0", c.Cycle(), c.QueueLen(0))
	}

	// bindings survive reset
	fired := false
	d.BindSink(0, func(cycle uint64, out fabric.Out) { fired = fired || out.Valid })
	d.Run(2)
	if !fired {
		t.Error("sink never saw a valid output after reset")
	}
}
