package fabric

// A Source supplies one input port's stimulus for the given cycle.
//
type Source func(cycle uint64) In

// A Sink consumes one output port's result for the given cycle.
//
type Sink func(cycle uint64, out Out)

// A Driver clocks a Core. It gathers one In per input port from bound
// sources, calls Step exactly once per tick, and hands each output to
// its bound sink. Unbound sources act as always-idle ports; unbound
// sinks discard their output.
//
// The zero tick count after construction matches the core's cycle
// counter only if the driver owns every Step call; do not mix direct
// Step calls with driver ticks.
//
type Driver struct {
	core  *Core
	srcs  []Source
	sinks []Sink
	in    []In
}

// NewDriver returns a driver for core with no sources or sinks bound.
//
func NewDriver(core *Core) *Driver {
	return &Driver{
		core:  core,
		srcs:  make([]Source, core.Inputs()),
		sinks: make([]Sink, core.Outputs()),
		in:    make([]In, core.Inputs()),
	}
}

// BindSource attaches s to input port i. It panics if i is not a valid
// input port.
//
func (d *Driver) BindSource(i int, s Source) {
	d.srcs[i] = s
}

// BindSink attaches s to output port o. It panics if o is not a valid
// output port.
//
func (d *Driver) BindSink(o int, s Sink) {
	d.sinks[o] = s
}

// Tick advances the fabric by one cycle: sources are sampled, the core
// steps, sinks observe the outputs.
//
func (d *Driver) Tick() {
	cycle := d.core.Cycle()
	for i, s := range d.srcs {
		if s != nil {
			d.in[i] = s(cycle)
		} else {
			d.in[i] = In{}
		}
	}
	out := d.core.Step(d.in)
	for o, s := range d.sinks {
		if s != nil {
			s(cycle, out[o])
		}
	}
}

// Run ticks the driver n times.
//
func (d *Driver) Run(n int) {
	for ; n > 0; n-- {
		d.Tick()
	}
}

// Reset resets the core. Bindings survive a reset.
//
func (d *Driver) Reset() {
	d.core.Reset()
}
