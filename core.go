package fabric

import (
	"github.com/pkg/errors"
)

// DefaultDepth is the per-input queue capacity used when Config.Depth
// is left zero.
const DefaultDepth = 16

// A Flit is the unit of transfer through the fabric: a payload of up to
// 64 bits and the output port it is addressed to.
type Flit struct {
	Data uint64
	Dest int
}

// In is one input port's stimulus for a single cycle. A zero In is an
// idle port.
type In struct {
	Valid bool
	Data  uint64
	Dest  int
}

// Out is one output port's result for a single cycle. It is valid for
// that cycle only and must be consumed before the next Step.
type Out struct {
	Valid bool
	Data  uint64
}

// Config carries the construction parameters of a Core. All of them are
// fixed for the life of the core; there is no runtime reconfiguration.
//
type Config struct {
	// DataWidth is the payload width in bits, 1 to 64. Pushed data is
	// truncated to this width the way a hardware port would.
	DataWidth int
	// Inputs and Outputs are the port counts N and M.
	Inputs  int
	Outputs int
	// Depth is the per-input queue capacity, identical across inputs.
	// Zero selects DefaultDepth.
	Depth int
	// Arbiter resolves per-output contention. Nil selects
	// FixedPriority.
	Arbiter Arbiter
}

// A Probe observes fabric events as they are committed. All methods are
// called from within Step, on the goroutine calling Step; they must not
// touch the core.
//
type Probe interface {
	// Deliver reports that input port in's head flit was granted
	// output port out this cycle.
	Deliver(cycle uint64, out, in int, data uint64)
	// Drop reports that input port in's incoming flit was rejected
	// because its queue was full at the start of the cycle.
	Drop(cycle uint64, in int, f Flit)
	// Stall reports that input port in's head flit targets a
	// nonexistent output and is blocking the queue behind it. It fires
	// every cycle the condition persists.
	Stall(cycle uint64, in int, f Flit)
}

// Core is the switch fabric state machine. It owns one bounded queue
// per input port and nothing else; all other per-cycle structures are
// transient. A Core is not safe for concurrent use: Step must not be
// re-entered before the previous call returns.
//
type Core struct {
	cfg   Config
	mask  uint64
	qs    []*Queue[Flit]
	reqs  *RequestMatrix
	win   []int // winner per output, -1 for none, transient
	full  []bool
	out   []Out
	cycle uint64
	probe Probe
}

// New builds a Core from cfg. Malformed parameters are a configuration
// error and are rejected here, before any Step.
//
func New(cfg Config) (*Core, error) {
	if cfg.Inputs <= 0 {
		return nil, errors.Errorf("fabric: input count %d, must be > 0", cfg.Inputs)
	}
	if cfg.Outputs <= 0 {
		return nil, errors.Errorf("fabric: output count %d, must be > 0", cfg.Outputs)
	}
	if cfg.DataWidth < 1 || cfg.DataWidth > 64 {
		return nil, errors.Errorf("fabric: data width %d bits, must be 1..64", cfg.DataWidth)
	}
	if cfg.Depth == 0 {
		cfg.Depth = DefaultDepth
	}
	if cfg.Depth < 0 {
		return nil, errors.Errorf("fabric: queue depth %d, must be > 0", cfg.Depth)
	}
	if cfg.Arbiter == nil {
		cfg.Arbiter = FixedPriority
	}

	c := &Core{
		cfg:  cfg,
		mask: widthMask(cfg.DataWidth),
		qs:   make([]*Queue[Flit], cfg.Inputs),
		reqs: NewRequestMatrix(cfg.Outputs),
		win:  make([]int, cfg.Outputs),
		full: make([]bool, cfg.Inputs),
		out:  make([]Out, cfg.Outputs),
	}
	for i := range c.qs {
		c.qs[i] = NewQueue[Flit](cfg.Depth)
	}
	return c, nil
}

func widthMask(bits int) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(bits) - 1
}

// Inputs returns the input port count N.
func (c *Core) Inputs() int { return c.cfg.Inputs }

// Outputs returns the output port count M.
func (c *Core) Outputs() int { return c.cfg.Outputs }

// Depth returns the per-input queue capacity.
func (c *Core) Depth() int { return c.cfg.Depth }

// Cycle returns the number of completed Step calls since construction
// or the last Reset.
func (c *Core) Cycle() uint64 { return c.cycle }

// QueueLen returns the occupancy of input port i's queue.
func (c *Core) QueueLen(i int) int { return c.qs[i].Len() }

// Attach sets the probe notified of fabric events. A nil probe detaches.
func (c *Core) Attach(p Probe) { c.probe = p }

// Step advances the fabric by one cycle. in supplies at most one entry
// per input port; missing trailing ports default to idle. Step panics
// if in is longer than the input count.
//
// The returned slice is owned by the core and valid until the next
// Step: outputs are a one-cycle signal, not a buffer.
//
// Step runs in two phases. The observe phase reads only state committed
// by previous cycles: it peeks every queue head, builds the request
// matrix, arbitrates, and fills the output vector from the winners'
// head flits. The commit phase then applies this cycle's effects, which
// become observable from the next cycle on: valid inputs are pushed
// into queues that were not full at the start of the cycle (a push
// against a full queue is silently dropped), and each winner's queue is
// popped.
//
func (c *Core) Step(in []In) []Out {
	if len(in) > c.cfg.Inputs {
		panic("fabric: input vector longer than input port count")
	}

	// observe
	c.reqs.Clear()
	for i, q := range c.qs {
		c.full[i] = q.Full()
		f, ok := q.Peek()
		if !ok {
			continue
		}
		if f.Dest < 0 || f.Dest >= c.cfg.Outputs {
			if c.probe != nil {
				c.probe.Stall(c.cycle, i, f)
			}
			continue
		}
		c.reqs.Add(f.Dest, i)
	}
	for o := range c.out {
		w, ok := c.cfg.Arbiter(c.reqs.Requesters(o))
		if !ok {
			c.win[o] = -1
			c.out[o] = Out{}
			continue
		}
		f, _ := c.qs[w].Peek()
		c.win[o] = w
		c.out[o] = Out{Valid: true, Data: f.Data}
	}

	// commit
	for i, port := range in {
		if !port.Valid {
			continue
		}
		f := Flit{Data: port.Data & c.mask, Dest: port.Dest}
		if c.full[i] {
			if c.probe != nil {
				c.probe.Drop(c.cycle, i, f)
			}
			continue
		}
		c.qs[i].TryPush(f)
	}
	for o, w := range c.win {
		if w < 0 {
			continue
		}
		c.qs[w].TryPop()
		if c.probe != nil {
			c.probe.Deliver(c.cycle, o, w, c.out[o].Data)
		}
	}

	c.cycle++
	return c.out
}

// Reset empties every queue and invalidates the output vector. The
// core's construction parameters are untouched; after Reset the fabric
// behaves exactly like a freshly built one.
//
func (c *Core) Reset() {
	for _, q := range c.qs {
		q.Reset()
	}
	for o := range c.out {
		c.out[o] = Out{}
	}
	c.cycle = 0
}
