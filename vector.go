package fabric

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Stimulus is a parsed per-cycle input schedule: one full input
// vector per cycle, ready to feed to Core.Step.
//
type Stimulus [][]In

// ParseStimulus parses a textual stimulus for a fabric with the given
// input count. The format is one cycle per line:
//
//	# comment, blank lines and "-" lines are idle cycles
//	-
//	0>3:0xdeadbeef 2>0:42
//
// Each whitespace-separated item is port>dest:data, with data in any
// base accepted by strconv (0x prefix for hex). Ports must be unique
// within a line and in [0, inputs).
//
func ParseStimulus(src string, inputs int) (Stimulus, error) {
	var st Stimulus
	for ln, line := range strings.Split(src, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		vec := make([]In, inputs)
		if len(fields) == 1 && fields[0] == "-" {
			st = append(st, vec)
			continue
		}
		for _, f := range fields {
			port, dest, data, err := parseItem(f)
			if err != nil {
				return nil, errors.Wrapf(err, "stimulus line %d", ln+1)
			}
			if port < 0 || port >= inputs {
				return nil, errors.Errorf("stimulus line %d: port %d out of range [0, %d)", ln+1, port, inputs)
			}
			if vec[port].Valid {
				return nil, errors.Errorf("stimulus line %d: port %d driven twice", ln+1, port)
			}
			vec[port] = In{Valid: true, Data: data, Dest: dest}
		}
		st = append(st, vec)
	}
	return st, nil
}

func parseItem(s string) (port, dest int, data uint64, err error) {
	g := strings.IndexByte(s, '>')
	c := strings.IndexByte(s, ':')
	if g <= 0 || c <= g+1 || c == len(s)-1 {
		return 0, 0, 0, errors.Errorf("item %q: want port>dest:data", s)
	}
	if port, err = strconv.Atoi(s[:g]); err != nil {
		return 0, 0, 0, errors.Errorf("item %q: bad port", s)
	}
	if dest, err = strconv.Atoi(s[g+1 : c]); err != nil {
		return 0, 0, 0, errors.Errorf("item %q: bad destination", s)
	}
	if data, err = strconv.ParseUint(s[c+1:], 0, 64); err != nil {
		return 0, 0, 0, errors.Errorf("item %q: bad data", s)
	}
	return port, dest, data, nil
}

// Run feeds the stimulus to c cycle by cycle, calling fn (if non-nil)
// with each cycle's output vector. It then runs drain extra idle cycles
// so queued flits can reach their outputs.
//
func (st Stimulus) Run(c *Core, drain int, fn func(cycle uint64, out []Out)) {
	idle := make([]In, c.Inputs())
	for _, vec := range st {
		cycle := c.Cycle()
		out := c.Step(vec)
		if fn != nil {
			fn(cycle, out)
		}
	}
	for ; drain > 0; drain-- {
		cycle := c.Cycle()
		out := c.Step(idle)
		if fn != nil {
			fn(cycle, out)
		}
	}
}
