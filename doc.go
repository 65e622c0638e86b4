/*
Package fabric implements the cycle-accurate core of a small crossbar
data-plane switch: N input ports, each backed by a bounded show-ahead
queue, feeding M output ports through fixed-priority arbitration.

The core is a deterministic, single-threaded transition function. Each
call to Core.Step consumes one input vector, advances the fabric by one
cycle and returns the resulting output vector. Data accepted in cycle k
is never visible at an output before cycle k+1: Step observes the state
committed at the end of the previous cycle, computes the outputs, and
only then commits this cycle's pushes and pops.

There is no fairness state. When several inputs target the same output
in the same cycle, the lowest-numbered input wins, every cycle, until
its queue drains or a lower-numbered contender appears.

*/
package fabric
