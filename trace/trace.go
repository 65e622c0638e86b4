// Package trace records fabric activity. A Probe adapts any Recorder
// to the fabric's hook interface; recorders turn the event stream into
// a run signature, a JSON-lines log or a SQLite database.
//
package trace

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/sha3"

	fabric "github.com/XhovaniM8/A-Very-Simple-Switch-Fabric"
)

// Event kinds.
const (
	KindDeliver = "deliver"
	KindDrop    = "drop"
	KindStall   = "stall"
)

// An Event is one observable fabric occurrence.
//
// For deliveries, Port is the output port and Input the granted input.
// For drops and stalls, Input is the affected input port, Dest the
// flit's destination, and Port is unused.
//
type Event struct {
	Cycle uint64 `json:"cycle"`
	Kind  string `json:"kind"`
	Port  int    `json:"port"`
	Input int    `json:"input"`
	Data  uint64 `json:"data"`
	Dest  int    `json:"dest"`
}

// A Recorder consumes fabric events.
//
type Recorder interface {
	Record(ev Event) error
	Close() error
}

// A Probe feeds fabric hooks into a Recorder. Recorder errors are
// sticky: the first one is kept, later events are dropped, and Err
// reports it after the run.
//
type Probe struct {
	rec Recorder
	err error
}

// NewProbe returns a probe recording into rec.
//
func NewProbe(rec Recorder) *Probe {
	return &Probe{rec: rec}
}

// Err returns the first recorder error, or nil.
//
func (p *Probe) Err() error { return p.err }

func (p *Probe) record(ev Event) {
	if p.err != nil {
		return
	}
	p.err = p.rec.Record(ev)
}

// Deliver implements fabric.Probe.
func (p *Probe) Deliver(cycle uint64, out, in int, data uint64) {
	p.record(Event{Cycle: cycle, Kind: KindDeliver, Port: out, Input: in, Data: data})
}

// Drop implements fabric.Probe.
func (p *Probe) Drop(cycle uint64, in int, f fabric.Flit) {
	p.record(Event{Cycle: cycle, Kind: KindDrop, Input: in, Data: f.Data, Dest: f.Dest})
}

// Stall implements fabric.Probe.
func (p *Probe) Stall(cycle uint64, in int, f fabric.Flit) {
	p.record(Event{Cycle: cycle, Kind: KindStall, Input: in, Data: f.Data, Dest: f.Dest})
}

// Multi fans every event out to each recorder in turn, stopping at the
// first error.
//
type Multi []Recorder

// Record implements Recorder.
func (m Multi) Record(ev Event) error {
	for _, r := range m {
		if err := r.Record(ev); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every recorder, returning the first error.
func (m Multi) Close() error {
	var first error
	for _, r := range m {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// A Signature folds the event stream into a SHA3-256 digest. Two runs
// with identical traffic produce identical sums, so a single hex string
// stands in for a full expected-output listing in regression checks.
//
type Signature struct {
	h hash.Hash
}

// NewSignature returns an empty signature.
//
func NewSignature() *Signature {
	return &Signature{h: sha3.New256()}
}

// Record implements Recorder.
func (s *Signature) Record(ev Event) error {
	var buf [41]byte
	binary.LittleEndian.PutUint64(buf[0:], ev.Cycle)
	buf[8] = kindByte(ev.Kind)
	binary.LittleEndian.PutUint64(buf[9:], uint64(int64(ev.Port)))
	binary.LittleEndian.PutUint64(buf[17:], uint64(int64(ev.Input)))
	binary.LittleEndian.PutUint64(buf[25:], ev.Data)
	binary.LittleEndian.PutUint64(buf[33:], uint64(int64(ev.Dest)))
	s.h.Write(buf[:])
	return nil
}

func kindByte(kind string) byte {
	switch kind {
	case KindDeliver:
		return 'D'
	case KindDrop:
		return 'X'
	case KindStall:
		return 'S'
	}
	return '?'
}

// Close implements Recorder. It is a no-op.
func (s *Signature) Close() error { return nil }

// Sum returns the hex digest of everything recorded so far.
//
func (s *Signature) Sum() string {
	return hex.EncodeToString(s.h.Sum(nil))
}
