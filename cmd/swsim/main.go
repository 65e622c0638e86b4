// Command swsim runs a stimulus file through a switch fabric core and
// logs what comes out of the output ports.
//
// Stimulus is the textual format of fabric.ParseStimulus, or a JSON
// document with -json:
//
//	{"cycles": [[{"port": 0, "dest": 3, "data": 1234}], []]}
//
// With -db the full event trace (deliveries, drops, stalls) is recorded
// to a SQLite database; with -sig a SHA3-256 run signature is printed,
// which is enough to compare two runs without diffing logs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	fabric "github.com/XhovaniM8/A-Very-Simple-Switch-Fabric"
	"github.com/XhovaniM8/A-Very-Simple-Switch-Fabric/trace"
	"github.com/sugawarayuuta/sonnet"
)

var (
	inputs   = flag.Int("n", 8, "input port count")
	outputs  = flag.Int("m", 8, "output port count")
	width    = flag.Int("w", 64, "payload width in bits")
	depth    = flag.Int("c", fabric.DefaultDepth, "per-input queue depth")
	jsonStim = flag.Bool("json", false, "stimulus file is JSON")
	drain    = flag.Int("drain", 32, "idle cycles appended after the stimulus")
	dbPath   = flag.String("db", "", "record event trace to this SQLite database")
	sig      = flag.Bool("sig", false, "print the SHA3-256 run signature")
	events   = flag.Bool("events", false, "log the event trace as JSON lines on stderr")
)

type stimIn struct {
	Port int    `json:"port"`
	Dest int    `json:"dest"`
	Data uint64 `json:"data"`
}

type stimFile struct {
	Cycles [][]stimIn `json:"cycles"`
}

func loadStimulus(r io.Reader, n int) (fabric.Stimulus, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !*jsonStim {
		return fabric.ParseStimulus(string(src), n)
	}
	var f stimFile
	if err := sonnet.Unmarshal(src, &f); err != nil {
		return nil, err
	}
	st := make(fabric.Stimulus, len(f.Cycles))
	for c, items := range f.Cycles {
		vec := make([]fabric.In, n)
		for _, it := range items {
			if it.Port < 0 || it.Port >= n {
				return nil, fmt.Errorf("cycle %d: port %d out of range [0, %d)", c, it.Port, n)
			}
			vec[it.Port] = fabric.In{Valid: true, Data: it.Data, Dest: it.Dest}
		}
		st[c] = vec
	}
	return st, nil
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	in := io.Reader(os.Stdin)
	if name := flag.Arg(0); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	core, err := fabric.New(fabric.Config{
		DataWidth: *width,
		Inputs:    *inputs,
		Outputs:   *outputs,
		Depth:     *depth,
	})
	if err != nil {
		log.Fatal(err)
	}

	st, err := loadStimulus(in, core.Inputs())
	if err != nil {
		log.Fatal(err)
	}

	var recs trace.Multi
	signature := trace.NewSignature()
	if *sig {
		recs = append(recs, signature)
	}
	if *events {
		recs = append(recs, trace.NewJSONL(os.Stderr))
	}
	if *dbPath != "" {
		db, err := trace.OpenDB(*dbPath)
		if err != nil {
			log.Fatal(err)
		}
		recs = append(recs, db)
	}
	probe := trace.NewProbe(recs)
	if len(recs) > 0 {
		core.Attach(probe)
	}

	st.Run(core, *drain, func(cycle uint64, out []fabric.Out) {
		for o, v := range out {
			if v.Valid {
				log.Printf("cycle %4d out %d: %#x", cycle, o, v.Data)
			}
		}
	})

	if err := recs.Close(); err != nil {
		log.Fatal(err)
	}
	if err := probe.Err(); err != nil {
		log.Fatal(err)
	}
	if *sig {
		fmt.Println(signature.Sum())
	}
}
