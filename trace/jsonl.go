package trace

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sugawarayuuta/sonnet"
)

// A JSONL recorder writes one JSON object per event, newline
// terminated, to an io.Writer. It does not close the writer.
//
type JSONL struct {
	w io.Writer
}

// NewJSONL returns a recorder writing to w.
//
func NewJSONL(w io.Writer) *JSONL {
	return &JSONL{w: w}
}

// Record implements Recorder.
func (j *JSONL) Record(ev Event) error {
	b, err := sonnet.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "trace: encode event")
	}
	b = append(b, '\n')
	if _, err := j.w.Write(b); err != nil {
		return errors.Wrap(err, "trace: write event")
	}
	return nil
}

// Close implements Recorder. It is a no-op; the caller owns the writer.
func (j *JSONL) Close() error { return nil }
