// Package trace streams per-cycle block assignments as msgpack records so
// runs can be diffed and replayed offline.
package trace

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Garsondee/pitch-sense/internal/game"
)

// Entry is one teammate's line of an assignment.
type Entry struct {
	Unum   int     `msgpack:"u"`
	Cycle  int     `msgpack:"c"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Reason string  `msgpack:"r"`
}

// Record is one observer's assignment at one cycle.
type Record struct {
	Cycle    int     `msgpack:"cycle"`
	Observer int     `msgpack:"observer"`
	Blocker  int     `msgpack:"blocker"`
	OppReach int     `msgpack:"opp_reach"`
	Entries  []Entry `msgpack:"entries"`
}

// FromAssignment flattens an assignment computed by observer.
func FromAssignment(observer int, a *game.Assignment) Record {
	rec := Record{
		Cycle:    a.Cycle,
		Observer: observer,
		Blocker:  a.Blocker,
		OppReach: a.Dribble.StartCycle,
		Entries:  make([]Entry, 0, len(a.Entries)),
	}
	for _, e := range a.Entries {
		rec.Entries = append(rec.Entries, Entry{
			Unum:   e.Unum,
			Cycle:  e.Cycle,
			X:      e.Point.X,
			Y:      e.Point.Y,
			Reason: e.Reason.String(),
		})
	}
	return rec
}

// FromSim returns a record for every one of our players that planned a
// block on the sim's last cycle, in uniform order.
func FromSim(s *game.Sim) []Record {
	var out []Record
	for _, p := range s.Ours {
		if p == nil || p.Decision.Assignment == nil {
			continue
		}
		out = append(out, FromAssignment(p.State.Unum, p.Decision.Assignment))
	}
	return out
}

// Writer encodes records onto a stream.
type Writer struct {
	enc *msgpack.Encoder
	n   int
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: msgpack.NewEncoder(w)}
}

// Write encodes one record.
func (w *Writer) Write(rec Record) error {
	if err := w.enc.Encode(&rec); err != nil {
		return fmt.Errorf("encode record %d (cycle %d): %w", w.n, rec.Cycle, err)
	}
	w.n++
	return nil
}

// Count returns how many records have been written.
func (w *Writer) Count() int {
	return w.n
}

// Reader decodes records from a stream.
type Reader struct {
	dec *msgpack.Decoder
	n   int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(r)}
}

// Next returns the next record, or io.EOF when the stream is exhausted.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("decode record %d: %w", r.n, err)
	}
	r.n++
	return rec, nil
}

// ReadAll drains r.
func ReadAll(r io.Reader) ([]Record, error) {
	tr := NewReader(r)
	var out []Record
	for {
		rec, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
