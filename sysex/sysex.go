// Package sysex rebuilds complete System Exclusive messages from the packet
// events of a decoded MIDI file.
package sysex

import "github.com/jsphweid/midiscope/model"

// Reassembler walks a flattened event stream and yields one payload per SysEx
// message. Encoders set the completion marker inconsistently, so a message is
// also considered finished when the next SysEx start arrives, when any
// non-SysEx event interrupts it, or when the stream ends. A message that
// ends with no data bytes at all is dropped rather than yielded as an empty
// payload.
type Reassembler struct {
	events     []model.Event
	pos        int
	buf        []byte
	assembling bool

	// one event can finish two messages (an open one and a new complete one)
	ready [][]byte
}

func NewReassembler(events []model.Event) *Reassembler {
	return &Reassembler{events: events}
}

// Next returns the next payload, or false once the stream is exhausted.
func (r *Reassembler) Next() ([]byte, bool) {
	for len(r.ready) == 0 && r.pos < len(r.events) {
		r.step(r.events[r.pos])
		r.pos++
	}
	if len(r.ready) == 0 && r.assembling {
		r.emit()
	}
	if len(r.ready) == 0 {
		return nil, false
	}
	p := r.ready[0]
	r.ready = r.ready[1:]
	return p, true
}

func (r *Reassembler) step(evt model.Event) {
	switch evt.Kind {
	case model.SysExEvent:
		if r.assembling {
			r.emit()
		}
		r.buf = append([]byte(nil), evt.Data...)
		r.assembling = true
		if evt.Completed {
			r.emit()
		}
	case model.EscapeEvent:
		// a continuation with nothing to continue is dropped
		if !r.assembling {
			return
		}
		r.buf = append(r.buf, evt.Data...)
		if evt.Completed {
			r.emit()
		}
	default:
		if r.assembling {
			r.emit()
		}
	}
}

func (r *Reassembler) emit() {
	if len(r.buf) > 0 {
		r.ready = append(r.ready, r.buf)
	}
	r.buf = nil
	r.assembling = false
}

// Collect drains a new Reassembler over events.
func Collect(events []model.Event) [][]byte {
	var res [][]byte
	r := NewReassembler(events)
	for {
		p, ok := r.Next()
		if !ok {
			return res
		}
		res = append(res, p)
	}
}
