package model

type EventKind uint8

const (
	OtherEvent EventKind = iota
	// SysExEvent is a normal SysEx packet (0xF0 in the file).
	SysExEvent
	// EscapeEvent is an escaped SysEx packet (0xF7 in the file), used to
	// continue a message split across several events.
	EscapeEvent
	TempoEvent
)

// Event is the reduced form of a decoded track event. Data and Completed are
// only meaningful for SysExEvent and EscapeEvent: Data holds the packet bytes
// without the leading status byte and without the 0xF7 terminator, and
// Completed reports whether the terminator was present.
type Event struct {
	Kind      EventKind
	Data      []byte
	Completed bool
}

type TrackChunk struct {
	Events []Event
}

// Flatten returns the events of all chunks in track order, then in-track order.
func Flatten(chunks []TrackChunk) []Event {
	var n int
	for _, c := range chunks {
		n += len(c.Events)
	}
	res := make([]Event, 0, n)
	for _, c := range chunks {
		res = append(res, c.Events...)
	}
	return res
}
