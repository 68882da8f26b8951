package model

import (
	"fmt"
	"time"
)

type Format uint8

const (
	UnknownFormat Format = iota
	SingleTrack
	MultiTrack
	MultiSequence
)

func (f Format) String() string {
	switch f {
	case SingleTrack:
		return "single-track"
	case MultiTrack:
		return "multi-track"
	case MultiSequence:
		return "multi-sequence"
	}
	return "unknown"
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	switch string(text) {
	case "single-track":
		*f = SingleTrack
	case "multi-track":
		*f = MultiTrack
	case "multi-sequence":
		*f = MultiSequence
	case "unknown":
		*f = UnknownFormat
	default:
		return fmt.Errorf("unknown format tag %q", text)
	}
	return nil
}

// TempoMap answers tick-to-wall-clock questions for a decoded file.
type TempoMap interface {
	LastEventTime() time.Duration
}

// FixedDuration is a TempoMap for callers that already know the duration.
type FixedDuration time.Duration

func (d FixedDuration) LastEventTime() time.Duration {
	return time.Duration(d)
}
