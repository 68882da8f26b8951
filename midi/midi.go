package midi

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/jsphweid/midiscope/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	sysExStart  = 0xF0
	sysExEscape = 0xF7
	metaStatus  = 0xFF
	metaTempo   = 0x51
)

func ReadMidiFile(path string) (*smf.SMF, error) {
	if path == "" {
		return nil, errors.Wrap(model.ErrInvalidArgument, "empty midi file path")
	}

	dat, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(model.ErrNotFound, path)
	}
	if err != nil {
		return nil, errors.Wrapf(model.ErrInvalidArgument, "Error reading midi file... %s", err.Error())
	}

	return ReadMidi(bytes.NewReader(dat))
}

func ReadMidi(r io.Reader) (s *smf.SMF, e error) {
	if r == nil {
		return nil, errors.Wrap(model.ErrInvalidArgument, "nil midi reader")
	}

	// smf panics on some malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = errors.Wrapf(model.ErrDecode, "Error parsing midi file... %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrapf(model.ErrDecode, "Error parsing midi file... %s", err.Error())
	}

	return res, nil
}

// ToEvent reduces a track message to the event kinds the analyzer cares about.
func ToEvent(msg smf.Message) model.Event {
	raw := []byte(msg)
	if len(raw) == 0 {
		return model.Event{Kind: model.OtherEvent}
	}

	switch raw[0] {
	case sysExStart, sysExEscape:
		evt := model.Event{Kind: model.SysExEvent}
		if raw[0] == sysExEscape {
			evt.Kind = model.EscapeEvent
		}
		data := raw[1:]
		if len(data) > 0 && data[len(data)-1] == sysExEscape {
			data = data[:len(data)-1]
			evt.Completed = true
		}
		evt.Data = append([]byte(nil), data...)
		return evt
	case metaStatus:
		if len(raw) > 1 && raw[1] == metaTempo {
			return model.Event{Kind: model.TempoEvent}
		}
	}
	return model.Event{Kind: model.OtherEvent}
}

func Tracks(s *smf.SMF) []model.TrackChunk {
	res := make([]model.TrackChunk, 0, len(s.Tracks))
	for _, track := range s.Tracks {
		chunk := model.TrackChunk{Events: make([]model.Event, 0, len(track))}
		for _, event := range track {
			chunk.Events = append(chunk.Events, ToEvent(event.Message))
		}
		res = append(res, chunk)
	}
	return res
}

func FormatOf(s *smf.SMF) model.Format {
	switch s.Format() {
	case 0:
		return model.SingleTrack
	case 1:
		return model.MultiTrack
	case 2:
		return model.MultiSequence
	}
	return model.UnknownFormat
}

type tempoMap struct {
	s        *smf.SMF
	lastTick int64
}

// NewTempoMap measures the file up to its latest event across all tracks.
func NewTempoMap(s *smf.SMF) model.TempoMap {
	var last int64
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
		}
		if absTicks > last {
			last = absTicks
		}
	}
	return &tempoMap{s: s, lastTick: last}
}

func (t *tempoMap) LastEventTime() time.Duration {
	// TimeAt only knows metric ticks; SMPTE files report nothing useful
	if _, ok := t.s.TimeFormat.(smf.MetricTicks); !ok {
		return 0
	}
	micros := t.s.TimeAt(t.lastTick)
	if micros < 0 {
		return 0
	}
	return time.Duration(micros) * time.Microsecond
}
