package midi

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/midiscope/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestToEventNormalSysEx(t *testing.T) {
	evt := ToEvent(smf.Message{0xF0, 0x7E, 0x7F, 0x09, 0x01, 0xF7})

	assert := assert.New(t)
	assert.Equal(model.SysExEvent, evt.Kind)
	assert.Equal([]byte{0x7E, 0x7F, 0x09, 0x01}, evt.Data)
	assert.True(evt.Completed)
}

func TestToEventUnterminatedSysEx(t *testing.T) {
	evt := ToEvent(smf.Message{0xF0, 0x43, 0x10})

	assert := assert.New(t)
	assert.Equal(model.SysExEvent, evt.Kind)
	assert.Equal([]byte{0x43, 0x10}, evt.Data)
	assert.False(evt.Completed)
}

func TestToEventEscape(t *testing.T) {
	evt := ToEvent(smf.Message{0xF7, 0x4C, 0x00, 0x00, 0x7E, 0x00, 0xF7})

	assert := assert.New(t)
	assert.Equal(model.EscapeEvent, evt.Kind)
	assert.Equal([]byte{0x4C, 0x00, 0x00, 0x7E, 0x00}, evt.Data)
	assert.True(evt.Completed)
}

func TestToEventTempoAndOther(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(model.TempoEvent, ToEvent(smf.Message{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}).Kind)
	assert.Equal(model.OtherEvent, ToEvent(smf.Message{0xFF, 0x2F, 0x00}).Kind)
	assert.Equal(model.OtherEvent, ToEvent(smf.Message{0x90, 0x3C, 0x64}).Kind)
	assert.Equal(model.OtherEvent, ToEvent(nil).Kind)
}

func TestToEventDoesNotAliasMessage(t *testing.T) {
	msg := smf.Message{0xF0, 0x01, 0xF7}
	evt := ToEvent(msg)
	evt.Data[0] = 0x02

	assert.Equal(t, smf.Message{0xF0, 0x01, 0xF7}, msg)
}

func TestTracksKeepOrderAndCounts(t *testing.T) {
	var s smf.SMF
	s.Tracks = []smf.Track{
		{
			{Delta: 0, Message: smf.Message{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}},
			{Delta: 0, Message: smf.Message{0xF0, 0x43, 0x10}},
		},
		{},
		{
			{Delta: 10, Message: smf.Message{0xF7, 0x4C, 0xF7}},
		},
	}
	chunks := Tracks(&s)

	assert := assert.New(t)
	assert.Len(chunks, 3)
	assert.Len(chunks[0].Events, 2)
	assert.Empty(chunks[1].Events)
	assert.Equal(model.TempoEvent, chunks[0].Events[0].Kind)
	assert.Equal(model.SysExEvent, chunks[0].Events[1].Kind)
	assert.Equal(model.EscapeEvent, chunks[2].Events[0].Kind)
}

func TestNewTempoMapUsesLatestTrack(t *testing.T) {
	var s smf.SMF
	s.Tracks = []smf.Track{
		{{Delta: 5}, {Delta: 5}},
		{{Delta: 100}, {Delta: 20}},
	}
	tm := NewTempoMap(&s).(*tempoMap)

	assert.Equal(t, int64(120), tm.lastTick)
}

// format 0, 96 ticks per quarter, tempo 500000us, end of track at tick 192
var oneSecondFile = []byte{
	0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x00, 0x60,
	0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x0C,
	0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
	0x81, 0x40, 0xFF, 0x2F, 0x00,
}

func TestTempoMapConvertsTicksToTime(t *testing.T) {
	s, err := ReadMidi(bytes.NewReader(oneSecondFile))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.SingleTrack, FormatOf(s))
	assert.Equal(time.Second, NewTempoMap(s).LastEventTime())
}

func TestTempoMapIgnoresSMPTE(t *testing.T) {
	var s smf.SMF
	s.TimeFormat = smf.SMPTE24(40)
	s.Tracks = []smf.Track{{{Delta: 960, Message: smf.Message{0xFF, 0x2F, 0x00}}}}

	assert.Equal(t, time.Duration(0), NewTempoMap(&s).LastEventTime())
}

func TestReadMidiFileErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadMidiFile("")
	assert.ErrorIs(err, model.ErrInvalidArgument)

	_, err = ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.ErrorIs(err, model.ErrNotFound)

	garbage := filepath.Join(t.TempDir(), "garbage.mid")
	assert.NoError(os.WriteFile(garbage, []byte("definitely not a midi file"), 0644))
	_, err = ReadMidiFile(garbage)
	assert.ErrorIs(err, model.ErrDecode)
}

func TestReadMidiRejectsGarbage(t *testing.T) {
	_, err := ReadMidi(bytes.NewReader([]byte{0x00, 0x01, 0x02}))
	assert.ErrorIs(t, err, model.ErrDecode)
}
