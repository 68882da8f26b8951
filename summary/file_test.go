package summary

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/midiscope/model"
	"github.com/stretchr/testify/assert"
)

// format 0, 96 ticks per quarter: tempo 500000us, GM2 System On, end of
// track two quarters later
var gm2File = []byte{
	0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x00, 0x60,
	0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x14,
	0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
	0x00, 0xF0, 0x05, 0x7E, 0x7F, 0x09, 0x03, 0xF7,
	0x81, 0x40, 0xFF, 0x2F, 0x00,
}

func TestAnalyzeReaderDecodesRealFile(t *testing.T) {
	info, err := AnalyzeReader("gm2.mid", bytes.NewReader(gm2File))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(model.GM2, info.Classification)
	assert.Equal(model.DetectionFlags{GM2: true}, info.Flags)
	assert.Equal(time.Second, info.Duration)
	assert.Equal(1, info.TempoEventCount)
	assert.Equal(1, info.SysExCount)
	assert.Equal(1, info.TrackCount)
	assert.Equal(model.SingleTrack, info.Format)
	assert.False(info.IsEmpty)

	again, err := AnalyzeReader("gm2.mid", bytes.NewReader(gm2File))
	assert.NoError(err)
	assert.Equal(info, again)
}

func TestAnalyzeFileDecodesRealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gm2.mid")
	assert.NoError(t, os.WriteFile(path, gm2File, 0644))

	info, err := AnalyzeFile(path)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal("gm2.mid", info.Name)
	assert.Equal(path, info.Path)
	assert.Equal(model.GM2, info.Classification)
	assert.Equal(time.Second, info.Duration)
}

func TestAnalyzeReaderRejectsGarbage(t *testing.T) {
	info, err := AnalyzeReader("junk.mid", bytes.NewReader([]byte("MThd")))

	assert := assert.New(t)
	assert.ErrorIs(err, model.ErrDecode)
	assert.Equal(model.MidiFileInfo{}, info)
}
