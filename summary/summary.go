// Package summary builds the report for one decoded MIDI file.
package summary

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jsphweid/midiscope/detect"
	"github.com/jsphweid/midiscope/midi"
	"github.com/jsphweid/midiscope/model"
	"github.com/pkg/errors"
)

type analysisError struct {
	cause error
}

func (e *analysisError) Error() string {
	return model.ErrAnalysisFailed.Error() + ": " + e.cause.Error()
}

func (e *analysisError) Unwrap() error { return e.cause }

func (e *analysisError) Is(target error) bool { return target == model.ErrAnalysisFailed }

// Analyze reports on a decoded file. It either returns a complete report or
// an error, never both.
func Analyze(path string, chunks []model.TrackChunk, tempo model.TempoMap, format model.Format) (info model.MidiFileInfo, err error) {
	if chunks == nil {
		return model.MidiFileInfo{}, errors.Wrap(model.ErrInvalidArgument, "nil track chunks")
	}
	if tempo == nil {
		return model.MidiFileInfo{}, errors.Wrap(model.ErrInvalidArgument, "nil tempo map")
	}

	defer func() {
		if r := recover(); r != nil {
			info = model.MidiFileInfo{}
			err = &analysisError{cause: errors.WithStack(fmt.Errorf("%v", r))}
		}
	}()

	events := model.Flatten(chunks)
	var tempoCount int
	for _, evt := range events {
		if evt.Kind == model.TempoEvent {
			tempoCount++
		}
	}

	flags, classification, sysexCount := detect.Detect(events)

	info = model.MidiFileInfo{
		Path:            path,
		TrackCount:      len(chunks),
		EventCount:      len(events),
		Format:          format,
		TempoEventCount: tempoCount,
		SysExCount:      sysexCount,
		Flags:           flags,
		Classification:  classification,
		IsEmpty:         len(events) == 0,
	}
	if path != "" {
		info.Name = filepath.Base(path)
	}
	if !info.IsEmpty {
		if d := tempo.LastEventTime(); d > 0 {
			info.Duration = d
		}
	}
	return info, nil
}

// AnalyzeFile decodes the file at path and analyzes it.
func AnalyzeFile(path string) (model.MidiFileInfo, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return model.MidiFileInfo{}, err
	}
	return Analyze(path, midi.Tracks(s), midi.NewTempoMap(s), midi.FormatOf(s))
}

// AnalyzeReader decodes a file from r and analyzes it under the given name.
func AnalyzeReader(name string, r io.Reader) (model.MidiFileInfo, error) {
	s, err := midi.ReadMidi(r)
	if err != nil {
		return model.MidiFileInfo{}, err
	}
	return Analyze(name, midi.Tracks(s), midi.NewTempoMap(s), midi.FormatOf(s))
}
