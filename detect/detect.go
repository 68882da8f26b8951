// Package detect decides which sound standard a MIDI file targets from the
// SysEx messages it contains.
package detect

import (
	"github.com/jsphweid/midiscope/model"
	"github.com/jsphweid/midiscope/signature"
	"github.com/jsphweid/midiscope/sysex"
)

// Observe returns flags with every standard evidenced by payload added.
// Flags are never cleared.
func Observe(flags model.DetectionFlags, payload []byte) model.DetectionFlags {
	if signature.IsGM1SystemOn(payload) {
		flags.GM1 = true
	}
	if signature.IsGM2SystemOn(payload) {
		flags.GM2 = true
	}
	if signature.IsXGSystemOn(payload) || signature.IsXGParameterChange(payload) {
		flags.XG = true
	}
	if signature.IsGSReset(payload) || signature.IsGSDataSet(payload) {
		flags.GS = true
	}
	return flags
}

// Classify resolves flags to a single classification. Vendor extensions win
// over the GM markers they are layered on; GM2 only qualifies them.
func Classify(flags model.DetectionFlags) model.Classification {
	switch {
	case flags.XG && flags.GS:
		return model.XGGSMixed
	case flags.XG:
		if flags.GM2 {
			return model.XGWithGM2
		}
		return model.XG
	case flags.GS:
		if flags.GM2 {
			return model.GSWithGM2
		}
		return model.GS
	case flags.GM2:
		return model.GM2
	case flags.GM1:
		return model.GM1
	}
	return model.UnknownStandard
}

// Detect reassembles every SysEx message in events, checks each one against
// all signatures and classifies the result. It also returns the number of
// reassembled messages.
func Detect(events []model.Event) (model.DetectionFlags, model.Classification, int) {
	var flags model.DetectionFlags
	var count int

	// no early exit: a later XG or GS message can still change the answer
	r := sysex.NewReassembler(events)
	for {
		payload, ok := r.Next()
		if !ok {
			break
		}
		count++
		flags = Observe(flags, payload)
	}
	return flags, Classify(flags), count
}
