package model

import "time"

type Classification string

const (
	XGGSMixed       Classification = "XG/GS Mixed (GM-compatible)"
	XGWithGM2       Classification = "Yamaha XG (GM2-compatible)"
	XG              Classification = "Yamaha XG (GM-compatible)"
	GSWithGM2       Classification = "Roland GS (GM2-compatible)"
	GS              Classification = "Roland GS (GM-compatible)"
	GM2             Classification = "General MIDI Level 2 (GM2)"
	GM1             Classification = "General MIDI (GM)"
	UnknownStandard Classification = "Unknown Format MIDI"
)

// DetectionFlags only ever go from false to true during one analysis.
type DetectionFlags struct {
	GM1 bool `json:"gm1"`
	GM2 bool `json:"gm2"`
	XG  bool `json:"xg"`
	GS  bool `json:"gs"`
}

type MidiFileInfo struct {
	Name            string         `json:"name"`
	Path            string         `json:"path"`
	TrackCount      int            `json:"track_count"`
	EventCount      int            `json:"event_count"`
	Duration        time.Duration  `json:"duration"`
	Format          Format         `json:"format"`
	TempoEventCount int            `json:"tempo_event_count"`
	SysExCount      int            `json:"sysex_count"`
	Flags           DetectionFlags `json:"flags"`
	Classification  Classification `json:"classification"`
	IsEmpty         bool           `json:"is_empty"`
}
