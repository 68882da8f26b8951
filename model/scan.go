package model

type FileNumToMidiPath = map[uint32]string

type ScanEntry struct {
	FileNum uint32        `json:"file_num"`
	Info    *MidiFileInfo `json:"info,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// ScanReport is what the scan command writes and the report command reads.
type ScanReport struct {
	ID      string            `json:"id"`
	Root    string            `json:"root"`
	Files   FileNumToMidiPath `json:"files"`
	Entries []ScanEntry       `json:"entries"`
}
