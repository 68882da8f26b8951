package file

import (
	"path/filepath"
	"strings"

	"github.com/jsphweid/midiscope/model"
)

// CreateFileNumMap numbers paths in the order given and stores each one
// relative to root, so a saved scan stays valid when the media directory
// moves. Paths outside root are kept as they are.
func CreateFileNumMap(root string, paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		rel, err := filepath.Rel(root, v)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			rel = v
		}
		res[uint32(i)] = filepath.ToSlash(rel)
	}
	return res
}

// Resolve turns a numbered entry back into a path under root.
func Resolve(root string, m model.FileNumToMidiPath, num uint32) (string, bool) {
	rel, ok := m[num]
	if !ok {
		return "", false
	}
	rel = filepath.FromSlash(rel)
	if filepath.IsAbs(rel) {
		return rel, true
	}
	return filepath.Join(root, rel), true
}
