package util

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0777)
}

func IsMidiPath(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".mid" || ext == ".midi"
}

// GatherAllMidiPaths walks path and returns up to maxNum midi files in
// lexical order. A maxNum of 0 means no limit.
func GatherAllMidiPaths(path string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if maxNum != 0 && len(res) >= maxNum {
			return filepath.SkipDir
		}
		if !d.IsDir() && IsMidiPath(s) {
			res = append(res, s)
		}
		return nil
	}
	if err := filepath.WalkDir(path, walk); err != nil {
		return nil, errors.Wrap(err, "Error walking")
	}
	return res, nil
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

func WriteJSON(filename string, data any) error {
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Could not encode "+filename)
	}
	return errors.Wrap(os.WriteFile(filename, buf, 0644), "Write failed for file: "+filename)
}

func ReadJSON[A any](path string) (A, error) {
	var data A
	buf, err := os.ReadFile(path)
	if err != nil {
		return data, errors.Wrap(err, "Could not read file")
	}
	err = json.Unmarshal(buf, &data)
	return data, errors.Wrap(err, "Could not decode file: "+path)
}
