// Package jsonstore reads and writes whole-file JSON documents.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Status tells the caller what Load found on disk.
type Status int

const (
	Loaded Status = iota
	Missing
	Empty
	Corrupt
)

func (s Status) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case Missing:
		return "missing"
	case Empty:
		return "empty"
	case Corrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// Load decodes the document at path into v. Missing, empty and corrupt files
// leave v untouched and are reported through Status, never as an error. A
// corrupt file is renamed to "<path>.corrupt-<unix>" first so the next Save
// does not destroy it. Only unexpected I/O failures return an error.
func Load(path string, v any) (Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Missing, nil
		}
		return Missing, err
	}
	if len(data) == 0 {
		return Empty, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		if mvErr := quarantine(path); mvErr != nil {
			return Corrupt, fmt.Errorf("quarantine corrupt %s: %w", path, mvErr)
		}
		return Corrupt, nil
	}
	return Loaded, nil
}

// Save writes v as indented JSON through a temporary file and a rename.
func Save(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(temp, path)
}

// Remove deletes the document; a missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func quarantine(path string) error {
	target := path + ".corrupt-" + strconv.FormatInt(time.Now().Unix(), 10)
	return os.Rename(path, target)
}
