package jsonstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type doc struct {
	Names []string `json:"names"`
}

func TestLoadMissingFile(t *testing.T) {
	var d doc
	status, err := Load(filepath.Join(t.TempDir(), "nope.json"), &d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Missing {
		t.Fatalf("expected Missing, got %s", status)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	var d doc
	status, err := Load(path, &d)
	if err != nil || status != Empty {
		t.Fatalf("expected Empty without error, got %s / %v", status, err)
	}
}

func TestLoadCorruptFileIsMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var d doc
	status, err := Load(path, &d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != Corrupt {
		t.Fatalf("expected Corrupt, got %s", status)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("corrupt file should have been moved away")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "menu.json.corrupt-") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a quarantined copy in %v", entries)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	if err := Save(path, doc{Names: []string{"Latte", "Mocha"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	var d doc
	status, err := Load(path, &d)
	if err != nil || status != Loaded {
		t.Fatalf("expected Loaded, got %s / %v", status, err)
	}
	if len(d.Names) != 2 || d.Names[1] != "Mocha" {
		t.Fatalf("unexpected document: %+v", d)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temporary file left behind")
	}
}
