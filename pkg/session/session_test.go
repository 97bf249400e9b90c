package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cafe_session.json")
	return New(path, 30*time.Minute, "test-secret", nil), path
}

func TestCheckWithoutMarker(t *testing.T) {
	m, _ := newManager(t)
	if st := m.Check(time.Now()); st.Valid || st.Expired {
		t.Fatalf("expected no session, got %+v", st)
	}
}

func TestCreateAndCheck(t *testing.T) {
	m, path := newManager(t)
	login := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
	if err := m.Create("barista", login); err != nil {
		t.Fatal(err)
	}

	st := m.Check(login.Add(10 * time.Minute))
	if !st.Valid || st.Username != "barista" || st.Remaining != 20*time.Minute {
		t.Fatalf("unexpected state %+v", st)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var marker Marker
	if err := json.Unmarshal(data, &marker); err != nil {
		t.Fatal(err)
	}
	if marker.SessionTime != 1800 || marker.Status != "active" || marker.Token == "" {
		t.Fatalf("unexpected marker %+v", marker)
	}
}

func TestExpiredSessionIsCleared(t *testing.T) {
	m, path := newManager(t)
	login := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
	if err := m.Create("barista", login); err != nil {
		t.Fatal(err)
	}
	st := m.Check(login.Add(31 * time.Minute))
	if st.Valid || !st.Expired {
		t.Fatalf("expected expired session, got %+v", st)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("marker should be removed, stat err = %v", err)
	}
}

func TestTamperedMarkerIsRejected(t *testing.T) {
	m, path := newManager(t)
	login := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
	if err := m.Create("barista", login); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	var marker Marker
	_ = json.Unmarshal(data, &marker)
	marker.Username = "intruder"
	data, _ = json.Marshal(marker)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if st := m.Check(login.Add(time.Minute)); st.Valid {
		t.Fatalf("tampered marker accepted: %+v", st)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("tampered marker should be removed")
	}
}

func TestOtherSecretIsRejected(t *testing.T) {
	m, path := newManager(t)
	login := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
	if err := m.Create("barista", login); err != nil {
		t.Fatal(err)
	}
	other := New(path, 30*time.Minute, "another-secret", nil)
	if st := other.Check(login.Add(time.Minute)); st.Valid {
		t.Fatalf("marker signed with another secret accepted: %+v", st)
	}
}

func TestWarning(t *testing.T) {
	if w := Warning(10 * time.Minute); w != "" {
		t.Fatalf("no warning expected, got %q", w)
	}
	if w := Warning(4*time.Minute + 5*time.Second); !strings.Contains(w, "4:05") {
		t.Fatalf("five-minute warning, got %q", w)
	}
	if w := Warning(42 * time.Second); !strings.Contains(w, "42 seconds") {
		t.Fatalf("one-minute warning, got %q", w)
	}
}
