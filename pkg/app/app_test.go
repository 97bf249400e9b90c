package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPrintsVersion(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), []string{"-version"}, strings.NewReader(""), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "cafe ") {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), []string{"-port", "80"}, strings.NewReader(""), &out); err == nil {
		t.Fatal("expected flag error")
	}
}

func TestRunCustomerSession(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CAFE_LOG__FILE", filepath.Join(dir, "logs", "cafe.log"))
	dataDir := filepath.Join(dir, "data")

	menuJSON := `{"categories":["Beverages"],"items":{"001_bev":{"category":"Beverages","name":"Latte","price":150,"available":true,"is_special":false,"order_count":0}}}`
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, "menu.json"), []byte(menuJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	input := strings.Join([]string{"2", "2", "y", "Latte", "1", "n", "0", "0"}, "\n") + "\n"
	var out bytes.Buffer
	args := []string{"-data-dir", dataDir, "-config", filepath.Join(dir, "none.yaml"), "-env-file", ""}
	if err := Run(context.Background(), args, strings.NewReader(input), &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Your order is now completed") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "orders.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"status": "completed"`) || !strings.Contains(string(data), `"paid": true`) {
		t.Fatalf("orders file not written as expected:\n%s", data)
	}
	menu, _ := os.ReadFile(filepath.Join(dataDir, "menu.json"))
	if !strings.Contains(string(menu), `"order_count": 1`) {
		t.Fatalf("menu counts not persisted:\n%s", menu)
	}
	if _, err := os.Stat(filepath.Join(dir, "logs", "cafe.log")); err != nil {
		t.Fatalf("log file missing: %v", err)
	}
}
