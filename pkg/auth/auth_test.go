package auth

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"cafe/pkg/domain"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	s, err := Open(path, nil, WithCost(bcrypt.MinCost))
	if err != nil {
		t.Fatal(err)
	}
	return s, path
}

func TestRegisterAndLogin(t *testing.T) {
	s, path := openStore(t)
	if s.HasUsers() {
		t.Fatal("fresh store should have no users")
	}
	u, err := s.Register("barista", "Secret123")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u.ID, "u_") || len(u.ID) != 10 {
		t.Fatalf("unexpected user id %q", u.ID)
	}
	if u.PasswordHash == "Secret123" {
		t.Fatal("password stored in clear text")
	}

	reopened, err := Open(path, nil, WithCost(bcrypt.MinCost))
	if err != nil {
		t.Fatal(err)
	}
	got, err := reopened.Login("barista", "Secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("logged in as %s, want %s", got.ID, u.ID)
	}
	if _, err := reopened.Login("barista", "Wrong1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := reopened.Login("nobody", "Secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	s, _ := openStore(t)
	if _, err := s.Register("barista", "Secret123"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Register("barista", "Other1234"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestCheckPassword(t *testing.T) {
	cases := map[string]bool{
		"Secret123":     true,
		"Sh0rt":         false,
		"Waytoolong123": false,
		"alllower123":   false,
		"ALLUPPER123":   false,
		"NoDigitsHere":  false,
	}
	for pw, ok := range cases {
		err := CheckPassword(pw)
		if ok && err != nil {
			t.Errorf("%q: unexpected error %v", pw, err)
		}
		if !ok && !domain.IsValidation(err) {
			t.Errorf("%q: expected validation error, got %v", pw, err)
		}
	}
}
