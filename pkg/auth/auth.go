// Package auth is the single login gate in front of the admin console.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cafe/pkg/domain"
	"cafe/pkg/storage/jsonstore"
)

var (
	// ErrInvalidCredentials hides whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("username or password is invalid")
	// ErrUsernameTaken is returned by Register for an existing username.
	ErrUsernameTaken = errors.New("username already exists")
)

// User is one admin account as persisted in the user store.
type User struct {
	ID           string `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
}

// Store keeps users keyed by id and rewrites the user file on every change.
type Store struct {
	path   string
	cost   int
	logger *slog.Logger
	users  map[string]User
	now    func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Store) { s.cost = cost }
}

// Open loads the user file at path.
func Open(path string, logger *slog.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		path:   path,
		cost:   bcrypt.DefaultCost,
		logger: logger.With("component", "auth"),
		users:  make(map[string]User),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	status, err := jsonstore.Load(path, &s.users)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if status == jsonstore.Corrupt || s.users == nil {
		if status == jsonstore.Corrupt {
			s.logger.Warn("user file was corrupt, starting fresh", "path", path)
		}
		s.users = make(map[string]User)
	}
	return s, nil
}

// HasUsers reports whether anyone has registered yet.
func (s *Store) HasUsers() bool {
	return len(s.users) > 0
}

// Register creates an account after checking the username is free and the
// password is strong enough.
func (s *Store) Register(username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, domain.NewValidationError("username cannot be empty")
	}
	if _, ok := s.find(username); ok {
		return User{}, fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	}
	if err := CheckPassword(password); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           newUserID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    domain.FormatTimestamp(s.now()),
	}
	s.users[u.ID] = u
	s.logger.Info("user registered", "user_id", u.ID, "username", username)
	if err := jsonstore.Save(s.path, s.users); err != nil {
		s.logger.Error("user save failed", "path", s.path, "err", err)
		return u, domain.PersistenceError("users", err)
	}
	return u, nil
}

// Login checks the password against the stored bcrypt hash.
func (s *Store) Login(username, password string) (User, error) {
	u, ok := s.find(strings.TrimSpace(username))
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("login failed", "username", username)
		return User{}, ErrInvalidCredentials
	}
	s.logger.Info("login succeeded", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *Store) find(username string) (User, bool) {
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if s.users[id].Username == username {
			return s.users[id], true
		}
	}
	return User{}, false
}

// CheckPassword requires 8 to 12 characters with at least one upper-case
// letter, one lower-case letter and one digit.
func CheckPassword(password string) error {
	if n := len([]rune(password)); n < 8 || n > 12 {
		return domain.NewValidationError("password must be 8-12 characters long")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	switch {
	case !upper:
		return domain.NewValidationError("password must contain at least one uppercase letter")
	case !lower:
		return domain.NewValidationError("password must contain at least one lowercase letter")
	case !digit:
		return domain.NewValidationError("password must contain at least one number")
	}
	return nil
}

// newUserID is "u_" followed by the first eight hex digits of a random UUID.
func newUserID() string {
	return "u_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
