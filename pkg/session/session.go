// Package session keeps the admin login alive across console restarts through
// a small marker file. Validity is checked only when the console asks.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cafe/pkg/domain"
	"cafe/pkg/storage/jsonstore"
)

// DefaultDuration is how long a login stays valid.
const DefaultDuration = 30 * time.Minute

const statusActive = "active"

// Marker is the persisted session record. Token is an HS256 JWT over the
// username and expiry, so a hand-edited marker does not validate.
type Marker struct {
	Username    string `json:"username"`
	LoginTime   string `json:"login_time"`
	SessionTime int    `json:"session_time"`
	Status      string `json:"status"`
	Token       string `json:"token"`
}

// State is the outcome of a checkpoint.
type State struct {
	Username  string
	Remaining time.Duration
	Valid     bool
	// Expired is set when a marker existed but its time ran out.
	Expired bool
}

// Manager creates, checks and clears the marker file.
type Manager struct {
	path     string
	duration time.Duration
	secret   []byte
	logger   *slog.Logger
}

// New returns a manager for the marker at path.
func New(path string, duration time.Duration, secret string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Manager{
		path:     path,
		duration: duration,
		secret:   []byte(secret),
		logger:   logger.With("component", "session"),
	}
}

// Duration is the configured session length.
func (m *Manager) Duration() time.Duration { return m.duration }

// Create writes a fresh marker for username logged in at now.
func (m *Manager) Create(username string, now time.Time) error {
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.duration)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	marker := Marker{
		Username:    username,
		LoginTime:   domain.FormatTimestamp(now),
		SessionTime: int(m.duration / time.Second),
		Status:      statusActive,
		Token:       token,
	}
	if err := jsonstore.Save(m.path, marker); err != nil {
		return domain.PersistenceError("session", err)
	}
	m.logger.Info("session created", "username", username, "expires_in", m.duration.String())
	return nil
}

// Check validates the marker at now. Expired, unreadable and tampered
// markers are removed and reported as invalid.
func (m *Manager) Check(now time.Time) State {
	var marker Marker
	status, err := jsonstore.Load(m.path, &marker)
	if err != nil {
		m.logger.Error("session read failed", "path", m.path, "err", err)
		m.clear()
		return State{}
	}
	switch status {
	case jsonstore.Missing:
		return State{}
	case jsonstore.Empty, jsonstore.Corrupt:
		m.logger.Warn("session marker unreadable", "path", m.path, "status", status.String())
		m.clear()
		return State{}
	}

	loginAt, err := domain.ParseTimestamp(marker.LoginTime)
	if err != nil || marker.Status != statusActive {
		m.logger.Warn("session marker malformed", "path", m.path)
		m.clear()
		return State{}
	}
	remaining := m.duration - now.Sub(loginAt)
	if remaining <= 0 {
		m.logger.Info("session expired", "username", marker.Username)
		m.clear()
		return State{Username: marker.Username, Expired: true}
	}
	if err := m.verify(marker, now); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			m.logger.Info("session expired", "username", marker.Username)
			m.clear()
			return State{Username: marker.Username, Expired: true}
		}
		m.logger.Warn("session token rejected", "username", marker.Username, "err", err)
		m.clear()
		return State{}
	}
	return State{Username: marker.Username, Remaining: remaining, Valid: true}
}

func (m *Manager) verify(marker Marker, now time.Time) error {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(marker.Token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil {
		return err
	}
	if claims.Subject != marker.Username {
		return errors.New("session subject does not match marker")
	}
	return nil
}

// Clear removes the marker (logout).
func (m *Manager) Clear() error {
	if err := jsonstore.Remove(m.path); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.logger.Info("session cleared")
	return nil
}

func (m *Manager) clear() {
	if err := m.Clear(); err != nil {
		m.logger.Error("session clear failed", "err", err)
	}
}

// Warning returns the notice to show at a checkpoint, or "" when more than
// five minutes remain.
func Warning(remaining time.Duration) string {
	secs := int(remaining / time.Second)
	switch {
	case remaining <= 0:
		return ""
	case remaining <= time.Minute:
		return fmt.Sprintf("Session expires in %d seconds! Save your work and prepare to login again.", secs)
	case remaining <= 5*time.Minute:
		return fmt.Sprintf("Session expires in %d:%02d. Please complete your current task soon.", secs/60, secs%60)
	default:
		return ""
	}
}
