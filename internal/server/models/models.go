// Package models holds the dashboard's domain types.
package models

import "time"

// User is a registered dashboard user. PasswordHash is an encoded hash as
// produced by cryptox and must never be logged.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is an authenticated session. A zero ExpiresAt means the session
// never expires.
type Session struct {
	Token     string
	UserName  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// AppEntry is one launchable application. IconPath and LaunchTarget are
// opaque to everything except the registry that produced them and the
// launcher that consumes LaunchTarget.
type AppEntry struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	IconPath     string `json:"icon_path"`
	LaunchTarget string `json:"launch_target"`
}
