// Package sessions keeps the in-memory table of authenticated sessions.
//
// A session is Active until it is revoked or its expiry passes. Expiry is
// checked lazily on Validate; Run optionally sweeps expired rows so the
// table does not grow without bound.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/logging"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
)

var errSessionCollision = errors.New("session token collision")

type Options struct {
	// TTL is the session lifetime. Zero means sessions never expire.
	TTL time.Duration
	// SingleSession makes Create revoke the user's earlier sessions.
	SingleSession bool
	Now           func() time.Time
	Logger        logging.Logger
}

type Manager struct {
	mu     sync.RWMutex
	byTok  map[string]*models.Session
	byUser map[string]map[string]struct{}

	opts Options
}

func NewManager(opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop{}
	}
	opts.Logger = opts.Logger.With("module", "sessions")

	return &Manager{
		byTok:  make(map[string]*models.Session),
		byUser: make(map[string]map[string]struct{}),
		opts:   opts,
	}
}

// Create starts a session for username and returns its token.
func (m *Manager) Create(username string) (string, error) {
	token, err := common.MakeRandHexString(common.SessionTokenBytes)
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}

	now := m.opts.Now()
	s := &models.Session{
		Token:     token,
		UserName:  username,
		CreatedAt: now,
	}
	if m.opts.TTL > 0 {
		s.ExpiresAt = now.Add(m.opts.TTL)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, clash := m.byTok[token]; clash {
		return "", errSessionCollision
	}
	if m.opts.SingleSession {
		m.revokeUserLocked(username)
	}

	m.byTok[token] = s
	toks, ok := m.byUser[username]
	if !ok {
		toks = make(map[string]struct{})
		m.byUser[username] = toks
	}
	toks[token] = struct{}{}

	return token, nil
}

// Validate returns the username bound to token. Unknown, revoked and
// expired tokens all fail with common.ErrInvalidSession.
func (m *Manager) Validate(token string) (string, error) {
	m.mu.RLock()
	s, ok := m.byTok[token]
	m.mu.RUnlock()

	if !ok {
		return "", common.ErrInvalidSession
	}
	if s.Expired(m.opts.Now()) {
		m.Revoke(token)
		return "", common.ErrInvalidSession
	}
	return s.UserName, nil
}

// Revoke ends the session. Unknown tokens are ignored.
func (m *Manager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(token)
}

// RevokeUser ends every session of username and returns how many ended.
func (m *Manager) RevokeUser(username string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revokeUserLocked(username)
}

// Len is the number of rows in the table, including expired rows not yet
// swept.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byTok)
}

// Sweep drops expired sessions and returns how many it dropped.
func (m *Manager) Sweep() int {
	now := m.opts.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for tok, s := range m.byTok {
		if s.Expired(now) {
			m.removeLocked(tok)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := m.Sweep(); n > 0 {
				m.opts.Logger.Debug(ctx, "expired sessions swept", "count", n)
			}
		}
	}
}

func (m *Manager) revokeUserLocked(username string) int {
	toks := m.byUser[username]
	n := len(toks)
	for tok := range toks {
		m.removeLocked(tok)
	}
	return n
}

func (m *Manager) removeLocked(token string) {
	s, ok := m.byTok[token]
	if !ok {
		return
	}
	delete(m.byTok, token)

	toks := m.byUser[s.UserName]
	delete(toks, token)
	if len(toks) == 0 {
		delete(m.byUser, s.UserName)
	}
}
