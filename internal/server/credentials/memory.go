package credentials

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/cryptox"
	"github.com/dmitrijs2005/selfhostdash/internal/server/models"
	"github.com/google/uuid"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is the mock provider. Nothing survives a process restart, so
// the bootstrap flag resets with the process.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*models.User

	opts      Options
	dummyHash string
}

func NewMemoryStore(opts Options) (*MemoryStore, error) {
	opts = opts.withDefaults()

	dummy, err := dummyHash(opts.Hasher)
	if err != nil {
		return nil, err
	}

	return &MemoryStore{
		users:     make(map[string]*models.User),
		opts:      opts,
		dummyHash: dummy,
	}, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, username, password string) (string, error) {
	if err := validateNewUser(username, password); err != nil {
		return "", err
	}

	// Fail fast before paying for a hash; the authoritative check is
	// repeated under the write lock below.
	s.mu.RLock()
	err := s.checkInsertLocked(username)
	s.mu.RUnlock()
	if err != nil {
		return "", err
	}

	hash, err := hashPassword(s.opts.Hasher, password)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", unavailable("create user", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkInsertLocked(username); err != nil {
		return "", err
	}

	u := &models.User{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: hash,
		CreatedAt:    s.opts.Now().UTC(),
	}
	s.users[username] = u

	return u.ID, nil
}

func (s *MemoryStore) checkInsertLocked(username string) error {
	if s.opts.BootstrapOnly && len(s.users) > 0 {
		return common.ErrBootstrapClosed
	}
	if _, taken := s.users[username]; taken {
		return common.ErrAlreadyExists
	}
	return nil
}

func (s *MemoryStore) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, unavailable("verify credentials", err)
	}

	s.mu.RLock()
	hash := s.dummyHash
	u, found := s.users[username]
	if found {
		hash = u.PasswordHash
	}
	s.mu.RUnlock()

	match, err := cryptox.Verify(hash, []byte(password))
	if err != nil {
		return false, fmt.Errorf("verify credentials: %w", err)
	}

	return found && match, nil
}

func (s *MemoryStore) UserExistsAny(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, unavailable("user exists", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users) > 0, nil
}
