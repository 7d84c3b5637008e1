// Package credentials persists username to password-hash mappings.
//
// Two providers satisfy Store with the same contract and error taxonomy:
// MemoryStore keeps everything in process memory, SQLStore persists to
// PostgreSQL or SQLite. Passwords are hashed before they reach either backing
// store, and hashing never runs while a lock or a transaction is held.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"github.com/dmitrijs2005/selfhostdash/internal/cryptox"
)

// MaxUserNameLen is the longest accepted username, in bytes.
const MaxUserNameLen = 64

// DefaultTimeout bounds a single store call when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Store is the credential store contract.
type Store interface {
	// CreateUser stores a new user and returns its id. It fails with
	// common.ErrAlreadyExists when the username is taken and with
	// common.ErrBootstrapClosed when bootstrap-only mode is on and any user
	// exists. The check and the insert are one atomic step.
	CreateUser(ctx context.Context, username, password string) (string, error)

	// VerifyCredentials reports whether password matches the stored hash.
	// An unknown username yields false and no error, after the same amount
	// of hashing work as a known one.
	VerifyCredentials(ctx context.Context, username, password string) (bool, error)

	// UserExistsAny reports whether at least one user has been created.
	UserExistsAny(ctx context.Context) (bool, error)
}

// Options configure both store providers.
type Options struct {
	// Hasher hashes passwords of new users. Nil selects argon2id defaults.
	Hasher cryptox.Hasher
	// BootstrapOnly rejects every CreateUser once a user exists.
	BootstrapOnly bool
	// Timeout bounds each call; zero means DefaultTimeout.
	Timeout time.Duration
	// Now is a clock seam for tests.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Hasher == nil {
		o.Hasher = cryptox.NewArgon2idHasher(cryptox.DefaultArgon2idParams)
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// ValidateUserName checks that name is non-empty, at most MaxUserNameLen
// bytes of valid UTF-8 and free of spaces and control characters.
func ValidateUserName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty username", common.ErrValidation)
	}
	if len(name) > MaxUserNameLen {
		return fmt.Errorf("%w: username longer than %d bytes", common.ErrValidation, MaxUserNameLen)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: username is not valid UTF-8", common.ErrValidation)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: username contains whitespace or control characters", common.ErrValidation)
		}
	}
	return nil
}

func validateNewUser(username, password string) error {
	if err := ValidateUserName(username); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("%w: empty password", common.ErrValidation)
	}
	return nil
}

func hashPassword(h cryptox.Hasher, password string) (string, error) {
	hash, err := h.Hash([]byte(password))
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// dummyHash returns a hash of random bytes. Unknown users are verified
// against it so both lookup outcomes cost one hash computation.
func dummyHash(h cryptox.Hasher) (string, error) {
	hash, err := h.Hash(common.GenerateRandByteArray(16))
	if err != nil {
		return "", fmt.Errorf("dummy hash: %w", err)
	}
	return hash, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrStoreUnavailable, op, err)
}
