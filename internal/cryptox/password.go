// Package cryptox implements password hashing for the credential store.
//
// Hashes are self-describing strings, so a store can switch its hasher for new
// users and still verify hashes written by the other one:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>   (base64, no padding)
//	$2a$10$...                                     (bcrypt)
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/selfhostdash/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported hasher names, as used in configuration.
const (
	Argon2id = "argon2id"
	Bcrypt   = "bcrypt"
)

var (
	ErrInvalidHash     = errors.New("invalid password hash")
	ErrUnknownHasher   = errors.New("unknown password hasher")
	ErrPasswordTooLong = errors.New("password too long")
)

// Hasher turns a password into an encoded hash and checks candidates against
// hashes it produced. Verify returns false without an error on mismatch.
type Hasher interface {
	Hash(password []byte) (string, error)
	Verify(encoded string, password []byte) (bool, error)
}

// Argon2idParams are the argon2id cost parameters.
type Argon2idParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2idParams follows the RFC 9106 second recommendation.
var DefaultArgon2idParams = Argon2idParams{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

type Argon2idHasher struct {
	params Argon2idParams
}

func NewArgon2idHasher(p Argon2idParams) *Argon2idHasher {
	return &Argon2idHasher{params: p}
}

func (h *Argon2idHasher) Hash(password []byte) (string, error) {
	salt := common.GenerateRandByteArray(int(h.params.SaltLen))
	key := argon2.IDKey(password, salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the parameters stored in encoded, not with
// the hasher's own parameters.
func (h *Argon2idHasher) Verify(encoded string, password []byte) (bool, error) {
	p, salt, key, err := decodeArgon2id(encoded)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func decodeArgon2id(encoded string) (Argon2idParams, []byte, []byte, error) {
	var p Argon2idParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != Argon2id {
		return p, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrInvalidHash, version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %v", ErrInvalidHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: key: %v", ErrInvalidHash, err)
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// bcryptMaxPassword is the number of password bytes bcrypt reads.
const bcryptMaxPassword = 72

func (h *BcryptHasher) Hash(password []byte) (string, error) {
	if len(password) > bcryptMaxPassword {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword(password, h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify never accepts a password longer than Hash allows. Such a password
// is still compared, truncated, so the call costs the same.
func (h *BcryptHasher) Verify(encoded string, password []byte) (bool, error) {
	tooLong := len(password) > bcryptMaxPassword
	if tooLong {
		password = password[:bcryptMaxPassword]
	}

	err := bcrypt.CompareHashAndPassword([]byte(encoded), password)
	switch {
	case err == nil && tooLong:
		return false, nil
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}

// NewHasher returns the hasher registered under name. An empty name selects
// argon2id with default parameters.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", Argon2id:
		return NewArgon2idHasher(DefaultArgon2idParams), nil
	case Bcrypt:
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHasher, name)
	}
}

// Verify checks password against any hash format this package produces.
func Verify(encoded string, password []byte) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$"+Argon2id+"$"):
		return (&Argon2idHasher{}).Verify(encoded, password)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return (&BcryptHasher{}).Verify(encoded, password)
	default:
		return false, ErrInvalidHash
	}
}
