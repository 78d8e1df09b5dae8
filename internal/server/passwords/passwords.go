// Package passwords hashes and verifies user passwords. Hashes are
// self-describing strings, so a server configured for one scheme still
// verifies passwords stored under the other.
package passwords

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Supported schemes.
const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2id = "argon2id"
)

// Argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

var (
	ErrUnknownScheme = errors.New("unknown password scheme")

	// ErrPasswordTooLong is returned by bcrypt hashing for passwords over
	// MaxBcryptLength bytes.
	ErrPasswordTooLong = errors.New("password too long")
)

// MaxBcryptLength is the longest password bcrypt accepts.
const MaxBcryptLength = 72

// Hasher turns a plaintext password into a salted one-way hash and checks
// a candidate against a stored hash by recomputing it.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// Multi hashes with its configured scheme and verifies any supported one.
type Multi struct {
	scheme string
	cost   int
}

// New returns a Multi hashing with scheme.
func New(scheme string) (*Multi, error) {
	switch scheme {
	case "", SchemeBcrypt:
		return &Multi{scheme: SchemeBcrypt, cost: bcrypt.DefaultCost}, nil
	case SchemeArgon2id:
		return &Multi{scheme: SchemeArgon2id}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// NewBcryptWithCost is New(SchemeBcrypt) with an explicit cost; tests use
// bcrypt.MinCost to stay fast.
func NewBcryptWithCost(cost int) *Multi {
	return &Multi{scheme: SchemeBcrypt, cost: cost}
}

func (m *Multi) Hash(password string) (string, error) {
	if m.scheme == SchemeArgon2id {
		return hashArgon2id(password)
	}
	if len(password) > MaxBcryptLength {
		return "", fmt.Errorf("%w: %d bytes", ErrPasswordTooLong, len(password))
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %w", ErrPasswordTooLong, err)
	}
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (m *Multi) Verify(password, encoded string) bool {
	if strings.HasPrefix(encoded, "$argon2id$") {
		return verifyArgon2id(password, encoded)
	}
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}

func hashArgon2id(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2id salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// verifyArgon2id recomputes the key with the parameters stored in encoded.
// Layout: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>.
func verifyArgon2id(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
