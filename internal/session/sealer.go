package session

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const nonceSize = 24

// Sealer encrypts the serialized session with a key derived from a
// configured secret, so restarts can reopen what earlier runs sealed.
type Sealer struct {
	key [32]byte
}

// NewSealer derives the sealing key from the secret. The salt is the fixed
// namespace: derivation must be reproducible across restarts.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, fmt.Errorf("session seal secret must not be empty")
	}
	dk, err := scrypt.Key([]byte(secret), []byte(Namespace), 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to derive seal key: %w", err)
	}
	s := &Sealer{}
	copy(s.key[:], dk)
	return s, nil
}

// Seal encrypts plain, prefixing the random nonce.
func (s *Sealer) Seal(plain []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plain, &nonce, &s.key), nil
}

// Open decrypts a sealed blob produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, fmt.Errorf("sealed session too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, fmt.Errorf("sealed session failed to open, wrong secret or corrupt data")
	}
	return plain, nil
}
