package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrUnseal = errors.New("session: cannot unseal remembered password")

// Sealer encrypts the remembered password before it reaches the KV store.
type Sealer struct {
	key [32]byte
}

// NewSealer derives the key from secret. An empty secret yields a random
// per-process key, so sealed values do not survive a restart.
func NewSealer(secret string) (*Sealer, error) {
	s := &Sealer{}
	if secret == "" {
		if _, err := io.ReadFull(rand.Reader, s.key[:]); err != nil {
			return nil, fmt.Errorf("generate session key: %w", err)
		}
		return s, nil
	}
	s.key = blake2b.Sum256([]byte(secret))
	return s, nil
}

func (s *Sealer) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.StdEncoding.EncodeToString(box), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	box, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(box) < nonceSize {
		return "", ErrUnseal
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrUnseal
	}
	return string(plain), nil
}
