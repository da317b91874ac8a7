package id

import (
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a new random identifier.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return encode(u), nil
}

// NewGenerator returns an identifier generator that reads its entropy from r.
// A seeded reader yields a reproducible identifier sequence.
func NewGenerator(r io.Reader) func() (string, error) {
	return func() (string, error) {
		u, err := uuid.NewRandomFromReader(r)
		if err != nil {
			return "", fmt.Errorf("generate id: %w", err)
		}
		return encode(u), nil
	}
}

func encode(u uuid.UUID) string {
	return strings.ToLower(encoding.EncodeToString(u[:]))
}
