// Package idgen generates the 16-character identifiers used for users, posts
// and comments.
package idgen

import (
	"context"
	"crypto/rand"
	"fmt"
)

const (
	Length   = 16
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// bytes at or above this value are discarded so every symbol is equally likely
	maxUnbiased = 256 - 256%len(alphabet)
)

// ExistsFunc reports whether id is already taken for an entity kind.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// Generate draws identifiers until exists reports a free one.
func Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	var out [Length]byte
	for {
		if err := fill(&out); err != nil {
			return "", err
		}
		id := string(out[:])
		taken, err := exists(ctx, id)
		if err != nil {
			return "", fmt.Errorf("check id %s: %w", id, err)
		}
		if !taken {
			return id, nil
		}
	}
}

func fill(out *[Length]byte) error {
	var buf [Length * 2]byte
	n := 0
	for n < Length {
		if _, err := rand.Read(buf[:]); err != nil {
			return fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			out[n] = alphabet[int(b)%len(alphabet)]
			n++
			if n == Length {
				break
			}
		}
	}
	return nil
}

// Valid reports whether s has the identifier shape.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
