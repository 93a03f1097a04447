package storage

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	IDLength = 8

	DefaultMaxAttempts = 64

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// bytes at or above this value are redrawn so every symbol stays equally likely
	rejectAbove = 256 - 256%len(alphabet)
)

// IDAllocator draws short identifiers that are safe in URLs and file names.
type IDAllocator struct {
	rand        io.Reader
	maxAttempts int
}

func NewIDAllocator(r io.Reader, maxAttempts int) *IDAllocator {
	if r == nil {
		r = rand.Reader
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &IDAllocator{rand: r, maxAttempts: maxAttempts}
}

// Allocate returns an ID for which taken reports false. It gives up with
// ErrAllocationExhausted after maxAttempts collisions.
func (a *IDAllocator) Allocate(taken func(ID) bool) (ID, error) {
	for range a.maxAttempts {
		id, err := a.draw()
		if err != nil {
			return "", err
		}
		if taken == nil || !taken(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrAllocationExhausted, a.maxAttempts)
}

func (a *IDAllocator) draw() (ID, error) {
	out := make([]byte, 0, IDLength)
	buf := make([]byte, IDLength*2)
	for len(out) < IDLength {
		if _, err := io.ReadFull(a.rand, buf); err != nil {
			return "", fmt.Errorf("reading random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == IDLength {
				break
			}
		}
	}
	return ID(out), nil
}
