package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrDuplicateID         = errors.New("record id already in use")
	ErrInvalidRecord       = errors.New("invalid record")
	ErrAllocationExhausted = errors.New("no free record id")
)

type (
	ID  string
	Key []byte
	IV  []byte

	// Record is an encrypted secret. The plaintext is never part of it.
	Record struct {
		ID         ID
		Ciphertext []byte
		Key        Key
		IV         IV
		ExpiresAt  time.Time
	}

	Storage interface {
		// Store allocates a free ID for record, sets it and inserts the record
		// in one step.
		Store(context.Context, *Record) (*InsertResult, error)
		Insert(context.Context, *Record) error
		Get(context.Context, ID) (*Record, error)
		Contains(context.Context, ID) bool
	}

	InsertResult struct {
		ID        ID
		ExpiresAt time.Time
	}
)

func (r *Record) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

func (r *Record) clone() *Record {
	c := *r
	c.Ciphertext = append([]byte(nil), r.Ciphertext...)
	c.Key = append(Key(nil), r.Key...)
	c.IV = append(IV(nil), r.IV...)
	return &c
}

func newInsertResult(id ID, expiresAt time.Time) *InsertResult {
	return &InsertResult{ID: id, ExpiresAt: expiresAt}
}
