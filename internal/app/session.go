package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/pudottapommin/onetime-secrets-cli/pkg/storage"
)

// Operator is the person at the terminal.
type Operator interface {
	Expiration(ctx context.Context) (seconds int, err error)
	Confirm(ctx context.Context, question string) (bool, error)
	Published(*Published)
	Failed(error)
}

// RunSession creates secrets until the operator declines to continue, input
// ends, or maxSecrets have been published (maxSecrets <= 0 means no limit).
// It returns the number of artifacts published.
func (a *App) RunSession(ctx context.Context, op Operator, maxSecrets int) (int, error) {
	published := 0
	for {
		seconds, err := op.Expiration(ctx)
		if err != nil {
			return published, ignoreEOF(err)
		}

		if err = a.publishOne(ctx, op, time.Duration(seconds)*time.Second); err != nil {
			if errors.Is(err, storage.ErrAllocationExhausted) {
				return published, err
			}
			op.Failed(err)
		} else {
			published++
		}

		if maxSecrets > 0 && published >= maxSecrets {
			return published, nil
		}
		more, err := op.Confirm(ctx, "Create another secret?")
		if err != nil {
			return published, ignoreEOF(err)
		}
		if !more {
			return published, nil
		}
	}
}

func (a *App) publishOne(ctx context.Context, op Operator, expiration time.Duration) error {
	created, err := a.CreateSecret(ctx, expiration)
	if err != nil {
		return err
	}
	p, err := a.PublishArtifact(ctx, created.ID)
	if err != nil {
		return err
	}
	op.Published(p)
	return nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
