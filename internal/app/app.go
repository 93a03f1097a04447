package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/browser"
	"github.com/pudottapommin/onetime-secrets-cli/config"
	"github.com/pudottapommin/onetime-secrets-cli/internal/activity"
	"github.com/pudottapommin/onetime-secrets-cli/pkg/encryption"
	"github.com/pudottapommin/onetime-secrets-cli/pkg/secrets"
	"github.com/pudottapommin/onetime-secrets-cli/pkg/storage"
	"github.com/pudottapommin/onetime-secrets-cli/pkg/ui"
)

// App owns the record store and drives secrets from generation to the
// rendered artifact.
type App struct {
	cfg      *config.Config
	l        *slog.Logger
	activity *activity.Log
	store    storage.Storage
	cipher   *encryption.Cipher
	gen      *secrets.Generator
	now      func() time.Time
	open     func(path string) error
	progress func(message string) (stop func())
}

type Option func(*App)

func WithStorage(s storage.Storage) Option {
	return func(a *App) { a.store = s }
}

func WithCipher(c *encryption.Cipher) Option {
	return func(a *App) { a.cipher = c }
}

func WithGenerator(g *secrets.Generator) Option {
	return func(a *App) { a.gen = g }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithOpener replaces the function that shows a written artifact to the operator.
func WithOpener(open func(path string) error) Option {
	return func(a *App) { a.open = open }
}

// WithProgress is called around slow steps; the returned func ends the indicator.
func WithProgress(start func(message string) (stop func())) Option {
	return func(a *App) { a.progress = start }
}

func New(cfg *config.Config, l *slog.Logger, log *activity.Log, opts ...Option) *App {
	a := &App{
		cfg:      cfg,
		l:        l,
		activity: log,
		cipher:   encryption.New(),
		gen:      secrets.NewGenerator(nil),
		now:      time.Now,
		open:     browser.OpenFile,
		progress: func(string) func() { return func() {} },
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.store == nil {
		a.store = storage.NewMemoryStorage(storage.NewIDAllocator(nil, cfg.MaxIDAttempts))
	}
	return a
}

type Created struct {
	ID         storage.ID
	Expiration time.Duration
	ExpiresAt  time.Time
}

// CreateSecret generates a phrase, encrypts it and stores the record. On
// failure nothing is stored.
func (a *App) CreateSecret(ctx context.Context, expiration time.Duration) (*Created, error) {
	if expiration <= 0 {
		return nil, fmt.Errorf("expiration must be positive, got %s", expiration)
	}

	secret := secrets.NewSecret(a.gen.Generate())
	secret.SetExpiration(expiration)
	secret.Seal(a.now())

	sealed, err := a.cipher.Encrypt(secret.Value())
	if err != nil {
		a.activity.EncryptionFailed(err)
		a.l.Error("failed to encrypt secret", "error", err)
		return nil, fmt.Errorf("creating secret: %w", err)
	}

	insert, err := a.store.Store(ctx, &storage.Record{
		Ciphertext: sealed.Ciphertext,
		Key:        sealed.Key,
		IV:         sealed.IV,
		ExpiresAt:  secret.ExpiresAt(),
	})
	if err != nil {
		a.l.Error("failed to store secret", "error", err)
		return nil, fmt.Errorf("storing secret: %w", err)
	}

	a.activity.SecretStored(string(insert.ID), insert.ExpiresAt)
	a.l.Debug("secret stored", "id", insert.ID, "expires_at", insert.ExpiresAt)
	return &Created{ID: insert.ID, Expiration: expiration, ExpiresAt: insert.ExpiresAt}, nil
}

// RenderArtifact decrypts the record and returns the viewer document. A
// record that fails to decrypt is rendered with a visible error in place of
// the secret.
func (a *App) RenderArtifact(ctx context.Context, id storage.ID) (string, error) {
	doc, _, err := a.render(ctx, id)
	return doc, err
}

func (a *App) render(ctx context.Context, id storage.ID) (string, *storage.Record, error) {
	record, err := a.store.Get(ctx, id)
	if err != nil {
		return "", nil, fmt.Errorf("loading secret %s: %w", id, err)
	}

	plaintext, err := a.cipher.Decrypt(record.Ciphertext, record.Key, record.IV)
	if err != nil {
		a.activity.DecryptionFailed(string(id), err)
		a.l.Error("failed to decrypt secret", "id", id, "error", err)
		plaintext = ui.DecryptionErrorPlaceholder
	}

	doc, err := ui.Render(string(id), plaintext, record.ExpiresAt)
	if err != nil {
		return "", nil, err
	}
	return doc, record, nil
}
