// Package activity records what happened to each secret in an append-only
// text log kept next to the generated artifacts.
package activity

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Log writes one line per event. Write errors are dropped so that a broken
// log file never interrupts secret creation.
type Log struct {
	l      *slog.Logger
	closer io.Closer
}

// Open appends to the file at path, creating it and its directory if needed.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating activity log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	l := New(f)
	l.closer = f
	return l, nil
}

func New(w io.Writer) *Log {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339))
			}
			return a
		},
	})
	return &Log{l: slog.New(h).With(slog.String("session", uuid.NewString()))}
}

// Discard returns a Log that writes nowhere.
func Discard() *Log {
	return New(io.Discard)
}

func (l *Log) EncryptionFailed(err error) {
	l.l.Error("encryption failed", slog.Any("error", err))
}

func (l *Log) DecryptionFailed(id string, err error) {
	l.l.Error("decryption failed", slog.String("id", id), slog.Any("error", err))
}

func (l *Log) SecretStored(id string, expiresAt time.Time) {
	l.l.Info("secret stored", slog.String("id", id), slog.String("expires_at", expiresAt.UTC().Format(time.RFC3339)))
}

func (l *Log) ArtifactGenerated(id, path string) {
	l.l.Info("artifact generated", slog.String("id", id), slog.String("path", path))
}

func (l *Log) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
