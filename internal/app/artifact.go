package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pudottapommin/onetime-secrets-cli/pkg/storage"
)

type Published struct {
	ID        storage.ID
	Path      string
	ExpiresAt time.Time
}

// PublishArtifact renders the artifact for id, writes it to the output
// directory and, when enabled, opens it in the default viewer.
func (a *App) PublishArtifact(ctx context.Context, id storage.ID) (*Published, error) {
	stop := a.progress(fmt.Sprintf("Rendering secret %s", id))
	doc, record, err := a.render(ctx, id)
	if err != nil {
		stop()
		return nil, err
	}
	path, err := writeArtifact(a.cfg.OutputDir, id, doc)
	stop()
	if err != nil {
		a.l.Error("failed to write artifact", "id", id, "error", err)
		return nil, err
	}
	a.activity.ArtifactGenerated(string(id), path)

	if a.cfg.OpenViewer {
		if err = a.open(path); err != nil {
			a.l.Warn("failed to open artifact", "path", path, "error", err)
		}
	}
	return &Published{ID: id, Path: path, ExpiresAt: record.ExpiresAt}, nil
}

func ArtifactName(id storage.ID) string {
	return "secret-" + string(id) + ".html"
}

func writeArtifact(dir string, id storage.ID, doc string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(dir, ArtifactName(id)))
	if err != nil {
		return "", fmt.Errorf("resolving artifact path: %w", err)
	}
	if err = os.WriteFile(path, []byte(doc), 0o600); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	return path, nil
}
