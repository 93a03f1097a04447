package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/valyala/bytebufferpool"
)

// ExpiryLayout is RFC 3339 with millisecond precision, which Date.parse
// accepts in every browser.
const ExpiryLayout = "2006-01-02T15:04:05.000Z07:00"

//go:embed templates/*.gohtml
var templateFS embed.FS

var templateFn = template.FuncMap{
	"countdownFormat": func() string {
		return CountdownFormat
	},
}

type templateBase struct {
	template *template.Template
}

type artifactTemplates templateBase

var Artifact = artifactTemplates{
	template: template.Must(
		template.New("artifact").
			Funcs(templateFn).
			ParseFS(templateFS, "templates/artifact.gohtml")),
}

func (t artifactTemplates) ExecutePage(w io.Writer, data PageArtifact) error {
	return t.template.ExecuteTemplate(w, "artifact/page.html", data)
}

// Render produces the self-contained viewer document for one secret.
func Render(id, plaintext string, expiresAt time.Time) (string, error) {
	model := PageArtifact{
		ID:            id,
		Secret:        plaintext,
		ExpiresAt:     FormatExpiry(expiresAt),
		Placeholder:   Placeholder,
		ExpiredNotice: ExpiredNotice,
	}

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	if err := Artifact.ExecutePage(bb, model); err != nil {
		return "", fmt.Errorf("rendering artifact %s: %w", id, err)
	}
	return bb.String(), nil
}

func FormatExpiry(t time.Time) string {
	return t.UTC().Format(ExpiryLayout)
}

// ReloadTemplates re-parses the artifact template from dir, which must
// contain templates/artifact.gohtml.
func ReloadTemplates(dir string) error {
	t, err := template.New("artifact").
		Funcs(templateFn).
		ParseFS(os.DirFS(dir), "templates/artifact.gohtml")
	if err != nil {
		return fmt.Errorf("reloading templates from %s: %w", dir, err)
	}
	Artifact.template = t
	return nil
}
