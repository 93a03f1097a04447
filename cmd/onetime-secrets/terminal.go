package main

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/pudottapommin/onetime-secrets-cli/internal/app"
	"github.com/pudottapommin/onetime-secrets-cli/internal/prompt"
	"github.com/pudottapommin/onetime-secrets-cli/pkg/secrets"
)

// terminal is the app.Operator backed by stdin/stdout.
type terminal struct {
	*prompt.Prompter
	out io.Writer
}

var _ app.Operator = (*terminal)(nil)

func (t *terminal) Published(p *app.Published) {
	seconds := int(time.Until(p.ExpiresAt).Round(time.Second).Seconds())
	fmt.Fprintln(t.out, color.GreenString("✓")+" Secret "+color.YellowString(string(p.ID))+" created")
	fmt.Fprintln(t.out, color.CyanString("→")+" Artifact: "+p.Path)
	fmt.Fprintln(t.out, color.CyanString("→")+" Expires at "+p.ExpiresAt.Format(time.RFC3339)+
		" (in "+secrets.DescribeExpiration(max(seconds, 0))+")")
}

func (t *terminal) Failed(err error) {
	fmt.Fprintln(t.out, color.RedString("✗")+" Failed to create secret: "+err.Error())
}

// startSpinner shows progress on w unless verbose output is on, in which
// case the spinner would interleave with log lines. The returned func stops it.
func startSpinner(w io.Writer, message string, verbose bool) func() {
	if verbose {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()
	return s.Stop
}
