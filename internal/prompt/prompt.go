package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pudottapommin/onetime-secrets-cli/pkg/secrets"
)

var (
	question = color.New(color.FgCyan, color.Bold)
	warning  = color.New(color.FgYellow)
)

// longestExpiration is the most seconds a time.Duration can hold.
const longestExpiration = math.MaxInt64 / int64(time.Second)

// Prompter asks the operator for input until it gets a valid answer.
type Prompter struct {
	in            *bufio.Reader
	out           io.Writer
	maxExpiration time.Duration
}

// New reads answers from in and writes prompts to out. Expirations longer
// than maxExpiration are refused; maxExpiration <= 0 disables the limit.
func New(in io.Reader, out io.Writer, maxExpiration time.Duration) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, maxExpiration: maxExpiration}
}

// Presets prints the well-known expirations as a hint.
func (p *Prompter) Presets() {
	var b strings.Builder
	for i, seconds := range secrets.ExpirationPresets() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d (%s)", seconds, secrets.DescribeExpiration(seconds))
	}
	fmt.Fprintln(p.out, "Common expirations in seconds: "+b.String())
}

// Expiration returns a positive number of seconds.
func (p *Prompter) Expiration(ctx context.Context) (int, error) {
	limit := longestExpiration
	if p.maxExpiration > 0 {
		limit = min(limit, int64(p.maxExpiration/time.Second))
	}
	for {
		line, err := p.ask(ctx, "Enter the expiration time in seconds: ")
		if err != nil {
			return 0, err
		}
		seconds, err := strconv.Atoi(line)
		switch {
		case err != nil:
			warning.Fprintf(p.out, "%q is not a whole number of seconds.\n", line)
		case seconds <= 0:
			warning.Fprintln(p.out, "The expiration must be a positive number of seconds.")
		case int64(seconds) > limit:
			warning.Fprintf(p.out, "The expiration may not exceed %d seconds.\n", limit)
		default:
			return seconds, nil
		}
	}
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(ctx context.Context, q string) (bool, error) {
	for {
		line, err := p.ask(ctx, q+" (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		warning.Fprintln(p.out, "Please answer y or n.")
	}
}

func (p *Prompter) ask(ctx context.Context, q string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	question.Fprint(p.out, q)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
