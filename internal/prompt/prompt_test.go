package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpirationRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("soon\n-5\n0\n1.5\n999999\n 120 \n"), &out, time.Hour)

	seconds, err := p.Expiration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, seconds)

	assert.Contains(t, out.String(), `"soon" is not a whole number of seconds.`)
	assert.Contains(t, out.String(), `"1.5" is not a whole number of seconds.`)
	assert.Equal(t, 2, strings.Count(out.String(), "must be a positive number"))
	assert.Contains(t, out.String(), "may not exceed 3600 seconds")
	assert.Equal(t, 6, strings.Count(out.String(), "Enter the expiration time in seconds: "))
}

func TestExpirationUnlimitedStillFitsDuration(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("9223372037\n9223372036\n"), &out, 0)

	seconds, err := p.Expiration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9223372036, seconds)
	assert.Contains(t, out.String(), "may not exceed 9223372036 seconds")
	assert.Positive(t, time.Duration(seconds)*time.Second)
}

func TestExpirationWithoutTrailingNewline(t *testing.T) {
	p := New(strings.NewReader("30"), io.Discard, 0)
	seconds, err := p.Expiration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, seconds)
}

func TestExpirationEOF(t *testing.T) {
	p := New(strings.NewReader("abc\n"), io.Discard, 0)
	_, err := p.Expiration(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestExpirationCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(strings.NewReader("30\n"), io.Discard, 0).Expiration(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("maybe\nYES\nn\n"), &out, 0)

	ok, err := p.Confirm(context.Background(), "Create another secret?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, out.String(), "Please answer y or n.")

	ok, err = p.Confirm(context.Background(), "Create another secret?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPresets(t *testing.T) {
	var out bytes.Buffer
	New(strings.NewReader(""), &out, 0).Presets()
	assert.Contains(t, out.String(), "30 (30 seconds), 60 (1 minute)")
	assert.Contains(t, out.String(), "604800 (1 week)")
}
