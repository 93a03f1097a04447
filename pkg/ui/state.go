package ui

import (
	"fmt"
	"math"
	"time"
)

const (
	Placeholder                = "Click to reveal"
	ExpiredNotice              = "Secret Expired"
	DecryptionErrorPlaceholder = "Error decrypting secret"
	CountdownFormat            = "Expires in %d seconds"
)

type State int

const (
	StateHidden State = iota
	StateRevealed
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateRevealed:
		return "revealed"
	case StateExpired:
		return "expired"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func CountdownText(secondsLeft int) string {
	return fmt.Sprintf(CountdownFormat, secondsLeft)
}

// SecondsLeft matches Math.round((expiry - now) / 1000) in the artifact
// script: millisecond resolution, halves rounded towards +Inf.
func SecondsLeft(expiresAt, now time.Time) int {
	ms := expiresAt.Sub(now).Milliseconds()
	return int(math.Floor(float64(ms)/1000 + 0.5))
}

// Viewer mirrors the script embedded in the artifact. Reveal is the only
// operator-driven transition and Tick the timer-driven one; either expires
// the viewer once the expiry instant has passed, and nothing leaves that state.
type Viewer struct {
	secret    string
	expiresAt time.Time
	state     State
	text      string
	countdown string
}

func NewViewer(secret string, expiresAt time.Time) *Viewer {
	return &Viewer{secret: secret, expiresAt: expiresAt, state: StateHidden, text: Placeholder}
}

func (v *Viewer) State() State {
	return v.state
}

// Tick runs one timer step and returns the seconds shown, or 0 once expired.
// The countdown never shows less than one second while time remains.
func (v *Viewer) Tick(now time.Time) int {
	if v.state == StateExpired {
		return 0
	}
	if !now.Before(v.expiresAt) {
		v.expire()
		return 0
	}
	left := max(1, SecondsLeft(v.expiresAt, now))
	v.countdown = CountdownText(left)
	return left
}

// Reveal shows the secret. A click at or after expiry expires the viewer
// instead, even when no tick has noticed yet.
func (v *Viewer) Reveal(now time.Time) bool {
	if v.state == StateExpired {
		return false
	}
	if !now.Before(v.expiresAt) {
		v.expire()
		return false
	}
	if v.state != StateHidden {
		return false
	}
	v.state = StateRevealed
	v.text = v.secret
	return true
}

func (v *Viewer) expire() {
	v.state = StateExpired
	v.secret, v.text, v.countdown = "", "", ""
}

// Content is what the document shows in place of the secret.
func (v *Viewer) Content() string {
	if v.state == StateExpired {
		return ExpiredNotice
	}
	return v.text
}

func (v *Viewer) Countdown() string {
	return v.countdown
}
