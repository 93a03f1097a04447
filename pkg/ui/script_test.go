package ui

import (
	"fmt"
	"html"
	"regexp"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	scriptRe    = regexp.MustCompile(`(?s)<script>(.*?)</script>`)
	secretDivRe = regexp.MustCompile(`<div id="secret" data-secret="([^"]*)" data-expires-at="([^"]*)">([^<]*)</div>`)
)

// domStub is the part of the browser the artifact script touches: two
// elements, the body, a controllable clock and a timer queue.
const domStub = `
var __now = 0;
var __timers = [];
var __fired = [];
Date.now = function () { return __now; };

function setTimeout(fn, ms) {
	__timers.push({ fn: fn, at: __now + ms });
	return __timers.length;
}

function clearTimeout(id) {
	if (id > 0 && id <= __timers.length) {
		__timers[id - 1].fn = null;
	}
}

function __advance(ms) {
	var target = __now + ms;
	for (;;) {
		var next = null;
		for (var i = 0; i < __timers.length; i++) {
			var t = __timers[i];
			if (t.fn !== null && t.at <= target && (next === null || t.at < next.at)) {
				next = t;
			}
		}
		if (next === null) {
			break;
		}
		__now = next.at;
		var fn = next.fn;
		next.fn = null;
		__fired.push(__now);
		fn();
	}
	__now = target;
}

function Element(tag, attrs, text) {
	this.tagName = tag;
	this.attrs = attrs || {};
	this.textContent = text || "";
	this.className = "";
	this.style = {};
	this.listeners = {};
}
Element.prototype.getAttribute = function (name) {
	return Object.prototype.hasOwnProperty.call(this.attrs, name) ? this.attrs[name] : null;
};
Element.prototype.removeAttribute = function (name) { delete this.attrs[name]; };
Element.prototype.addEventListener = function (type, fn) { this.listeners[type] = fn; };
Element.prototype.click = function () {
	if (this.listeners.click) {
		this.listeners.click.call(this, {});
	}
};

var __secret = new Element("div", { "data-secret": __secretAttr, "data-expires-at": __expiresAttr }, __placeholder);
var __countdown = new Element("p", {}, "");
var document = {
	body: {
		children: [__secret, __countdown],
		replaceChildren: function () { this.children = Array.prototype.slice.call(arguments); }
	},
	getElementById: function (id) { return { secret: __secret, countdown: __countdown }[id] || null; },
	createElement: function (tag) { return new Element(tag); }
};

function __expired() {
	var c = document.body.children;
	return c.length === 1 && c[0].className === "expired";
}
`

// page runs the script of a rendered artifact against domStub.
type page struct {
	t  *testing.T
	vm *goja.Runtime
}

func openPage(t *testing.T, doc string, now time.Time) *page {
	t.Helper()
	script := scriptRe.FindStringSubmatch(doc)
	require.Len(t, script, 2)
	div := secretDivRe.FindStringSubmatch(doc)
	require.Len(t, div, 4)

	vm := goja.New()
	require.NoError(t, vm.Set("__secretAttr", html.UnescapeString(div[1])))
	require.NoError(t, vm.Set("__expiresAttr", html.UnescapeString(div[2])))
	require.NoError(t, vm.Set("__placeholder", html.UnescapeString(div[3])))

	p := &page{t: t, vm: vm}
	p.run(domStub)
	p.run(fmt.Sprintf("__now = %d;", now.UnixMilli()))
	p.run(script[1])
	return p
}

func (p *page) run(src string) goja.Value {
	p.t.Helper()
	v, err := p.vm.RunString(src)
	require.NoError(p.t, err)
	return v
}

// advance moves the clock and fires every timer that falls due on the way.
func (p *page) advance(d time.Duration) {
	p.t.Helper()
	p.run(fmt.Sprintf("__advance(%d);", d.Milliseconds()))
}

// stall moves the clock without firing timers, like a throttled tab.
func (p *page) stall(d time.Duration) {
	p.t.Helper()
	p.run(fmt.Sprintf("__now += %d;", d.Milliseconds()))
}

func (p *page) click() {
	p.t.Helper()
	p.run("__secret.click();")
}

func (p *page) now() time.Time {
	return time.UnixMilli(p.run("__now").ToInteger()).UTC()
}

// fired returns the instants the timer ran at since the last call.
func (p *page) fired() []time.Time {
	p.t.Helper()
	var ms []int64
	require.NoError(p.t, p.vm.ExportTo(p.run("var __f = __fired; __fired = []; __f;"), &ms))
	out := make([]time.Time, 0, len(ms))
	for _, m := range ms {
		out = append(out, time.UnixMilli(m).UTC())
	}
	return out
}

func (p *page) expired() bool {
	return p.run("__expired();").ToBoolean()
}

func (p *page) content() string {
	return p.run(`__expired() ? document.body.children[0].textContent : __secret.textContent;`).String()
}

func (p *page) countdown() string {
	return p.run(`document.body.children.indexOf(__countdown) >= 0 ? __countdown.textContent : "";`).String()
}

func (p *page) holdsSecret() bool {
	return p.run(`__secret.getAttribute("data-secret") !== null;`).ToBoolean()
}

var pageStart = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func TestPageCountdownToExpiry(t *testing.T) {
	doc, err := Render("aB3dE5gH", "red paris tiger", pageStart.Add(2*time.Second))
	require.NoError(t, err)
	p := openPage(t, doc, pageStart)

	assert.Equal(t, "Expires in 2 seconds", p.countdown())
	assert.Equal(t, Placeholder, p.content())

	p.advance(time.Second)
	assert.Equal(t, "Expires in 1 seconds", p.countdown())
	assert.False(t, p.expired())

	p.advance(1500 * time.Millisecond)
	assert.True(t, p.expired())
	assert.Equal(t, ExpiredNotice, p.content())
	assert.Empty(t, p.countdown())
	assert.False(t, p.holdsSecret())
	assert.Equal(t, []time.Time{pageStart.Add(time.Second), pageStart.Add(2 * time.Second)}, p.fired())

	// no timer is left running
	p.advance(time.Minute)
	assert.Empty(t, p.fired())
}

func TestPageRevealShowsExactPlaintext(t *testing.T) {
	secret := `red "paris" <tiger> & co`
	doc, err := Render("aB3dE5gH", secret, pageStart.Add(2*time.Second))
	require.NoError(t, err)
	p := openPage(t, doc, pageStart)

	p.click()
	assert.Equal(t, secret, p.content())
	assert.Equal(t, "transparent", p.run("__secret.style.background;").String())
	assert.Equal(t, "default", p.run("__secret.style.cursor;").String())

	p.click()
	assert.Equal(t, secret, p.content())

	p.advance(2 * time.Second)
	assert.True(t, p.expired())
	assert.Equal(t, ExpiredNotice, p.content())
	assert.False(t, p.holdsSecret())
}

func TestPageRefusesRevealAfterExpiry(t *testing.T) {
	doc, err := Render("aB3dE5gH", "red paris tiger", pageStart.Add(2*time.Second))
	require.NoError(t, err)
	p := openPage(t, doc, pageStart)

	p.advance(1400 * time.Millisecond)
	assert.Equal(t, "Expires in 1 seconds", p.countdown())

	// the timer is late, the click lands 300ms past expiry
	p.stall(900 * time.Millisecond)
	p.click()
	assert.True(t, p.expired())
	assert.Equal(t, ExpiredNotice, p.content())
	assert.False(t, p.holdsSecret())
}

func TestPageAlreadyExpired(t *testing.T) {
	doc, err := Render("aB3dE5gH", "red paris tiger", pageStart)
	require.NoError(t, err)
	p := openPage(t, doc, pageStart.Add(time.Millisecond))

	assert.True(t, p.expired())
	p.click()
	assert.Equal(t, ExpiredNotice, p.content())
}

// TestViewerMatchesPage drives Viewer with the instants the page timer
// actually fired at and compares what both show after every step.
func TestViewerMatchesPage(t *testing.T) {
	type step struct {
		advance time.Duration
		stall   time.Duration
		click   bool
	}
	tests := []struct {
		name    string
		expires time.Duration
		steps   []step
	}{
		{
			name:    "hidden until expiry",
			expires: 3 * time.Second,
			steps:   []step{{advance: 700 * time.Millisecond}, {advance: time.Second}, {advance: 2 * time.Second}},
		},
		{
			name:    "revealed then expired",
			expires: 3 * time.Second,
			steps:   []step{{advance: 300 * time.Millisecond}, {click: true}, {advance: 1200 * time.Millisecond}, {advance: 1500 * time.Millisecond}},
		},
		{
			name:    "click after a late timer",
			expires: 2 * time.Second,
			steps:   []step{{advance: 1400 * time.Millisecond}, {stall: 900 * time.Millisecond}, {click: true}},
		},
		{
			name:    "odd expiry",
			expires: 2600 * time.Millisecond,
			steps:   []step{{advance: 500 * time.Millisecond}, {click: true}, {advance: 3 * time.Second}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expiresAt := pageStart.Add(tt.expires)
			doc, err := Render("aB3dE5gH", "red paris tiger", expiresAt)
			require.NoError(t, err)

			p := openPage(t, doc, pageStart)
			v := NewViewer("red paris tiger", expiresAt)
			v.Tick(pageStart)

			for i, s := range tt.steps {
				switch {
				case s.click:
					p.click()
					v.Reveal(p.now())
				case s.stall > 0:
					p.stall(s.stall)
				default:
					p.advance(s.advance)
					for _, at := range p.fired() {
						v.Tick(at)
					}
				}
				assert.Equal(t, v.State() == StateExpired, p.expired(), "step %d", i)
				assert.Equal(t, v.Content(), p.content(), "step %d", i)
				assert.Equal(t, v.Countdown(), p.countdown(), "step %d", i)
			}
		})
	}
}
