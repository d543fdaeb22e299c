// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly instead of running a tea.Program and
// executes returned commands inline, so assertions see the model state
// right after each key press.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds command chains so a model that keeps emitting commands
// cannot hang a test.
const maxDepth = 64

// cmdTimeout skips commands that wait on timers (ticks, blinks).
const cmdTimeout = 20 * time.Millisecond

type Driver struct {
	t     *testing.T
	model tea.Model

	// Quit is set once a command returns tea.QuitMsg. The runtime would
	// stop the program there; the driver ignores further input instead.
	Quit bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) { d.Resize(w, h) }
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.run(model.Init(), 0)
	return d
}

// Model returns the current model, for type assertions in tests.
func (d *Driver) Model() tea.Model { return d.model }

func (d *Driver) View() string { return d.model.View() }

func (d *Driver) Resize(w, h int) {
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
}

// Send feeds msg through Update and runs whatever it returns.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	next, cmd := d.model.Update(msg)
	d.model = next
	d.run(cmd, 0)
}

// Press sends named keys in order. Names follow tea.KeyMsg.String():
// "up", "pgdown", "end", "esc", "ctrl+c"; anything else is typed as runes.
func (d *Driver) Press(keys ...string) {
	d.t.Helper()
	for _, k := range keys {
		d.Send(keyMsg(k))
	}
}

var namedKeys = map[string]tea.KeyType{
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"pgup":   tea.KeyPgUp,
	"pgdown": tea.KeyPgDown,
	"home":   tea.KeyHome,
	"end":    tea.KeyEnd,
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"ctrl+c": tea.KeyCtrlC,
	"ctrl+d": tea.KeyCtrlD,
	"ctrl+u": tea.KeyCtrlU,
}

func keyMsg(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}
	msg, ok := await(cmd)
	if !ok || msg == nil {
		return
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c, depth+1)
		}
	case tea.QuitMsg:
		d.Quit = true
	default:
		next, cmd := d.model.Update(msg)
		d.model = next
		d.run(cmd, depth+1)
	}
}

func await(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdTimeout):
		return nil, false
	}
}
