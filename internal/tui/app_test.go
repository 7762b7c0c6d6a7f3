package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/genchecklist/internal/core"
	"github.com/dhabedank/genchecklist/internal/llm"
	"github.com/dhabedank/genchecklist/internal/session"
)

type harness struct {
	sess    *session.Session
	details int
	exports []core.Checklist
	result  core.Checklist
	err     error
}

func newHarness() *harness {
	return &harness{sess: session.New(""), result: packingList()}
}

func (h *harness) config() AppConfig {
	return AppConfig{
		Session: h.sess,
		Details: func(d core.Domain) (core.Details, error) {
			h.details++
			return &core.TripDetails{DestinationType: core.DestinationBeach, DurationInDays: 5}, nil
		},
		Generate: func(ctx context.Context, d core.Details) (core.Checklist, error) {
			return h.result, h.err
		},
		Export: func(cl core.Checklist) (string, error) {
			h.exports = append(h.exports, cl)
			return "GenChecklist_trip.pdf", nil
		},
	}
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and every command it batches, returning the messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func generated(t *testing.T, cmd tea.Cmd) generatedMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if g, ok := msg.(generatedMsg); ok {
			return g
		}
	}
	t.Fatal("no generation result in command")
	return generatedMsg{}
}

func TestPickDomainGenerates(t *testing.T) {
	h := newHarness()
	a := NewApp(h.config())
	assert.Nil(t, a.Init())

	a, cmd := update(t, a, key("enter"))
	assert.Equal(t, core.DomainTrip, a.Domain())
	assert.Equal(t, core.DomainTrip, h.sess.Active())
	assert.True(t, h.sess.Loading(core.DomainTrip))
	assert.Contains(t, a.View(), "Generating")

	a, _ = update(t, a, generated(t, cmd))
	snap := h.sess.Snapshot(core.DomainTrip)
	assert.Equal(t, session.StatusReady, snap.Status)
	assert.False(t, snap.Loading)
	assert.Contains(t, a.View(), "Swimsuit")
}

func TestRegenerateDisabledWhileLoading(t *testing.T) {
	h := newHarness()
	a := NewApp(h.config())

	a, _ = update(t, a, key("enter"))
	_, cmd := update(t, a, key("r"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, h.details)
}

func TestToggleItems(t *testing.T) {
	h := newHarness()
	a := NewApp(h.config())
	a, cmd := update(t, a, key("enter"))
	a, _ = update(t, a, generated(t, cmd))

	a, _ = update(t, a, key(" "))
	a, _ = update(t, a, key("j"))
	a, _ = update(t, a, key(" "))

	snap := h.sess.Snapshot(core.DomainTrip)
	require.NotNil(t, snap.Checklist)
	items := snap.Checklist.Groups[0].Items
	assert.True(t, items[0].Done)
	assert.False(t, items[1].Done)
	assert.Equal(t, 1, a.cursor)
}

func TestBackDiscardsInFlightResult(t *testing.T) {
	h := newHarness()
	a := NewApp(h.config())
	a, cmd := update(t, a, key("enter"))

	a, _ = update(t, a, key("esc"))
	assert.Equal(t, core.Domain(""), a.Domain())
	assert.Equal(t, core.Domain(""), h.sess.Active())

	update(t, a, generated(t, cmd))
	snap := h.sess.Snapshot(core.DomainTrip)
	assert.Equal(t, session.StatusNone, snap.Status)
	assert.Nil(t, snap.Checklist)
}

func TestGenerationErrorShown(t *testing.T) {
	h := newHarness()
	h.err = fmt.Errorf("generate trip checklist: %w", &llm.UpstreamError{Status: 429, Message: "quota exceeded"})
	a := NewApp(h.config())

	a, cmd := update(t, a, key("enter"))
	a, _ = update(t, a, generated(t, cmd))

	assert.Equal(t, session.StatusError, h.sess.Snapshot(core.DomainTrip).Status)
	view := a.View()
	assert.Contains(t, view, "quota exceeded")
	assert.NotContains(t, view, "generate trip checklist")
}

func TestMalformedOutputShowsGenericMessage(t *testing.T) {
	h := newHarness()
	_, _, h.err = llm.DecodeResponse("Sure! Here is your checklist.")
	a := NewApp(h.config())

	a, cmd := update(t, a, key("enter"))
	a, _ = update(t, a, generated(t, cmd))

	assert.Equal(t, llm.MalformedOutputMessage, h.sess.Snapshot(core.DomainTrip).Error)
	assert.NotContains(t, a.View(), "Here is your checklist")
}

func TestValidationFailureSkipsRequest(t *testing.T) {
	h := newHarness()
	cfg := h.config()
	cfg.Details = func(core.Domain) (core.Details, error) {
		return &core.TripDetails{}, nil
	}
	a := NewApp(cfg)

	a, cmd := update(t, a, key("enter"))
	assert.Nil(t, cmd)
	assert.False(t, h.sess.Loading(core.DomainTrip))
	assert.Contains(t, a.View(), "destinationType")
}

func TestExport(t *testing.T) {
	h := newHarness()
	a := NewApp(h.config())

	a, cmd := update(t, a, key("enter"))
	a, _ = update(t, a, generated(t, cmd))

	a, cmd = update(t, a, key("p"))
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	a, _ = update(t, a, msgs[0])

	require.Len(t, h.exports, 1)
	assert.Equal(t, core.DomainTrip, h.exports[0].Domain)
	assert.Contains(t, a.View(), "GenChecklist_trip.pdf")
}

func TestPresetDomainStartsImmediately(t *testing.T) {
	h := newHarness()
	cfg := h.config()
	cfg.Domain = core.DomainTrip
	a := NewApp(cfg)

	msgs := collect(a.Init())
	require.Len(t, msgs, 1)
	_, cmd := update(t, a, msgs[0])
	assert.NotNil(t, cmd)
	assert.True(t, h.sess.Loading(core.DomainTrip))
}
