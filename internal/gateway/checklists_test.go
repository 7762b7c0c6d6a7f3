package gateway

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/genchecklist/internal/core"
	"github.com/dhabedank/genchecklist/internal/llm"
	"github.com/dhabedank/genchecklist/internal/session"
)

const tripResponse = `{"categories":[{"name":"Clothing","items":[{"itemName":"Swimsuit"},{"itemName":"Sandals","quantitySuggestion":"1 pair"}]},{"name":"Empty","items":[]}]}`

func decodeSnapshot(t *testing.T, body []byte) session.Snapshot {
	t.Helper()
	var snap session.Snapshot
	require.NoError(t, sonic.Unmarshal(body, &snap), "body: %s", body)
	return snap
}

func TestPostChecklist(t *testing.T) {
	gen := &stubGenerator{text: "```json\n" + tripResponse + "\n```"}
	sess := session.New("")
	e, _ := newTestEcho(t, Options{Generator: gen, Session: sess})

	rec := do(e, http.MethodPost, "/api/checklists/trip", `{"destinationType":"Beach","durationInDays":3,"activities":"swimming"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	snap := decodeSnapshot(t, rec.Body.Bytes())
	assert.Equal(t, session.StatusReady, snap.Status)
	assert.False(t, snap.Loading)
	require.NotNil(t, snap.Checklist)
	require.Len(t, snap.Checklist.Groups, 1)
	g := snap.Checklist.Groups[0]
	assert.Equal(t, "Clothing", g.Key)
	require.Len(t, g.Items, 2)
	assert.Equal(t, "Swimsuit", g.Items[0].Name)
	assert.False(t, g.Items[0].Done)
	assert.NotEmpty(t, g.Items[0].ID)
	assert.Equal(t, "1 pair", g.Items[1].Field("quantitySuggestion"))

	assert.Equal(t, core.DomainTrip, sess.Active())
	assert.Contains(t, gen.Last().Prompt, "Beach")
	assert.Equal(t, 1, gen.Calls())
}

func TestPostChecklistValidation(t *testing.T) {
	gen := &stubGenerator{text: "{}"}
	e, _ := newTestEcho(t, Options{Generator: gen})

	rec := do(e, http.MethodPost, "/api/checklists/event", `{"eventType":"Wedding","guestCount":0,"venueType":"Indoor","audience":"Primarily Adults"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "guestCount")
	assert.Zero(t, gen.Calls())

	rec = do(e, http.MethodPost, "/api/checklists/event", `{"guestCount":"many"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostChecklistUnknownDomain(t *testing.T) {
	e, _ := newTestEcho(t, Options{Generator: &stubGenerator{text: "{}"}})
	rec := do(e, http.MethodPost, "/api/checklists/garden", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, msgUnknownDomain, decodeError(t, rec).Error)
}

func TestPostChecklistMalformedShapeDegrades(t *testing.T) {
	e, _ := newTestEcho(t, Options{Generator: &stubGenerator{text: `{"timeline":"not an array"}`}})

	rec := do(e, http.MethodPost, "/api/checklists/moving", `{"moveType":"Local"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec.Body.Bytes())
	require.NotNil(t, snap.Checklist)
	assert.Empty(t, snap.Checklist.Groups)
}

func TestPostChecklistUpstreamErrorFillsSlot(t *testing.T) {
	sess := session.New("")
	e, _ := newTestEcho(t, Options{Generator: &stubGenerator{err: &llm.UpstreamError{Status: 429, Message: "quota"}}, Session: sess})

	rec := do(e, http.MethodPost, "/api/checklists/pet", `{"petType":"Cat"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "quota", decodeError(t, rec).Error)

	snap := sess.Snapshot(core.DomainPet)
	assert.Equal(t, session.StatusError, snap.Status)
	assert.Equal(t, "quota", snap.Error)
}

func TestPostChecklistMalformedOutputFillsSlotWithGenericMessage(t *testing.T) {
	sess := session.New("")
	e, _ := newTestEcho(t, Options{Generator: &stubGenerator{text: "Sure! Here is your checklist."}, Session: sess})

	rec := do(e, http.MethodPost, "/api/checklists/trip", `{"destinationType":"Beach","durationInDays":3}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Here is your checklist")

	rec = do(e, http.MethodGet, "/api/checklists/trip", "")
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decodeSnapshot(t, rec.Body.Bytes())
	assert.Equal(t, session.StatusError, snap.Status)
	assert.Equal(t, msgMalformedOutput, snap.Error)
	assert.NotContains(t, rec.Body.String(), "Here is your checklist")
}

func TestPostChecklistMissingCredential(t *testing.T) {
	e, _ := newTestEcho(t, Options{})
	rec := do(e, http.MethodPost, "/api/checklists/pet", `{"petType":"Cat"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgMissingAPIKey, decodeError(t, rec).Error)
}

// blockingGenerator holds every call until release is closed.
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingGenerator) Name() string { return "blocking" }

func (b *blockingGenerator) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return tripResponse, nil
}

func TestPostChecklistDiscardsStaleResult(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	sess := session.New("")
	e, _ := newTestEcho(t, Options{Generator: gen, Session: sess})

	done := make(chan int)
	go func() {
		rec := do(e, http.MethodPost, "/api/checklists/trip", `{"destinationType":"City","durationInDays":2}`)
		done <- rec.Code
	}()

	select {
	case <-gen.started:
	case <-time.After(5 * time.Second):
		t.Fatal("generation never started")
	}
	assert.True(t, sess.Loading(core.DomainTrip))

	sess.SwitchView(core.DomainMoving)
	close(gen.release)

	assert.Equal(t, http.StatusConflict, <-done)
	snap := sess.Snapshot(core.DomainTrip)
	assert.Equal(t, session.StatusNone, snap.Status)
	assert.Nil(t, snap.Checklist)
}

func TestToggleItem(t *testing.T) {
	sess := session.New("")
	e, _ := newTestEcho(t, Options{Generator: &stubGenerator{text: tripResponse}, Session: sess})

	rec := do(e, http.MethodPost, "/api/checklists/trip", `{"destinationType":"Beach","durationInDays":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	item := decodeSnapshot(t, rec.Body.Bytes()).Checklist.Groups[0].Items[0]

	body := `{"groupKey":"Clothing","itemId":"` + item.ID + `"}`
	rec = do(e, http.MethodPost, "/api/checklists/trip/toggle", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeSnapshot(t, rec.Body.Bytes()).Checklist.Groups[0].Items[0].Done)

	rec = do(e, http.MethodPost, "/api/checklists/trip/toggle", body)
	assert.False(t, decodeSnapshot(t, rec.Body.Bytes()).Checklist.Groups[0].Items[0].Done)

	rec = do(e, http.MethodPost, "/api/checklists/trip/toggle", `{"groupKey":"Nope","itemId":"`+item.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, "unmatched toggle is a no-op")
	assert.False(t, decodeSnapshot(t, rec.Body.Bytes()).Checklist.Groups[0].Items[0].Done)
}

func TestGetAndDeleteChecklist(t *testing.T) {
	sess := session.New(core.DomainEvent)
	sess.Replace(core.DomainEvent, core.Checklist{Domain: core.DomainEvent, Groups: []core.Group{{Key: "Day-Of", Items: []core.Item{{ID: "1", Name: "Set up"}}}}})
	e, _ := newTestEcho(t, Options{Session: sess})

	rec := do(e, http.MethodGet, "/api/checklists/event", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, session.StatusReady, decodeSnapshot(t, rec.Body.Bytes()).Status)

	rec = do(e, http.MethodDelete, "/api/checklists/event", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/api/checklists/event", "")
	snap := decodeSnapshot(t, rec.Body.Bytes())
	assert.Equal(t, session.StatusNone, snap.Status)
	assert.Nil(t, snap.Checklist)
}

func TestExportChecklist(t *testing.T) {
	sess := session.New(core.DomainEvent)
	sess.Replace(core.DomainEvent, core.Checklist{Domain: core.DomainEvent, Groups: []core.Group{{Key: "Day-Of", Items: []core.Item{{ID: "1", Name: "Set up"}}}}})
	e, s := newTestEcho(t, Options{Session: sess})
	s.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }

	rec := do(e, http.MethodGet, "/api/checklists/event/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="GenChecklist_event_Design_Your_Unforgettable_Event_2026-05-01.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = do(e, http.MethodGet, "/api/checklists/event/export?format=json&title=Party", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "GenChecklist_event_Party_2026-05-01.json")
	assert.Contains(t, rec.Body.String(), `"Set up"`)

	rec = do(e, http.MethodGet, "/api/checklists/event/export?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportEmptyChecklist(t *testing.T) {
	e, _ := newTestEcho(t, Options{})
	rec := do(e, http.MethodGet, "/api/checklists/new-beginnings/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}
