package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/genchecklist/internal/core"
)

func packingList() core.Checklist {
	return core.Checklist{
		Domain: core.DomainTrip,
		Groups: []core.Group{
			{Key: "Clothing", Items: []core.Item{{ID: "c1", Name: "Swimsuit"}, {ID: "c2", Name: "Hat"}}},
			{Key: "Documents", Items: []core.Item{{ID: "d1", Name: "Passport"}}},
		},
	}
}

func item(t *testing.T, s *Store, group, id string) core.Item {
	t.Helper()
	cl, ok := s.Checklist()
	require.True(t, ok)
	for _, g := range cl.Groups {
		if g.Key != group {
			continue
		}
		for _, it := range g.Items {
			if it.ID == id {
				return it
			}
		}
	}
	t.Fatalf("item %s/%s not found", group, id)
	return core.Item{}
}

func TestStoreToggleTwiceRestores(t *testing.T) {
	s := NewStore()
	s.Replace(packingList())

	require.True(t, s.Toggle("Clothing", "c2"))
	assert.True(t, item(t, s, "Clothing", "c2").Done)
	assert.False(t, item(t, s, "Clothing", "c1").Done, "neighbours are untouched")

	require.True(t, s.Toggle("Clothing", "c2"))
	assert.False(t, item(t, s, "Clothing", "c2").Done)
}

func TestStoreToggleMissIsNoop(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Toggle("Clothing", "c1"), "empty store")

	s.Replace(packingList())
	before, _ := s.Checklist()

	assert.False(t, s.Toggle("Nope", "c1"))
	assert.False(t, s.Toggle("Clothing", "d1"), "item lives in another group")
	assert.False(t, s.Toggle("Clothing", ""))

	after, _ := s.Checklist()
	assert.Equal(t, before, after)
}

func TestStoreToggleSearchesRepeatedKeys(t *testing.T) {
	cl := core.Checklist{Domain: core.DomainMoving, Groups: []core.Group{
		{Key: "Week 1", Items: []core.Item{{ID: "a"}}},
		{Key: "Week 1", Items: []core.Item{{ID: "b"}}},
	}}
	s := NewStore()
	s.Replace(cl)

	require.True(t, s.Toggle("Week 1", "b"))
	got, _ := s.Checklist()
	assert.False(t, got.Groups[0].Items[0].Done)
	assert.True(t, got.Groups[1].Items[0].Done)
}

func TestStoreReplaceCopiesInput(t *testing.T) {
	cl := packingList()
	s := NewStore()
	s.Replace(cl)
	s.Toggle("Clothing", "c1")

	assert.False(t, cl.Groups[0].Items[0].Done, "caller's checklist must not change")
}

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	assert.Equal(t, StatusNone, s.Status())

	s.begin()
	assert.Equal(t, StatusGenerating, s.Status())

	s.fail("quota exceeded")
	assert.Equal(t, StatusError, s.Status())
	assert.Equal(t, "quota exceeded", s.Err())

	s.Replace(packingList())
	assert.Equal(t, StatusReady, s.Status())
	assert.Empty(t, s.Err())

	s.Clear()
	assert.Equal(t, StatusNone, s.Status())
	_, ok := s.Checklist()
	assert.False(t, ok)
}
