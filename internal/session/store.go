// Package session holds per-domain checklist state for one user session.
package session

import "github.com/dhabedank/genchecklist/internal/core"

// Status is the lifecycle state of a domain slot.
type Status string

const (
	StatusNone       Status = "none"
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
)

// Store is the checklist slot of a single domain. It is not safe for
// concurrent use; Session serializes access.
type Store struct {
	status    Status
	checklist *core.Checklist
	err       string
}

// NewStore returns an empty slot.
func NewStore() *Store {
	return &Store{status: StatusNone}
}

// Replace installs a freshly normalized checklist.
func (s *Store) Replace(cl core.Checklist) {
	cl = cl.Clone()
	s.checklist = &cl
	s.status = StatusReady
	s.err = ""
}

// Clear empties the slot.
func (s *Store) Clear() {
	s.checklist = nil
	s.status = StatusNone
	s.err = ""
}

// Toggle flips Done on the item matched by group key and item id and reports
// whether anything changed. Group keys may repeat; every group with the key
// is searched.
func (s *Store) Toggle(groupKey, itemID string) bool {
	if s.checklist == nil {
		return false
	}
	for gi := range s.checklist.Groups {
		g := &s.checklist.Groups[gi]
		if g.Key != groupKey {
			continue
		}
		for ii := range g.Items {
			if g.Items[ii].ID == itemID {
				g.Items[ii].Done = !g.Items[ii].Done
				return true
			}
		}
	}
	return false
}

// Status returns the slot state.
func (s *Store) Status() Status { return s.status }

// Err returns the last failure message, if any.
func (s *Store) Err() string { return s.err }

// Checklist returns the current checklist, if one is installed.
func (s *Store) Checklist() (core.Checklist, bool) {
	if s.checklist == nil {
		return core.Checklist{}, false
	}
	return *s.checklist, true
}

func (s *Store) begin() {
	s.checklist = nil
	s.status = StatusGenerating
	s.err = ""
}

func (s *Store) fail(msg string) {
	s.checklist = nil
	s.status = StatusError
	s.err = msg
}
