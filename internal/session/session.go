package session

import (
	"sync"

	"github.com/dhabedank/genchecklist/internal/core"
)

// Ticket identifies one outstanding generation. Complete applies its result
// only while the ticket is current.
type Ticket struct {
	Domain core.Domain
	epoch  uint64
}

// Snapshot is a point-in-time copy of one domain slot.
type Snapshot struct {
	Domain    core.Domain     `json:"domain"`
	Status    Status          `json:"status"`
	Loading   bool            `json:"loading"`
	Checklist *core.Checklist `json:"checklist,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type slot struct {
	store   *Store
	epoch   uint64 // bumped by every clear
	pending int
}

// Session holds one slot per domain and the active view. It is safe for
// concurrent use.
type Session struct {
	mu     sync.Mutex
	active core.Domain
	slots  map[core.Domain]*slot
}

// New creates a session with every domain slot empty and active as the
// current view ("" for none).
func New(active core.Domain) *Session {
	s := &Session{
		active: active,
		slots:  make(map[core.Domain]*slot, len(core.Domains)),
	}
	for _, d := range core.Domains {
		s.slots[d] = &slot{store: NewStore()}
	}
	return s
}

func (s *Session) slot(d core.Domain) *slot {
	sl, ok := s.slots[d]
	if !ok {
		sl = &slot{store: NewStore()}
		s.slots[d] = sl
	}
	return sl
}

// Active returns the domain currently in view.
func (s *Session) Active() core.Domain {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// SwitchView makes d the active domain and clears every slot. Generations
// still in flight are discarded when they complete.
func (s *Session) SwitchView(d core.Domain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = d
	for _, sl := range s.slots {
		sl.reset()
	}
}

// Begin marks d as generating and returns a ticket for the request.
func (s *Session) Begin(d core.Domain) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slot(d)
	sl.pending++
	sl.store.begin()
	return Ticket{Domain: d, epoch: sl.epoch}
}

// Complete applies the outcome of a generation. It reports false and changes
// nothing when the view moved to another domain or the slot was cleared
// after Begin. When several tickets overlap, the last to complete wins. A
// failure is stored as its core.UserMessage.
func (s *Session) Complete(t Ticket, cl core.Checklist, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slot(t.Domain)
	if t.epoch != sl.epoch {
		return false
	}
	if sl.pending > 0 {
		sl.pending--
	}
	if t.Domain != s.active {
		if sl.pending == 0 && sl.store.Status() == StatusGenerating {
			sl.store.Clear()
		}
		return false
	}
	if err != nil {
		sl.store.fail(core.UserMessage(err))
		return true
	}
	sl.store.Replace(cl)
	return true
}

// Replace installs cl into d's slot directly.
func (s *Session) Replace(d core.Domain, cl core.Checklist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot(d).store.Replace(cl)
}

// Clear empties d's slot and invalidates its outstanding tickets.
func (s *Session) Clear(d core.Domain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot(d).reset()
}

// Toggle flips one item in d's slot.
func (s *Session) Toggle(d core.Domain, groupKey, itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot(d).store.Toggle(groupKey, itemID)
}

// Loading reports whether any generation for d is outstanding.
func (s *Session) Loading(d core.Domain) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot(d).pending > 0
}

// Snapshot copies d's slot.
func (s *Session) Snapshot(d core.Domain) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl := s.slot(d)
	snap := Snapshot{
		Domain:  d,
		Status:  sl.store.Status(),
		Loading: sl.pending > 0,
		Error:   sl.store.Err(),
	}
	if cl, ok := sl.store.Checklist(); ok {
		cp := cl.Clone()
		snap.Checklist = &cp
	}
	return snap
}

func (sl *slot) reset() {
	sl.epoch++
	sl.pending = 0
	sl.store.Clear()
}
