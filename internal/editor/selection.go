package editor

import "github.com/vectorpad/vectorpad/engine-go/internal/scene"

// Selection holds entity ids in insertion order with no duplicates. Ids
// are weak references: entities may be deleted out from under them, so
// Resolve drops stale ids lazily instead of eagerly tracking deletions.
type Selection struct {
	ids []string
}

func NewSelection() *Selection {
	return &Selection{}
}

// Add appends the id unless already present.
func (s *Selection) Add(id string) {
	if s.Contains(id) {
		return
	}
	s.ids = append(s.ids, id)
}

// Remove drops the id, keeping order.
func (s *Selection) Remove(id string) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Toggle adds the id if absent, removes it if present.
func (s *Selection) Toggle(id string) {
	if s.Contains(id) {
		s.Remove(id)
	} else {
		s.Add(id)
	}
}

// Set replaces the selection.
func (s *Selection) Set(ids ...string) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		s.Add(id)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = s.ids[:0]
}

// Contains reports membership.
func (s *Selection) Contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no ids are held (stale or not).
func (s *Selection) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns a copy of the held ids, including any stale ones.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Resolve returns the live top-level entities for the held ids in
// insertion order, pruning ids that no longer resolve.
func (s *Selection) Resolve(sc *scene.Scene) []scene.Entity {
	var out []scene.Entity
	kept := s.ids[:0]
	for _, id := range s.ids {
		if e := sc.Find(id); e != nil {
			out = append(out, e)
			kept = append(kept, id)
		}
	}
	s.ids = kept
	return out
}
