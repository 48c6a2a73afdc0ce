package scene

// Scene is the ordered list of top-level entities. Index 0 renders first
// (bottom); the last entry renders on top. Hit queries walk back to front.
type Scene struct {
	Entities []Entity
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{}
}

// Add appends the entity on top of the z-order.
func (s *Scene) Add(e Entity) {
	s.Entities = append(s.Entities, e)
}

// Insert places the entity at the given z-index, clamped to the valid
// range.
func (s *Scene) Insert(i int, e Entity) {
	if i < 0 {
		i = 0
	}
	if i > len(s.Entities) {
		i = len(s.Entities)
	}
	s.Entities = append(s.Entities, nil)
	copy(s.Entities[i+1:], s.Entities[i:])
	s.Entities[i] = e
}

// Remove deletes the top-level entity with the given id. Unknown ids are
// ignored.
func (s *Scene) Remove(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
	return true
}

// IndexOf returns the z-index of a top-level entity, or -1.
func (s *Scene) IndexOf(id string) int {
	for i, e := range s.Entities {
		if e.EntityID() == id {
			return i
		}
	}
	return -1
}

// Find returns the top-level entity with the given id, or nil. Group
// children are addressed through their group, not through the scene.
func (s *Scene) Find(id string) Entity {
	if i := s.IndexOf(id); i >= 0 {
		return s.Entities[i]
	}
	return nil
}

// MoveToIndex changes an entity's z-index, clamping the target into range.
func (s *Scene) MoveToIndex(id string, to int) bool {
	from := s.IndexOf(id)
	if from < 0 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= len(s.Entities) {
		to = len(s.Entities) - 1
	}
	if to == from {
		return true
	}
	e := s.Entities[from]
	s.Entities = append(s.Entities[:from], s.Entities[from+1:]...)
	s.Entities = append(s.Entities, nil)
	copy(s.Entities[to+1:], s.Entities[to:])
	s.Entities[to] = e
	return true
}

// Raise moves the entity one step toward the top.
func (s *Scene) Raise(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	return s.MoveToIndex(id, i+1)
}

// Lower moves the entity one step toward the bottom.
func (s *Scene) Lower(id string) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	return s.MoveToIndex(id, i-1)
}

// ToFront moves the entity to the top of the z-order.
func (s *Scene) ToFront(id string) bool {
	return s.MoveToIndex(id, len(s.Entities)-1)
}

// ToBack moves the entity to the bottom of the z-order.
func (s *Scene) ToBack(id string) bool {
	return s.MoveToIndex(id, 0)
}

// HitTopmost returns the frontmost entity whose hit test passes, or nil.
func (s *Scene) HitTopmost(x, y float64) Entity {
	for i := len(s.Entities) - 1; i >= 0; i-- {
		if s.Entities[i].HitTest(x, y) {
			return s.Entities[i]
		}
	}
	return nil
}

// HitAll returns every entity whose hit test passes, frontmost first.
func (s *Scene) HitAll(x, y float64) []Entity {
	var hits []Entity
	for i := len(s.Entities) - 1; i >= 0; i-- {
		if s.Entities[i].HitTest(x, y) {
			hits = append(hits, s.Entities[i])
		}
	}
	return hits
}

// Clone returns a deep structural copy. Entity ids are preserved; no
// slice, pointer, or entity is shared with the original.
func (s *Scene) Clone() *Scene {
	dup := &Scene{}
	if s.Entities != nil {
		dup.Entities = make([]Entity, len(s.Entities))
		for i, e := range s.Entities {
			dup.Entities[i] = e.Clone()
		}
	}
	return dup
}
