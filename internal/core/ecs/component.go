package ecs

// Removable is implemented by every component and relation store so the
// Registry can strip an entity's data from all of them on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store is a generic typed component store. No reflect, no interface{} —
// pure generics. Insertion order is preserved so queries stay stable within
// a tick (Each visits entities in the order their components were set).
type Store[T any] struct {
	data  map[EntityID]*T
	order []EntityID
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data:  make(map[EntityID]*T, 256),
		order: make([]EntityID, 0, 256),
	}
}

func (s *Store[T]) Set(id EntityID, c *T) {
	if _, ok := s.data[id]; !ok {
		s.order = append(s.order, id)
	}
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) {
	if _, ok := s.data[id]; !ok {
		return
	}
	delete(s.data, id)
	for i, e := range s.order {
		if e == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for _, id := range s.order {
		fn(id, s.data[id])
	}
}
