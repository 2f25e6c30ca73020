package physics

// Handle identifies a body owned by a World. A handle becomes stale once the
// body is removed; the generation keeps recycled ids from aliasing.
type Handle struct {
	ID  int
	Gen int
}

// Valid reports whether h was ever issued.
func (h Handle) Valid() bool {
	return h.ID > 0
}

// handleStore tracks handle generations and free ids.
type handleStore struct {
	nextID int
	gen    []int
	free   []int
}

func (s *handleStore) create() Handle {
	if s == nil {
		return Handle{}
	}
	var id int
	if len(s.free) > 0 {
		id = s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
	} else {
		s.nextID++
		id = s.nextID
		s.gen = append(s.gen, 0)
	}
	return Handle{ID: id, Gen: s.gen[id-1]}
}

func (s *handleStore) destroy(h Handle) bool {
	if !s.isAlive(h) {
		return false
	}
	s.gen[h.ID-1]++
	s.free = append(s.free, h.ID)
	return true
}

func (s *handleStore) isAlive(h Handle) bool {
	if s == nil || h.ID <= 0 || h.ID > len(s.gen) {
		return false
	}
	return s.gen[h.ID-1] == h.Gen
}
