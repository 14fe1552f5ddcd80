package schedule

// Selection tracks the catalog items armed for one-click day assignment,
// preserving the order in which they were armed.
type Selection struct {
	order []EntityRef
	armed map[string]bool
}

func NewSelection() *Selection {
	return &Selection{armed: map[string]bool{}}
}

func (s *Selection) Toggle(ref EntityRef) {
	if ref.IsZero() {
		return
	}
	if s.armed[ref.String()] {
		s.Disarm(ref)
		return
	}
	s.Arm(ref)
}

func (s *Selection) Arm(ref EntityRef) {
	if ref.IsZero() || s.armed[ref.String()] {
		return
	}
	s.armed[ref.String()] = true
	s.order = append(s.order, ref)
}

func (s *Selection) Disarm(ref EntityRef) {
	key := ref.String()
	if !s.armed[key] {
		return
	}
	delete(s.armed, key)
	for i, r := range s.order {
		if r.String() == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Selection) IsArmed(ref EntityRef) bool { return s.armed[ref.String()] }

// Armed returns the armed refs in arming order.
func (s *Selection) Armed() []EntityRef {
	return append([]EntityRef(nil), s.order...)
}

func (s *Selection) Clear() {
	s.order = nil
	s.armed = map[string]bool{}
}
