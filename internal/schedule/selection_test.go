package schedule

import (
	"reflect"
	"testing"
)

func TestSelectionToggleArmDisarm(t *testing.T) {
	a, b := PersistedRef(1), PersistedRef(2)

	cases := []struct {
		name      string
		steps     func(s *Selection)
		wantOrder []EntityRef
	}{
		{
			name:      "arm_preserves_order",
			steps:     func(s *Selection) { s.Arm(b); s.Arm(a) },
			wantOrder: []EntityRef{b, a},
		},
		{
			name:      "arm_is_idempotent",
			steps:     func(s *Selection) { s.Arm(a); s.Arm(a) },
			wantOrder: []EntityRef{a},
		},
		{
			name:      "toggle_arms_then_disarms",
			steps:     func(s *Selection) { s.Toggle(a); s.Toggle(b); s.Toggle(a) },
			wantOrder: []EntityRef{b},
		},
		{
			name:      "disarm_unknown_is_noop",
			steps:     func(s *Selection) { s.Arm(a); s.Disarm(b) },
			wantOrder: []EntityRef{a},
		},
		{
			name:      "zero_ref_is_ignored",
			steps:     func(s *Selection) { s.Arm(EntityRef{}); s.Toggle(EntityRef{}) },
			wantOrder: nil,
		},
		{
			name:      "clear_empties_everything",
			steps:     func(s *Selection) { s.Arm(a); s.Arm(b); s.Clear() },
			wantOrder: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSelection()
			tc.steps(s)
			if got := s.Armed(); !reflect.DeepEqual(got, tc.wantOrder) {
				t.Fatalf("Armed() = %v, want %v", got, tc.wantOrder)
			}
			for _, ref := range tc.wantOrder {
				if !s.IsArmed(ref) {
					t.Fatalf("IsArmed(%v) = false, want true", ref)
				}
			}
		})
	}
}

func TestSelectionArmedReturnsCopy(t *testing.T) {
	s := NewSelection()
	s.Arm(PersistedRef(1))
	s.Arm(PersistedRef(2))

	armed := s.Armed()
	armed[0] = PersistedRef(99)
	if got := s.Armed(); got[0] != PersistedRef(1) {
		t.Fatalf("Armed() = %v, callers must not be able to mutate the selection", got)
	}
}

func TestSelectionLocalRefs(t *testing.T) {
	s := NewSelection()
	local := LocalRef("tmp-1")
	s.Toggle(local)
	if !s.IsArmed(local) {
		t.Fatal("local refs must be armable")
	}
	s.Toggle(local)
	if s.IsArmed(local) {
		t.Fatal("second toggle must disarm")
	}
}
