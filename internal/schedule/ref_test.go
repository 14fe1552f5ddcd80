package schedule

import (
	"encoding/json"
	"testing"
)

func TestParseRef(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		wantLocal bool
		wantID    int64
		wantTemp  string
	}{
		{name: "bare_numeric", input: "1042", wantID: 1042},
		{name: "tmp_prefix", input: "tmp:abc-1", wantLocal: true, wantTemp: "abc-1"},
		{name: "legacy_client_prefix", input: "exercise-17", wantLocal: true, wantTemp: "exercise-17"},
		{name: "whitespace", input: "  7 ", wantID: 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref := ParseRef(tc.input)
			if ref.IsLocal() != tc.wantLocal {
				t.Fatalf("IsLocal=%v, want %v", ref.IsLocal(), tc.wantLocal)
			}
			if id, _ := ref.PersistedID(); id != tc.wantID {
				t.Fatalf("PersistedID=%d, want %d", id, tc.wantID)
			}
			if temp, _ := ref.TempID(); temp != tc.wantTemp {
				t.Fatalf("TempID=%q, want %q", temp, tc.wantTemp)
			}
		})
	}
}

func TestEntityRefJSON(t *testing.T) {
	// Numbers from legacy documents decode as persisted ids.
	var fromNumber EntityRef
	if err := json.Unmarshal([]byte(`42`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if id, ok := fromNumber.PersistedID(); !ok || id != 42 {
		t.Fatalf("ref = %v, want persisted 42", fromNumber)
	}

	for _, ref := range []EntityRef{PersistedRef(9), LocalRef("x-1"), {}} {
		raw, err := json.Marshal(ref)
		if err != nil {
			t.Fatalf("marshal %v: %v", ref, err)
		}
		var back EntityRef
		if err := json.Unmarshal(raw, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if back != ref {
			t.Fatalf("round trip %v -> %s -> %v", ref, raw, back)
		}
	}
}
