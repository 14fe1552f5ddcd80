package schedule

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSanitizeBackfillsFitnessBlockNames(t *testing.T) {
	s := Schedule{
		1: Week{
			1: &Day{
				Items: []Item{
					{Ref: PersistedRef(10), Name: "Sentadilla", Block: 1},
					{Ref: PersistedRef(11), Name: "Peso muerto", Block: 3},
				},
			},
		},
	}
	Sanitize(s, CategoryFitness)

	day := s[1][1]
	if day.BlockCount != 3 {
		t.Fatalf("block count = %d, want 3", day.BlockCount)
	}
	if got := day.BlockNames[1]; got != "Bloque 1" {
		t.Fatalf("block 1 name = %q, want %q", got, "Bloque 1")
	}
	if got := day.BlockNames[3]; got != "Bloque 3" {
		t.Fatalf("block 3 name = %q, want %q", got, "Bloque 3")
	}
	if _, ok := day.BlockNames[2]; ok {
		t.Fatalf("unoccupied block 2 should not be named, got %q", day.BlockNames[2])
	}
}

func TestSanitizeNutritionNamePreferenceOrder(t *testing.T) {
	s := Schedule{
		1: Week{
			1: &Day{
				Items: []Item{
					{Ref: PersistedRef(1), Name: "Avena", Block: 1},
					{Ref: PersistedRef(2), Name: "Pollo", Block: 2},
					{Ref: PersistedRef(3), Name: "Yogur", Block: 3},
				},
			},
		},
	}
	Sanitize(s, CategoryNutrition)

	day := s[1][1]
	want := map[int]string{1: "Desayuno", 2: "Almuerzo", 3: "Merienda"}
	if !reflect.DeepEqual(day.BlockNames, want) {
		t.Fatalf("block names = %v, want %v", day.BlockNames, want)
	}
}

func TestSanitizeNutritionRepeatableNamesRoundRobin(t *testing.T) {
	items := make([]Item, 0, 9)
	for b := 1; b <= 9; b++ {
		items = append(items, Item{Ref: PersistedRef(int64(b)), Name: "Comida", Block: b})
	}
	s := Schedule{1: Week{1: &Day{Items: items}}}
	Sanitize(s, CategoryNutrition)

	day := s[1][1]
	// Blocks 6..9 exhaust the single-use names; the repeatables alternate.
	if day.BlockNames[6] != "Pre-entreno" || day.BlockNames[7] != "Post-entreno" {
		t.Fatalf("blocks 6,7 = %q,%q, want Pre-entreno,Post-entreno", day.BlockNames[6], day.BlockNames[7])
	}
	if day.BlockNames[8] != "Pre-entreno" || day.BlockNames[9] != "Post-entreno" {
		t.Fatalf("blocks 8,9 = %q,%q, want Pre-entreno,Post-entreno", day.BlockNames[8], day.BlockNames[9])
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	cases := []struct {
		name     string
		category Category
		schedule Schedule
	}{
		{
			name:     "fitness_with_gaps",
			category: CategoryFitness,
			schedule: Schedule{
				1: Week{
					2: &Day{Items: []Item{{Ref: PersistedRef(1), Name: "Press banca", Block: 2}}},
				},
			},
		},
		{
			name:     "nutrition_partially_named",
			category: CategoryNutrition,
			schedule: Schedule{
				1: Week{
					1: &Day{
						Items:      []Item{{Ref: PersistedRef(1), Name: "Tostadas", Block: 1}, {Ref: PersistedRef(2), Name: "Pasta", Block: 2}},
						BlockNames: map[int]string{2: "Cena"},
					},
				},
			},
		},
		{
			name:     "drops_empty_days",
			category: CategoryFitness,
			schedule: Schedule{
				1: Week{1: &Day{}, 2: &Day{Items: []Item{{Ref: PersistedRef(5), Name: "Remo", Block: 1}}}},
				2: Week{3: &Day{}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			once := Sanitize(tc.schedule.Clone(), tc.category)
			twice := Sanitize(once.Clone(), tc.category)
			if !reflect.DeepEqual(once, twice) {
				t.Fatalf("sanitize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
			}
		})
	}
}

func TestDecodeLegacyArrayShapedDay(t *testing.T) {
	raw := []byte(`{"1":{"1":[{"id":"42","name":"Burpees","type":"exercise","block":0,"order":1}]}}`)
	s, err := DecodeSchedule(raw)
	if err != nil {
		t.Fatalf("DecodeSchedule: %v", err)
	}
	Sanitize(s, CategoryFitness)

	day := s[1][1]
	if day == nil {
		t.Fatal("day 1-1 missing after decode")
	}
	if len(day.Items) != 1 || day.Items[0].Name != "Burpees" {
		t.Fatalf("items = %+v, want one Burpees item", day.Items)
	}
	if day.Items[0].Block != 1 {
		t.Fatalf("legacy block = %d, want clamped to 1", day.Items[0].Block)
	}
	if day.BlockCount != 1 {
		t.Fatalf("block count = %d, want 1", day.BlockCount)
	}
	if id, ok := day.Items[0].Ref.PersistedID(); !ok || id != 42 {
		t.Fatalf("ref = %v, want persisted 42", day.Items[0].Ref)
	}
}

func TestScheduleJSONRoundTrip(t *testing.T) {
	s := Schedule{
		1: Week{
			1: &Day{
				Items:      []Item{{Ref: LocalRef("abc"), Name: "Plancha", Block: 1, Order: 1, IsActive: true}},
				BlockNames: map[int]string{1: "Bloque 1"},
				BlockCount: 1,
			},
		},
	}
	raw, err := EncodeSchedule(s)
	if err != nil {
		t.Fatalf("EncodeSchedule: %v", err)
	}
	decoded, err := DecodeSchedule(raw)
	if err != nil {
		t.Fatalf("DecodeSchedule: %v", err)
	}
	if !reflect.DeepEqual(s, decoded) {
		a, _ := json.Marshal(s)
		b, _ := json.Marshal(decoded)
		t.Fatalf("round trip mismatch:\n%s\n%s", a, b)
	}
}
