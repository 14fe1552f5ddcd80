package reconcile

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/schedule"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type fakeCatalog struct {
	items []*types.CatalogItem
	err   error
	calls int
}

func (f *fakeCatalog) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*types.CatalogItem, error) {
	f.calls++
	return f.items, f.err
}

func newTestReconciler(t *testing.T, catalog *fakeCatalog) Reconciler {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewReconciler(log, catalog)
}

func TestBuildResolvesFromInsertResults(t *testing.T) {
	catalog := &fakeCatalog{}
	rec := newTestReconciler(t, catalog)

	submitted := []Submitted{
		{TempID: "tmp-1", Name: "Sentadilla"},
		{TempID: "tmp-2", Name: "Remo"},
	}
	results := []InsertResult{
		{TempID: "tmp-1", PersistedID: 501},
		{TempID: "tmp-2", PersistedID: 502},
	}
	m, err := rec.Build(context.Background(), uuid.New(), submitted, results)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for temp, want := range map[string]int64{"tmp-1": 501, "tmp-2": 502} {
		if got := m[temp]; got != want {
			t.Fatalf("m[%s] = %d, want %d", temp, got, want)
		}
	}
	if catalog.calls != 0 {
		t.Fatal("full correlation must not hit the catalog fallback")
	}
}

func TestBuildNameFallback(t *testing.T) {
	catalog := &fakeCatalog{items: []*types.CatalogItem{
		{ID: 700, Name: "  Press Banca "},
		{ID: 701, Name: "Remo"},
	}}
	rec := newTestReconciler(t, catalog)

	submitted := []Submitted{
		{TempID: "tmp-1", Name: "Sentadilla"},
		{TempID: "tmp-2", Name: "press banca"},
	}
	results := []InsertResult{
		{TempID: "tmp-1", PersistedID: 501},
		// tmp-2 missing from the response, resolvable only by name.
	}
	m, err := rec.Build(context.Background(), uuid.New(), submitted, results)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := m["tmp-2"]; got != 700 {
		t.Fatalf("m[tmp-2] = %d, want 700 via normalized name", got)
	}
	if catalog.calls != 1 {
		t.Fatalf("catalog calls = %d, want 1", catalog.calls)
	}
}

func TestBuildLeavesUnresolvedRefsUnchanged(t *testing.T) {
	catalog := &fakeCatalog{}
	rec := newTestReconciler(t, catalog)

	m, err := rec.Build(context.Background(), uuid.New(),
		[]Submitted{{TempID: "tmp-lost", Name: "Zancadas"}}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := m["tmp-lost"]; ok {
		t.Fatal("unresolved temp id must stay out of the map")
	}

	ref := schedule.LocalRef("tmp-lost")
	if got := m.Resolve(ref); got != ref {
		t.Fatalf("Resolve = %v, want the local ref unchanged", got)
	}
	if got := m.Resolve(schedule.PersistedRef(42)); got != schedule.PersistedRef(42) {
		t.Fatal("persisted refs must pass through untouched")
	}
}

func TestBuildSurvivesFallbackFetchError(t *testing.T) {
	catalog := &fakeCatalog{err: fmt.Errorf("catalog unavailable")}
	rec := newTestReconciler(t, catalog)

	m, err := rec.Build(context.Background(), uuid.New(),
		[]Submitted{{TempID: "tmp-1", Name: "Remo"}}, nil)
	if err != nil {
		t.Fatalf("fallback fetch failure must not fail the build: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("map = %v, want empty", m)
	}
}

func TestApplyScheduleRewritesRefsInPlace(t *testing.T) {
	m := Map{"tmp-1": 900}
	s := schedule.Schedule{
		1: schedule.Week{
			1: &schedule.Day{Items: []schedule.Item{
				{Ref: schedule.LocalRef("tmp-1"), Name: "Sentadilla"},
				{Ref: schedule.PersistedRef(5), Name: "Remo"},
				{Ref: schedule.LocalRef("tmp-miss"), Name: "Zancadas"},
			}},
		},
	}

	m.ApplySchedule(s)

	items := s[1][1].Items
	if id, ok := items[0].Ref.PersistedID(); !ok || id != 900 {
		t.Fatalf("item 0 ref = %v, want persisted 900", items[0].Ref)
	}
	if id, _ := items[1].Ref.PersistedID(); id != 5 {
		t.Fatalf("item 1 ref = %v, want untouched 5", items[1].Ref)
	}
	if temp, ok := items[2].Ref.TempID(); !ok || temp != "tmp-miss" {
		t.Fatalf("item 2 ref = %v, want still local tmp-miss", items[2].Ref)
	}
}
