package reconcile

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/schedule"
	"github.com/vilafit/coachplan-backend/internal/types"
)

// Map translates client-generated temp ids to server-assigned ids. It is
// built once per bulk-persist cycle and only lives for the session.
type Map map[string]int64

// Resolve maps a local ref to its persisted identity. Refs that are already
// persisted, or that never got an assignment, come back unchanged.
func (m Map) Resolve(ref schedule.EntityRef) schedule.EntityRef {
	tempID, ok := ref.TempID()
	if !ok {
		return ref
	}
	if id, ok := m[tempID]; ok {
		return schedule.PersistedRef(id)
	}
	return ref
}

// ApplySchedule rewrites every item ref in place through the map.
func (m Map) ApplySchedule(s schedule.Schedule) {
	for _, week := range s {
		for _, day := range week {
			for i := range day.Items {
				day.Items[i].Ref = m.Resolve(day.Items[i].Ref)
			}
		}
	}
}

// Submitted is one row sent to the bulk-insert endpoint.
type Submitted struct {
	TempID string
	Name   string
}

// InsertResult correlates one inserted row back to the temp id that was
// submitted for it.
type InsertResult struct {
	TempID      string
	PersistedID int64
}

// CatalogSource lists the persisted catalog for the name-based fallback
// pass.
type CatalogSource interface {
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*types.CatalogItem, error)
}

type Reconciler interface {
	Build(ctx context.Context, activityID uuid.UUID, submitted []Submitted, results []InsertResult) (Map, error)
}

type reconciler struct {
	log     *logger.Logger
	catalog CatalogSource
}

func NewReconciler(log *logger.Logger, catalog CatalogSource) Reconciler {
	recLog := log.With("component", "IdentifierReconciler")
	return &reconciler{log: recLog, catalog: catalog}
}

// Build resolves temp ids in two passes: the bulk-insert correlations first,
// then a name-based match against the persisted catalog for anything the
// response missed. Temp ids still unresolved after both passes are logged
// and left out of the map, which makes Resolve return them unchanged.
func (r *reconciler) Build(ctx context.Context, activityID uuid.UUID, submitted []Submitted, results []InsertResult) (Map, error) {
	m := Map{}
	for _, res := range results {
		if res.TempID == "" || res.PersistedID == 0 {
			continue
		}
		m[res.TempID] = res.PersistedID
	}

	var unresolved []Submitted
	for _, sub := range submitted {
		if _, ok := m[sub.TempID]; !ok {
			unresolved = append(unresolved, sub)
		}
	}
	if len(unresolved) == 0 {
		return m, nil
	}

	r.log.Warn("Bulk-insert response missing temp ids, falling back to name matching", "missing", len(unresolved))
	items, err := r.catalog.ListByActivity(ctx, activityID)
	if err != nil {
		// The fallback is defensive; its failure must not fail the build.
		r.log.Error("Name-matching fallback fetch failed", "error", err)
		items = nil
	}
	byName := map[string]int64{}
	for _, it := range items {
		name := normalizeName(it.Name)
		if _, dup := byName[name]; !dup {
			byName[name] = it.ID
		}
	}

	for _, sub := range unresolved {
		if id, ok := byName[normalizeName(sub.Name)]; ok {
			m[sub.TempID] = id
			continue
		}
		r.log.Warn("Temp id left unresolved after both passes", "temp_id", sub.TempID, "name", sub.Name)
	}
	return m, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
