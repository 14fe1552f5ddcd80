package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/reconcile"
	"github.com/vilafit/coachplan-backend/internal/repos"
	"github.com/vilafit/coachplan-backend/internal/schedule"
	"github.com/vilafit/coachplan-backend/internal/types"
)

// ItemDefinition is one newly defined catalog item, still carrying its
// client-generated temp id.
type ItemDefinition struct {
	TempID         string         `json:"temp_id"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	SeriesDefaults datatypes.JSON `json:"series_defaults,omitempty"`
	Macros         datatypes.JSON `json:"macros,omitempty"`
}

type CatalogService interface {
	List(ctx context.Context, activityID uuid.UUID) ([]*types.CatalogItem, error)
	BulkDefine(ctx context.Context, activityID uuid.UUID, defs []ItemDefinition) ([]*types.CatalogItem, reconcile.Map, error)
	ItemsByIDs(ctx context.Context, ids []int64) ([]schedule.Item, error)
	Deactivate(ctx context.Context, ids []int64) error
}

type catalogService struct {
	db         *gorm.DB
	log        *logger.Logger
	items      repos.CatalogItemRepo
	reconciler reconcile.Reconciler
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, items repos.CatalogItemRepo, reconciler reconcile.Reconciler) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{db: db, log: serviceLog, items: items, reconciler: reconciler}
}

func (cs *catalogService) List(ctx context.Context, activityID uuid.UUID) ([]*types.CatalogItem, error) {
	return cs.items.ListByActivity(ctx, activityID)
}

// BulkDefine persists the definitions in one insert, then builds the
// temp-id to persisted-id map from the correlation of submitted rows to the
// ids the insert assigned.
func (cs *catalogService) BulkDefine(ctx context.Context, activityID uuid.UUID, defs []ItemDefinition) ([]*types.CatalogItem, reconcile.Map, error) {
	if len(defs) == 0 {
		return nil, reconcile.Map{}, nil
	}

	rows := make([]*types.CatalogItem, 0, len(defs))
	submitted := make([]reconcile.Submitted, 0, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, nil, fmt.Errorf("catalog item without a name cannot be defined")
		}
		rows = append(rows, &types.CatalogItem{
			ActivityID:     activityID,
			Name:           def.Name,
			Type:           def.Type,
			SeriesDefaults: def.SeriesDefaults,
			Macros:         def.Macros,
			IsActive:       true,
		})
		submitted = append(submitted, reconcile.Submitted{TempID: def.TempID, Name: def.Name})
	}

	inserted, err := cs.items.BulkInsert(ctx, nil, rows)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to bulk insert catalog items: %w", err)
	}

	// Rows come back in submission order with their assigned ids.
	results := make([]reconcile.InsertResult, 0, len(inserted))
	for i, row := range inserted {
		if i >= len(submitted) {
			break
		}
		results = append(results, reconcile.InsertResult{TempID: submitted[i].TempID, PersistedID: row.ID})
	}

	idMap, err := cs.reconciler.Build(ctx, activityID, submitted, results)
	if err != nil {
		return nil, nil, err
	}
	return inserted, idMap, nil
}

// ItemsByIDs loads catalog rows and lifts them into planner items. Inactive
// rows and unknown ids are silently omitted.
func (cs *catalogService) ItemsByIDs(ctx context.Context, ids []int64) ([]schedule.Item, error) {
	rows, err := cs.items.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("Failed to load catalog items: %w", err)
	}

	items := make([]schedule.Item, 0, len(rows))
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		item := schedule.Item{
			Ref:      schedule.PersistedRef(row.ID),
			Name:     row.Name,
			Type:     row.Type,
			Block:    1,
			IsActive: true,
		}
		if len(row.SeriesDefaults) > 0 {
			if err := json.Unmarshal(row.SeriesDefaults, &item.Series); err != nil {
				cs.log.Warn("Ignoring malformed series defaults", "item_id", row.ID, "error", err)
			}
		}
		if len(row.Macros) > 0 {
			if err := json.Unmarshal(row.Macros, &item.Macros); err != nil {
				cs.log.Warn("Ignoring malformed macros", "item_id", row.ID, "error", err)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Deactivate soft-disables catalog items so they stop appearing in pickers.
// Already placed schedule entries keep referencing them.
func (cs *catalogService) Deactivate(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if err := cs.items.Deactivate(ctx, nil, ids); err != nil {
		return fmt.Errorf("Failed to deactivate catalog items: %w", err)
	}
	return nil
}
