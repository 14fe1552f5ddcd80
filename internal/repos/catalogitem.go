package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type CatalogItemRepo interface {
	BulkInsert(ctx context.Context, tx *gorm.DB, rows []*types.CatalogItem) ([]*types.CatalogItem, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.CatalogItem, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*types.CatalogItem, error)
	Deactivate(ctx context.Context, tx *gorm.DB, ids []int64) error
}

type catalogItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCatalogItemRepo(db *gorm.DB, baseLog *logger.Logger) CatalogItemRepo {
	repoLog := baseLog.With("repo", "CatalogItemRepo")
	return &catalogItemRepo{db: db, log: repoLog}
}

// BulkInsert persists the rows in one statement; server-assigned ids are
// filled into the given rows in submission order.
func (r *catalogItemRepo) BulkInsert(ctx context.Context, tx *gorm.DB, rows []*types.CatalogItem) ([]*types.CatalogItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.CatalogItem{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *catalogItemRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []int64) ([]*types.CatalogItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.CatalogItem
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *catalogItemRepo) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*types.CatalogItem, error) {
	var results []*types.CatalogItem
	if activityID == uuid.Nil {
		return results, nil
	}

	if err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *catalogItemRepo) Deactivate(ctx context.Context, tx *gorm.DB, ids []int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.CatalogItem{}).
		Where("id IN ?", ids).
		Update("is_active", false).Error; err != nil {
		return err
	}
	return nil
}
