package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type ClientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Client) ([]*types.Client, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error)
	GetByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.Client, error)
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	repoLog := baseLog.With("repo", "ClientRepo")
	return &clientRepo{db: db, log: repoLog}
}

func (r *clientRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Client) ([]*types.Client, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Client{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *clientRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Client
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *clientRepo) GetByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.Client, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Client
	if coachID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("coach_id = ?", coachID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
