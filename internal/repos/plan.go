package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type PlanRepo interface {
	GetByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) (*types.Plan, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.Plan) error
}

type planRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlanRepo(db *gorm.DB, baseLog *logger.Logger) PlanRepo {
	repoLog := baseLog.With("repo", "PlanRepo")
	return &planRepo{db: db, log: repoLog}
}

func (r *planRepo) GetByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) (*types.Plan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if coachID == uuid.Nil {
		return nil, nil
	}

	var result types.Plan
	err := transaction.WithContext(ctx).
		Where("coach_id = ?", coachID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *planRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.Plan) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	// Upsert by unique coach_id
	if err := transaction.WithContext(ctx).
		Where("coach_id = ?", row.CoachID).
		Assign(row).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}
