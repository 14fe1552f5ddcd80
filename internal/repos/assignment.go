package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type AssignmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Assignment) ([]*types.Assignment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Assignment, error)
	GetByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.Assignment, error)
	UpdateSchedule(ctx context.Context, tx *gorm.DB, id uuid.UUID, schedule datatypes.JSON) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	repoLog := baseLog.With("repo", "AssignmentRepo")
	return &assignmentRepo{db: db, log: repoLog}
}

func (r *assignmentRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Assignment) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Assignment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Assignment
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

func (r *assignmentRepo) GetByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Assignment
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

func (r *assignmentRepo) UpdateSchedule(ctx context.Context, tx *gorm.DB, id uuid.UUID, schedule datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Assignment{}).
		Where("id = ?", id).
		Update("schedule", schedule).Error; err != nil {
		return err
	}
	return nil
}
