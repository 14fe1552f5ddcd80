package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type CoachRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Coach) ([]*types.Coach, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Coach, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type coachRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoachRepo(db *gorm.DB, baseLog *logger.Logger) CoachRepo {
	repoLog := baseLog.With("repo", "CoachRepo")
	return &coachRepo{db: db, log: repoLog}
}

func (r *coachRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Coach) ([]*types.Coach, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Coach{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *coachRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Coach, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Coach
	if len(emails) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("email IN ?", emails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *coachRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Coach{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
