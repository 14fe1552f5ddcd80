package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type DayRecordRepo interface {
	GetByClientAndDate(ctx context.Context, tx *gorm.DB, clientID, activityID uuid.UUID, date string) (*types.DayRecord, error)
	ListAfterDate(ctx context.Context, clientID, activityID uuid.UUID, date string) ([]*types.DayRecord, error)
	Upsert(ctx context.Context, record *types.DayRecord) error
	BulkUpsert(ctx context.Context, records []*types.DayRecord) error
}

type dayRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDayRecordRepo(db *gorm.DB, baseLog *logger.Logger) DayRecordRepo {
	repoLog := baseLog.With("repo", "DayRecordRepo")
	return &dayRecordRepo{db: db, log: repoLog}
}

func (r *dayRecordRepo) GetByClientAndDate(ctx context.Context, tx *gorm.DB, clientID, activityID uuid.UUID, date string) (*types.DayRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.DayRecord
	err := transaction.WithContext(ctx).
		Where("client_id = ? AND activity_id = ? AND date = ?", clientID, activityID, date).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAfterDate returns records strictly after the given date, ascending.
// Records on the date itself are never candidates for a cascade.
func (r *dayRecordRepo) ListAfterDate(ctx context.Context, clientID, activityID uuid.UUID, date string) ([]*types.DayRecord, error) {
	var results []*types.DayRecord
	if clientID == uuid.Nil || activityID == uuid.Nil {
		return results, nil
	}

	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND activity_id = ? AND date > ?", clientID, activityID, date).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *dayRecordRepo) Upsert(ctx context.Context, record *types.DayRecord) error {
	if record == nil {
		return nil
	}

	// Upsert by unique client_id + activity_id + date
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND activity_id = ? AND date = ?", record.ClientID, record.ActivityID, record.Date).
		Assign(record).
		FirstOrCreate(record).Error; err != nil {
		return err
	}
	return nil
}

func (r *dayRecordRepo) BulkUpsert(ctx context.Context, records []*types.DayRecord) error {
	if len(records) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if record == nil {
				continue
			}
			if err := tx.
				Where("client_id = ? AND activity_id = ? AND date = ?", record.ClientID, record.ActivityID, record.Date).
				Assign(record).
				FirstOrCreate(record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
