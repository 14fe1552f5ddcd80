package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/apperr"
	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/repos"
)

// DayDetailCache is the read/write side of the day-detail cache. The cascade
// engine owns invalidation; this service owns population.
type DayDetailCache interface {
	Get(ctx context.Context, clientID uuid.UUID, date string) ([]byte, bool, error)
	Set(ctx context.Context, clientID uuid.UUID, date string, payload []byte) error
}

type DayService interface {
	GetDayDetail(ctx context.Context, coachID, clientID, activityID uuid.UUID, date string) (json.RawMessage, error)
}

type dayService struct {
	db      *gorm.DB
	log     *logger.Logger
	clients repos.ClientRepo
	records repos.DayRecordRepo
	cache   DayDetailCache
}

// NewDayService builds the day-detail read path. A nil cache disables
// caching; every read then goes to the database.
func NewDayService(db *gorm.DB, log *logger.Logger, clients repos.ClientRepo, records repos.DayRecordRepo, cache DayDetailCache) DayService {
	serviceLog := log.With("service", "DayService")
	return &dayService{db: db, log: serviceLog, clients: clients, records: records, cache: cache}
}

// GetDayDetail returns the serialized day record for one client and date,
// consulting the cache before the database and populating it on a miss.
func (ds *dayService) GetDayDetail(ctx context.Context, coachID, clientID, activityID uuid.UUID, date string) (json.RawMessage, error) {
	client, err := ds.clients.GetByID(ctx, nil, clientID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %s: %w", clientID, apperr.ErrNotFound)
	}
	if client.CoachID != coachID {
		ds.log.Warn("Refusing day detail for foreign client", "client_id", clientID, "coach_id", coachID)
		return nil, fmt.Errorf("client %s: %w", clientID, apperr.ErrForbidden)
	}

	if ds.cache != nil {
		cached, hit, cerr := ds.cache.Get(ctx, clientID, date)
		if cerr != nil {
			ds.log.Warn("Day detail cache read failed, falling through to the database", "error", cerr)
		} else if hit {
			return cached, nil
		}
	}

	record, err := ds.records.GetByClientAndDate(ctx, nil, clientID, activityID, date)
	if err != nil {
		return nil, fmt.Errorf("Failed to load day record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("day record %s: %w", date, apperr.ErrNotFound)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("Failed to encode day record: %w", err)
	}
	if ds.cache != nil {
		if serr := ds.cache.Set(ctx, clientID, date, payload); serr != nil {
			ds.log.Warn("Day detail cache write failed", "error", serr)
		}
	}
	return payload, nil
}
