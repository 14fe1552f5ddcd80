package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vilafit/coachplan-backend/internal/apperr"
	"github.com/vilafit/coachplan-backend/internal/types"
)

type fakeClientRepo struct {
	client *types.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Client) ([]*types.Client, error) {
	return rows, nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Client, error) {
	if f.client != nil && f.client.ID == id {
		return f.client, nil
	}
	return nil, nil
}

func (f *fakeClientRepo) GetByCoachID(ctx context.Context, tx *gorm.DB, coachID uuid.UUID) ([]*types.Client, error) {
	return nil, nil
}

type fakeDayRecordRepo struct {
	record *types.DayRecord
	gets   int
}

func (f *fakeDayRecordRepo) GetByClientAndDate(ctx context.Context, tx *gorm.DB, clientID, activityID uuid.UUID, date string) (*types.DayRecord, error) {
	f.gets++
	if f.record != nil && f.record.Date == date {
		return f.record, nil
	}
	return nil, nil
}

func (f *fakeDayRecordRepo) ListAfterDate(ctx context.Context, clientID, activityID uuid.UUID, date string) ([]*types.DayRecord, error) {
	return nil, nil
}

func (f *fakeDayRecordRepo) Upsert(ctx context.Context, record *types.DayRecord) error { return nil }

func (f *fakeDayRecordRepo) BulkUpsert(ctx context.Context, records []*types.DayRecord) error {
	return nil
}

type fakeDetailCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeDetailCache() *fakeDetailCache {
	return &fakeDetailCache{entries: map[string][]byte{}}
}

func (f *fakeDetailCache) key(clientID uuid.UUID, date string) string {
	return clientID.String() + ":" + date
}

func (f *fakeDetailCache) Get(ctx context.Context, clientID uuid.UUID, date string) ([]byte, bool, error) {
	raw, ok := f.entries[f.key(clientID, date)]
	return raw, ok, nil
}

func (f *fakeDetailCache) Set(ctx context.Context, clientID uuid.UUID, date string, payload []byte) error {
	f.sets++
	f.entries[f.key(clientID, date)] = payload
	return nil
}

func TestGetDayDetailRefusesForeignClient(t *testing.T) {
	owner, intruder := uuid.New(), uuid.New()
	client := &types.Client{ID: uuid.New(), CoachID: owner}
	records := &fakeDayRecordRepo{}
	svc := NewDayService(nil, serviceLogger(t), &fakeClientRepo{client: client}, records, newFakeDetailCache())

	_, err := svc.GetDayDetail(context.Background(), intruder, client.ID, uuid.New(), "2024-06-10")
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("foreign read = %v, want ErrForbidden", err)
	}
	if records.gets != 0 {
		t.Fatal("a refused read must not touch the record store")
	}
}

func TestGetDayDetailPopulatesCacheOnMiss(t *testing.T) {
	coachID := uuid.New()
	client := &types.Client{ID: uuid.New(), CoachID: coachID}
	record := &types.DayRecord{
		ID:       uuid.New(),
		ClientID: client.ID,
		Date:     "2024-06-10",
		Category: "fitness",
		Doc:      []byte(`{"detalles_series":{"1042_1":[]}}`),
	}
	records := &fakeDayRecordRepo{record: record}
	cache := newFakeDetailCache()
	svc := NewDayService(nil, serviceLogger(t), &fakeClientRepo{client: client}, records, cache)

	payload, err := svc.GetDayDetail(context.Background(), coachID, client.ID, uuid.New(), "2024-06-10")
	if err != nil {
		t.Fatalf("GetDayDetail: %v", err)
	}
	var decoded types.DayRecord
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if decoded.Date != "2024-06-10" {
		t.Fatalf("payload date = %s, want 2024-06-10", decoded.Date)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want the miss to populate", cache.sets)
	}

	// Second read is served from the cache.
	if _, err := svc.GetDayDetail(context.Background(), coachID, client.ID, uuid.New(), "2024-06-10"); err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if records.gets != 1 {
		t.Fatalf("record store reads = %d, want the second read cached", records.gets)
	}
}

func TestGetDayDetailWithoutCache(t *testing.T) {
	coachID := uuid.New()
	client := &types.Client{ID: uuid.New(), CoachID: coachID}
	record := &types.DayRecord{ID: uuid.New(), ClientID: client.ID, Date: "2024-06-10", Doc: []byte(`{}`)}
	svc := NewDayService(nil, serviceLogger(t), &fakeClientRepo{client: client}, &fakeDayRecordRepo{record: record}, nil)

	if _, err := svc.GetDayDetail(context.Background(), coachID, client.ID, uuid.New(), "2024-06-10"); err != nil {
		t.Fatalf("GetDayDetail without cache: %v", err)
	}
}

func TestGetDayDetailMissingRecord(t *testing.T) {
	coachID := uuid.New()
	client := &types.Client{ID: uuid.New(), CoachID: coachID}
	svc := NewDayService(nil, serviceLogger(t), &fakeClientRepo{client: client}, &fakeDayRecordRepo{}, newFakeDetailCache())

	if _, err := svc.GetDayDetail(context.Background(), coachID, client.ID, uuid.New(), "2024-06-10"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing record = %v, want ErrNotFound", err)
	}
}
