package repos

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vilafit/coachplan-backend/internal/logger"
	"github.com/vilafit/coachplan-backend/internal/types"
)

// day_record is created with raw DDL because the model's uuid_generate_v4
// default is a Postgres-only construct sqlite cannot migrate.
const dayRecordDDL = `
CREATE TABLE day_record (
	id TEXT PRIMARY KEY,
	client_id TEXT NOT NULL,
	activity_id TEXT NOT NULL,
	date TEXT NOT NULL,
	category TEXT NOT NULL,
	doc TEXT,
	created_at DATETIME,
	updated_at DATETIME,
	deleted_at DATETIME
)`

func newTestDayRecordRepo(t *testing.T) DayRecordRepo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(dayRecordDDL).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewDayRecordRepo(db, log)
}

func seedRecord(t *testing.T, repo DayRecordRepo, clientID, activityID uuid.UUID, date, doc string) *types.DayRecord {
	t.Helper()
	rec := &types.DayRecord{
		ID:         uuid.New(),
		ClientID:   clientID,
		ActivityID: activityID,
		Date:       date,
		Category:   "fitness",
		Doc:        []byte(doc),
	}
	if err := repo.Upsert(context.Background(), rec); err != nil {
		t.Fatalf("seed %s: %v", date, err)
	}
	return rec
}

func TestListAfterDateIsStrictlyAfter(t *testing.T) {
	repo := newTestDayRecordRepo(t)
	clientID, activityID := uuid.New(), uuid.New()

	seedRecord(t, repo, clientID, activityID, "2024-06-03", `{}`)
	seedRecord(t, repo, clientID, activityID, "2024-06-10", `{}`)
	seedRecord(t, repo, clientID, activityID, "2024-06-04", `{}`)
	// Another client's record on a later date must never leak in.
	seedRecord(t, repo, uuid.New(), activityID, "2024-06-17", `{}`)

	got, err := repo.ListAfterDate(context.Background(), clientID, activityID, "2024-06-03")
	if err != nil {
		t.Fatalf("ListAfterDate: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2 (the source date itself excluded)", len(got))
	}
	if got[0].Date != "2024-06-04" || got[1].Date != "2024-06-10" {
		t.Fatalf("order = [%s %s], want ascending by date", got[0].Date, got[1].Date)
	}
}

func TestUpsertUpdatesExistingRow(t *testing.T) {
	repo := newTestDayRecordRepo(t)
	clientID, activityID := uuid.New(), uuid.New()

	first := seedRecord(t, repo, clientID, activityID, "2024-06-03", `{"detalles_series":{"1042_1":[]}}`)

	first.Doc = []byte(`{"detalles_series":{"2051_1":[]}}`)
	if err := repo.Upsert(context.Background(), first); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByClientAndDate(context.Background(), nil, clientID, activityID, "2024-06-03")
	if err != nil {
		t.Fatalf("GetByClientAndDate: %v", err)
	}
	if got == nil {
		t.Fatal("record not found after upsert")
	}
	if string(got.Doc) != `{"detalles_series":{"2051_1":[]}}` {
		t.Fatalf("doc = %s, want the rewritten containers", got.Doc)
	}

	all, err := repo.ListAfterDate(context.Background(), clientID, activityID, "2024-01-01")
	if err != nil {
		t.Fatalf("ListAfterDate: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("rows = %d, upsert must not duplicate", len(all))
	}
}

func TestGetByClientAndDateMissingReturnsNil(t *testing.T) {
	repo := newTestDayRecordRepo(t)

	got, err := repo.GetByClientAndDate(context.Background(), nil, uuid.New(), uuid.New(), "2024-06-03")
	if err != nil {
		t.Fatalf("GetByClientAndDate: %v", err)
	}
	if got != nil {
		t.Fatalf("record = %+v, want nil for a missing row", got)
	}
}

func TestBulkUpsertMixesInsertsAndUpdates(t *testing.T) {
	repo := newTestDayRecordRepo(t)
	clientID, activityID := uuid.New(), uuid.New()

	existing := seedRecord(t, repo, clientID, activityID, "2024-06-03", `{"v":1}`)
	existing.Doc = []byte(`{"v":2}`)
	fresh := &types.DayRecord{
		ID:         uuid.New(),
		ClientID:   clientID,
		ActivityID: activityID,
		Date:       "2024-06-10",
		Category:   "fitness",
		Doc:        []byte(`{"v":3}`),
	}

	if err := repo.BulkUpsert(context.Background(), []*types.DayRecord{existing, nil, fresh}); err != nil {
		t.Fatalf("BulkUpsert: %v", err)
	}

	all, err := repo.ListAfterDate(context.Background(), clientID, activityID, "2024-01-01")
	if err != nil {
		t.Fatalf("ListAfterDate: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("rows = %d, want 2", len(all))
	}
	if string(all[0].Doc) != `{"v":2}` {
		t.Fatalf("existing row doc = %s, want updated {\"v\":2}", all[0].Doc)
	}
	if string(all[1].Doc) != `{"v":3}` {
		t.Fatalf("fresh row doc = %s, want {\"v\":3}", all[1].Doc)
	}
}
