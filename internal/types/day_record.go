package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DayRecord is the persisted per-date progress document for one client and
// activity. Doc holds the keyed containers (detalles_series, macros, ...)
// whose keys encode baseId_ordinal.
type DayRecord struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_day_record_lookup" json:"client_id"`
	ActivityID uuid.UUID      `gorm:"type:uuid;not null;index:idx_day_record_lookup" json:"activity_id"`
	Date       string         `gorm:"column:date;type:date;not null;index:idx_day_record_lookup" json:"date"`
	Category   string         `gorm:"column:category;not null" json:"category"`
	Doc        datatypes.JSON `gorm:"column:doc;type:jsonb" json:"doc"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DayRecord) TableName() string { return "day_record" }
