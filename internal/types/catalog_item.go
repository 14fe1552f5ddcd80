package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CatalogItem is an exercise or plate definition available for assignment.
// IDs are server-assigned integers; client-side temp ids never reach this table.
type CatalogItem struct {
	ID             int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ActivityID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"activity_id"`
	Activity       *Activity      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ActivityID;references:ID" json:"activity,omitempty"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	Type           string         `gorm:"column:type;not null" json:"type"`
	SeriesDefaults datatypes.JSON `gorm:"column:series_defaults;type:jsonb" json:"series_defaults,omitempty"`
	Macros         datatypes.JSON `gorm:"column:macros;type:jsonb" json:"macros,omitempty"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CatalogItem) TableName() string { return "catalog_item" }
