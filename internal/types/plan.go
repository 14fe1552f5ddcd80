package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan holds the subscription quotas consulted before week replication.
type Plan struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CoachID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"coach_id"`
	Tier            string         `gorm:"column:tier;not null" json:"tier"`
	WeeksLimit      int            `gorm:"column:weeks_limit;not null" json:"weeks_limit"`
	ActivitiesLimit int            `gorm:"column:activities_limit;not null" json:"activities_limit"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Plan) TableName() string { return "plan" }
