package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Assignment is the editable planner document: the whole multi-week schedule
// for one activity, stored as a single JSONB column.
type Assignment struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CoachID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"coach_id"`
	ClientID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	ActivityID uuid.UUID      `gorm:"type:uuid;not null;index" json:"activity_id"`
	Category   string         `gorm:"column:category;not null" json:"category"`
	Periods    int            `gorm:"column:periods;not null;default:1" json:"periods"`
	Schedule   datatypes.JSON `gorm:"column:schedule;type:jsonb" json:"schedule"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Assignment) TableName() string { return "assignment" }
