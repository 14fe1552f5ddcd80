package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is one assigned program (fitness or nutrition) for a client.
type Activity struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClientID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"client_id"`
	Client    *Client        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClientID;references:ID" json:"client,omitempty"`
	Category  string         `gorm:"column:category;not null" json:"category"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	StartDate string         `gorm:"column:start_date;type:date" json:"start_date"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Activity) TableName() string { return "activity" }
