package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Experience carries only a name; the per-adversary bonus lives on
// the AdversaryExperience join row.
type Experience struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Experience) TableName() string { return "experience" }

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
