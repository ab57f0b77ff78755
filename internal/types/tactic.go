package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tactic is a pure named set element; uniqueness is case-insensitive
// (enforced by an expression index, see db.Migrate).
type Tactic struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (Tactic) TableName() string { return "tactic" }

func (t *Tactic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
