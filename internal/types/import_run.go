package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportRun records one bulk TSV load: how many rows made it in and
// the per-row warnings the parser produced.
type ImportRun struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"author_id"`
	Author    *Account       `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"-"`
	Filename  string         `gorm:"not null" json:"filename"`
	Created   int            `gorm:"not null;default:0" json:"created"`
	Failed    int            `gorm:"not null;default:0" json:"failed"`
	Warnings  datatypes.JSON `gorm:"type:jsonb" json:"warnings,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
}

func (ImportRun) TableName() string { return "import_run" }

func (ir *ImportRun) BeforeCreate(tx *gorm.DB) error {
	if ir.ID == uuid.Nil {
		ir.ID = uuid.New()
	}
	return nil
}
