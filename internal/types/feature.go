package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feature identity is the exact (name, type, description) triple: two
// features differing only in description are distinct rows.
type Feature struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string      `gorm:"size:100;not null;uniqueIndex:feature_entity" json:"name"`
	Type        FeatureType `gorm:"type:varchar(3);not null;default:'UNK';uniqueIndex:feature_entity" json:"type"`
	Description string      `gorm:"not null;default:'';uniqueIndex:feature_entity" json:"description"`
}

func (Feature) TableName() string { return "feature" }

func (f *Feature) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
