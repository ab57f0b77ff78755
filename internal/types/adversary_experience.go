package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdversaryExperience is a true join entity, not a plain m2m row: the
// bonus is scoped to the (adversary, experience) pair.
type AdversaryExperience struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"-"`
	AdversaryID  uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:adversary_experience_entity" json:"-"`
	ExperienceID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:adversary_experience_entity" json:"-"`
	Experience   *Experience `gorm:"constraint:OnDelete:RESTRICT;foreignKey:ExperienceID;references:ID" json:"experience,omitempty"`
	Bonus        int16       `gorm:"not null;default:0" json:"bonus"`
}

func (AdversaryExperience) TableName() string { return "adversary_experience" }

func (ae *AdversaryExperience) BeforeCreate(tx *gorm.DB) error {
	if ae.ID == uuid.Nil {
		ae.ID = uuid.New()
	}
	return nil
}
