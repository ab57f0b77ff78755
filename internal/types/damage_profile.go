package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DamageProfile is a value object: identity is the full 4-tuple and
// rows are deduplicated by find-or-create, never mutated in place.
// Valid shapes are flat damage (0 dice, 0 die size, bonus >= 0) or
// rolled damage (>=1 dice of size >=2).
type DamageProfile struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"-"`
	DiceNumber int16      `gorm:"not null;default:0;uniqueIndex:damage_profile_entity;check:dp_valid_shape,(dice_number = 0 AND dice_type = 0 AND bonus >= 0) OR (dice_number >= 1 AND dice_type >= 2)" json:"dice_number"`
	DiceType   int16      `gorm:"not null;default:0;uniqueIndex:damage_profile_entity" json:"dice_type"`
	Bonus      int16      `gorm:"not null;default:0;uniqueIndex:damage_profile_entity" json:"bonus"`
	DamageType DamageType `gorm:"type:varchar(3);not null;default:'UNK';uniqueIndex:damage_profile_entity" json:"damage_type"`
}

func (DamageProfile) TableName() string { return "damage_profile" }

func (dp *DamageProfile) BeforeCreate(tx *gorm.DB) error {
	if dp.ID == uuid.Nil {
		dp.ID = uuid.New()
	}
	return nil
}

// IsBlank reports whether every field still holds its default. An
// all-blank profile is never persisted.
func (dp *DamageProfile) IsBlank() bool {
	return dp.DiceNumber == 0 && dp.DiceType == 0 && dp.Bonus == 0 &&
		(dp.DamageType == DamageTypeUnspecified || dp.DamageType == "")
}

// ValidShape mirrors the dp_valid_shape check constraint.
func (dp *DamageProfile) ValidShape() bool {
	if dp.DiceNumber == 0 && dp.DiceType == 0 {
		return dp.Bonus >= 0
	}
	return dp.DiceNumber >= 1 && dp.DiceType >= 2
}
