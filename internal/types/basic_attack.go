package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BasicAttack is a value object keyed by (name, range, damage). The
// damage reference is protected: a DamageProfile row cannot be
// deleted while an attack points at it.
type BasicAttack struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	Name     string         `gorm:"size:100;not null;uniqueIndex:basic_attack_entity" json:"name"`
	Range    AttackRange    `gorm:"type:varchar(3);not null;default:'UNK';uniqueIndex:basic_attack_entity" json:"range"`
	DamageID *uuid.UUID     `gorm:"type:uuid;uniqueIndex:basic_attack_entity" json:"-"`
	Damage   *DamageProfile `gorm:"constraint:OnDelete:RESTRICT;foreignKey:DamageID;references:ID" json:"damage,omitempty"`
}

func (BasicAttack) TableName() string { return "basic_attack" }

func (ba *BasicAttack) BeforeCreate(tx *gorm.DB) error {
	if ba.ID == uuid.Nil {
		ba.ID = uuid.New()
	}
	return nil
}

func (ba *BasicAttack) IsBlank() bool {
	return ba.Name == "" &&
		(ba.Range == AttackRangeUnspecified || ba.Range == "") &&
		ba.DamageID == nil
}
