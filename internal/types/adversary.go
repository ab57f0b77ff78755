package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Adversary is the aggregate root. It owns its scalar stat block and
// references shared value objects (basic attack, tactics, tags,
// features) plus payload-bearing experience joins. (author, name) is
// unique and the name is never empty.
type Adversary struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:adversary_author_name" json:"-"`
	Author   *Account  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`

	Name        string          `gorm:"size:120;not null;uniqueIndex:adversary_author_name;index" json:"name"`
	Tier        Tier            `gorm:"not null;default:0" json:"tier"`
	Type        AdversaryType   `gorm:"type:varchar(3);not null;default:'UNK';index:idx_adversary_type_tier" json:"type"`
	Status      AdversaryStatus `gorm:"type:varchar(3);not null;default:'DRA'" json:"status"`
	Description *string         `gorm:"type:text" json:"description"`
	Source      *string         `gorm:"type:text" json:"source"`

	Difficulty      *int16 `gorm:"check:adv_difficulty_nonneg,difficulty >= 0" json:"difficulty"`
	ThresholdMajor  *int16 `gorm:"check:adv_threshold_major_nonneg,threshold_major >= 0" json:"threshold_major"`
	ThresholdSevere *int16 `gorm:"check:adv_threshold_severe_nonneg,threshold_severe >= 0" json:"threshold_severe"`
	HitPoint        *int16 `gorm:"check:adv_hit_point_nonneg,hit_point >= 0" json:"hit_point"`
	HordeHitPoint   *int16 `gorm:"check:adv_horde_hit_point_nonneg,horde_hit_point >= 0" json:"horde_hit_point"`
	StressPoint     *int16 `gorm:"check:adv_stress_point_nonneg,stress_point >= 0" json:"stress_point"`
	AtkBonus        *int16 `json:"atk_bonus"`

	BasicAttackID *uuid.UUID   `gorm:"type:uuid" json:"-"`
	BasicAttack   *BasicAttack `gorm:"constraint:OnDelete:RESTRICT;foreignKey:BasicAttackID;references:ID" json:"basic_attack,omitempty"`

	Tactics     []*Tactic              `gorm:"many2many:adversary_tactics" json:"tactics,omitempty"`
	Tags        []*Tag                 `gorm:"many2many:adversary_tags" json:"tags,omitempty"`
	Features    []*Feature             `gorm:"many2many:adversary_features" json:"features,omitempty"`
	Experiences []*AdversaryExperience `gorm:"foreignKey:AdversaryID;constraint:OnDelete:CASCADE" json:"experiences,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Adversary) TableName() string { return "adversary" }

func (a *Adversary) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
