// Package dto holds the already-normalized documents the adversary
// service consumes. Enum fields carry canonical codes; synonym
// resolution happens at the HTTP boundary (internal/normalize).
package dto

import (
	"github.com/a-beduc/dh-toolbox/internal/optional"
	"github.com/a-beduc/dh-toolbox/internal/types"
)

// DamageInput is a full damage fragment: omitted fields already hold
// their blank defaults.
type DamageInput struct {
	DiceNumber int16
	DiceType   int16
	Bonus      int16
	DamageType types.DamageType
}

type BasicAttackInput struct {
	Name   string
	Range  types.AttackRange
	Damage *DamageInput
}

type ExperienceInput struct {
	Name  string
	Bonus int16
}

type FeatureInput struct {
	Name        string
	Type        types.FeatureType
	Description string
}

// AdversaryInput is the create/PUT document: every field is
// meaningful and an omitted field means "reset to default".
type AdversaryInput struct {
	Name            string
	Tier            types.Tier
	Type            types.AdversaryType
	Status          types.AdversaryStatus
	Description     *string
	Source          *string
	Difficulty      *int16
	ThresholdMajor  *int16
	ThresholdSevere *int16
	HitPoint        *int16
	HordeHitPoint   *int16
	StressPoint     *int16
	AtkBonus        *int16
	BasicAttack     *BasicAttackInput
	Tactics         []string
	Tags            []string
	Experiences     []ExperienceInput
	Features        []FeatureInput
}

// DamagePatch is the sparse counterpart of DamageInput; each field
// defaults to the unset token.
type DamagePatch struct {
	DiceNumber optional.Value[int16]
	DiceType   optional.Value[int16]
	Bonus      optional.Value[int16]
	DamageType optional.Value[types.DamageType]
}

type BasicAttackPatch struct {
	Name   optional.Value[string]
	Range  optional.Value[types.AttackRange]
	Damage optional.Value[DamagePatch]
}

// AdversaryPatch is the PATCH document. An unset field leaves the
// current value untouched; null clears (nullable scalars go to NULL,
// enums to their unspecified code, collections and the basic attack
// detach).
type AdversaryPatch struct {
	Name            optional.Value[string]
	Tier            optional.Value[types.Tier]
	Type            optional.Value[types.AdversaryType]
	Status          optional.Value[types.AdversaryStatus]
	Description     optional.Value[string]
	Source          optional.Value[string]
	Difficulty      optional.Value[int16]
	ThresholdMajor  optional.Value[int16]
	ThresholdSevere optional.Value[int16]
	HitPoint        optional.Value[int16]
	HordeHitPoint   optional.Value[int16]
	StressPoint     optional.Value[int16]
	AtkBonus        optional.Value[int16]
	BasicAttack     optional.Value[BasicAttackPatch]
	Tactics         optional.Value[[]string]
	Tags            optional.Value[[]string]
	Experiences     optional.Value[[]ExperienceInput]
	Features        optional.Value[[]FeatureInput]
}
