package types

// Canonical choice codes stored in the database. Human-entered
// synonyms are resolved to these by internal/normalize before any
// service call.

type DamageType string

const (
	DamageTypeUnspecified DamageType = "UNK"
	DamageTypePhysical    DamageType = "PHY"
	DamageTypeMagical     DamageType = "MAG"
	DamageTypeBoth        DamageType = "BTH"
)

type AttackRange string

const (
	AttackRangeUnspecified AttackRange = "UNK"
	AttackRangeMelee       AttackRange = "MEL"
	AttackRangeVeryClose   AttackRange = "VCL"
	AttackRangeClose       AttackRange = "CLO"
	AttackRangeFar         AttackRange = "FAR"
	AttackRangeVeryFar     AttackRange = "VFA"
)

type FeatureType string

const (
	FeatureTypeUnspecified FeatureType = "UNK"
	FeatureTypePassive     FeatureType = "PAS"
	FeatureTypeAction      FeatureType = "ACT"
	FeatureTypeReaction    FeatureType = "REA"
)

type AdversaryType string

const (
	AdversaryTypeUnspecified AdversaryType = "UNK"
	AdversaryTypeBruiser     AdversaryType = "BRU"
	AdversaryTypeHorde       AdversaryType = "HOR"
	AdversaryTypeLeader      AdversaryType = "LEA"
	AdversaryTypeMinion      AdversaryType = "MIN"
	AdversaryTypeRanged      AdversaryType = "RAN"
	AdversaryTypeSkulk       AdversaryType = "SKU"
	AdversaryTypeSocial      AdversaryType = "SOC"
	AdversaryTypeSolo        AdversaryType = "SOL"
	AdversaryTypeStandard    AdversaryType = "STA"
	AdversaryTypeSupport     AdversaryType = "SUP"
)

type AdversaryStatus string

const (
	AdversaryStatusUnspecified AdversaryStatus = "UNK"
	AdversaryStatusDraft       AdversaryStatus = "DRA"
	AdversaryStatusPublished   AdversaryStatus = "PUB"
)

// Tier is integer-coded; 0 means unspecified.
type Tier int16

const (
	TierUnspecified Tier = 0
	TierOne         Tier = 1
	TierTwo         Tier = 2
	TierThree       Tier = 3
	TierFour        Tier = 4
)
