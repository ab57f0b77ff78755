// Package normalize resolves human-entered choice strings to the
// canonical codes stored in the database. It is plain data-driven
// validation: one synonym table per enum.
package normalize

import (
  "fmt"
  "sort"
  "strconv"
  "strings"

  "github.com/a-beduc/dh-toolbox/internal/types"
)

// InvalidChoiceError reports a value no synonym table accepts.
type InvalidChoiceError struct {
  Value string
  Table string
}

func (e *InvalidChoiceError) Error() string {
  return fmt.Sprintf("invalid value %q for %s", e.Value, e.Table)
}

func normKey(s string) string {
  k := strings.ToUpper(strings.TrimSpace(s))
  k = strings.ReplaceAll(k, "-", "_")
  k = strings.ReplaceAll(k, " ", "_")
  return k
}

var damageTypeTable = map[string]types.DamageType{
  "":        types.DamageTypeUnspecified,
  "UNK":     types.DamageTypeUnspecified,
  "UNKNOWN": types.DamageTypeUnspecified,
  "PHY":     types.DamageTypePhysical,
  "PHYSICAL": types.DamageTypePhysical,
  "MAG":     types.DamageTypeMagical,
  "MAGICAL": types.DamageTypeMagical,
  "BTH":     types.DamageTypeBoth,
  "BOTH":    types.DamageTypeBoth,
  "PHY/MAG": types.DamageTypeBoth,
}

var rangeTable = map[string]types.AttackRange{
  "":           types.AttackRangeUnspecified,
  "UNK":        types.AttackRangeUnspecified,
  "UNKNOWN":    types.AttackRangeUnspecified,
  "MEL":        types.AttackRangeMelee,
  "MELEE":      types.AttackRangeMelee,
  "CLO":        types.AttackRangeClose,
  "CLOSE":      types.AttackRangeClose,
  "FAR":        types.AttackRangeFar,
  "VCL":        types.AttackRangeVeryClose,
  "VCLOSE":     types.AttackRangeVeryClose,
  "V_CLOSE":    types.AttackRangeVeryClose,
  "VERY_CLOSE": types.AttackRangeVeryClose,
  "VFA":        types.AttackRangeVeryFar,
  "VFAR":       types.AttackRangeVeryFar,
  "V_FAR":      types.AttackRangeVeryFar,
  "VERY_FAR":   types.AttackRangeVeryFar,
}

var featureTypeTable = map[string]types.FeatureType{
  "":         types.FeatureTypeUnspecified,
  "UNK":      types.FeatureTypeUnspecified,
  "UNKNOWN":  types.FeatureTypeUnspecified,
  "PAS":      types.FeatureTypePassive,
  "PASSIVE":  types.FeatureTypePassive,
  "ACT":      types.FeatureTypeAction,
  "ACTION":   types.FeatureTypeAction,
  "REA":      types.FeatureTypeReaction,
  "REACTION": types.FeatureTypeReaction,
}

var adversaryTypeTable = map[string]types.AdversaryType{
  "":         types.AdversaryTypeUnspecified,
  "UNK":      types.AdversaryTypeUnspecified,
  "UNKNOWN":  types.AdversaryTypeUnspecified,
  "BRU":      types.AdversaryTypeBruiser,
  "BRUISER":  types.AdversaryTypeBruiser,
  "HOR":      types.AdversaryTypeHorde,
  "HORDE":    types.AdversaryTypeHorde,
  "LEA":      types.AdversaryTypeLeader,
  "LEADER":   types.AdversaryTypeLeader,
  "MIN":      types.AdversaryTypeMinion,
  "MINION":   types.AdversaryTypeMinion,
  "RAN":      types.AdversaryTypeRanged,
  "RANGED":   types.AdversaryTypeRanged,
  "SKU":      types.AdversaryTypeSkulk,
  "SKULK":    types.AdversaryTypeSkulk,
  "SOC":      types.AdversaryTypeSocial,
  "SOCIAL":   types.AdversaryTypeSocial,
  "SOL":      types.AdversaryTypeSolo,
  "SOLO":     types.AdversaryTypeSolo,
  "STA":      types.AdversaryTypeStandard,
  "STANDARD": types.AdversaryTypeStandard,
  "SUP":      types.AdversaryTypeSupport,
  "SUPPORT":  types.AdversaryTypeSupport,
}

var statusTable = map[string]types.AdversaryStatus{
  "":          types.AdversaryStatusUnspecified,
  "UNK":       types.AdversaryStatusUnspecified,
  "UNKNOWN":   types.AdversaryStatusUnspecified,
  "DRA":       types.AdversaryStatusDraft,
  "DRAFT":     types.AdversaryStatusDraft,
  "PUB":       types.AdversaryStatusPublished,
  "PUBLISHED": types.AdversaryStatusPublished,
}

var tierTable = map[string]types.Tier{
  "":        types.TierUnspecified,
  "UNK":     types.TierUnspecified,
  "UNKNOWN": types.TierUnspecified,
  "1":       types.TierOne,
  "ONE":     types.TierOne,
  "I":       types.TierOne,
  "2":       types.TierTwo,
  "TWO":     types.TierTwo,
  "II":      types.TierTwo,
  "3":       types.TierThree,
  "THREE":   types.TierThree,
  "III":     types.TierThree,
  "4":       types.TierFour,
  "FOUR":    types.TierFour,
  "IV":      types.TierFour,
}

func DamageType(raw string) (types.DamageType, error) {
  if v, ok := damageTypeTable[normKey(raw)]; ok {
    return v, nil
  }
  return "", &InvalidChoiceError{Value: raw, Table: "damage_type"}
}

func AttackRange(raw string) (types.AttackRange, error) {
  if v, ok := rangeTable[normKey(raw)]; ok {
    return v, nil
  }
  return "", &InvalidChoiceError{Value: raw, Table: "range"}
}

func FeatureType(raw string) (types.FeatureType, error) {
  if v, ok := featureTypeTable[normKey(raw)]; ok {
    return v, nil
  }
  return "", &InvalidChoiceError{Value: raw, Table: "feature_type"}
}

func AdversaryType(raw string) (types.AdversaryType, error) {
  if v, ok := adversaryTypeTable[normKey(raw)]; ok {
    return v, nil
  }
  return "", &InvalidChoiceError{Value: raw, Table: "type"}
}

func Status(raw string) (types.AdversaryStatus, error) {
  if v, ok := statusTable[normKey(raw)]; ok {
    return v, nil
  }
  return "", &InvalidChoiceError{Value: raw, Table: "status"}
}

func Tier(raw string) (types.Tier, error) {
  if v, ok := tierTable[normKey(raw)]; ok {
    return v, nil
  }
  return 0, &InvalidChoiceError{Value: raw, Table: "tier"}
}

// Choices lists every canonical code per table, for the lookup
// endpoint.
func Choices() map[string][]string {
  out := map[string][]string{
    "damage_type":  codesOf(damageTypeTable),
    "range":        codesOf(rangeTable),
    "feature_type": codesOf(featureTypeTable),
    "type":         codesOf(adversaryTypeTable),
    "status":       codesOf(statusTable),
    "tier":         tierCodes(tierTable),
  }
  return out
}

func codesOf[T ~string](table map[string]T) []string {
  seen := map[string]bool{}
  for _, v := range table {
    seen[string(v)] = true
  }
  codes := make([]string, 0, len(seen))
  for c := range seen {
    codes = append(codes, c)
  }
  sort.Strings(codes)
  return codes
}

// Tier is integer-coded, so its codes sort numerically.
func tierCodes(table map[string]types.Tier) []string {
  seen := map[int]bool{}
  for _, v := range table {
    seen[int(v)] = true
  }
  nums := make([]int, 0, len(seen))
  for n := range seen {
    nums = append(nums, n)
  }
  sort.Ints(nums)
  codes := make([]string, 0, len(nums))
  for _, n := range nums {
    codes = append(codes, strconv.Itoa(n))
  }
  return codes
}
