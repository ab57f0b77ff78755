package normalize

import (
  "errors"
  "testing"

  "github.com/a-beduc/dh-toolbox/internal/types"
)

func TestDamageTypeSynonyms(t *testing.T) {
  cases := map[string]types.DamageType{
    "":          types.DamageTypeUnspecified,
    "physical":  types.DamageTypePhysical,
    " Magical ": types.DamageTypeMagical,
    "phy/mag":   types.DamageTypeBoth,
    "BTH":       types.DamageTypeBoth,
  }
  for raw, want := range cases {
    got, err := DamageType(raw)
    if err != nil {
      t.Fatalf("DamageType(%q): %v", raw, err)
    }
    if got != want {
      t.Fatalf("DamageType(%q) = %q, want %q", raw, got, want)
    }
  }
}

func TestAttackRangeSynonyms(t *testing.T) {
  cases := map[string]types.AttackRange{
    "melee":      types.AttackRangeMelee,
    "very close": types.AttackRangeVeryClose,
    "V-Close":    types.AttackRangeVeryClose,
    "very_far":   types.AttackRangeVeryFar,
    "FAR":        types.AttackRangeFar,
  }
  for raw, want := range cases {
    got, err := AttackRange(raw)
    if err != nil {
      t.Fatalf("AttackRange(%q): %v", raw, err)
    }
    if got != want {
      t.Fatalf("AttackRange(%q) = %q, want %q", raw, got, want)
    }
  }
}

func TestTierAcceptsDigitsWordsAndNumerals(t *testing.T) {
  cases := map[string]types.Tier{
    "":      types.TierUnspecified,
    "UNK":   types.TierUnspecified,
    "1":     types.TierOne,
    "two":   types.TierTwo,
    "III":   types.TierThree,
    "FOUR":  types.TierFour,
  }
  for raw, want := range cases {
    got, err := Tier(raw)
    if err != nil {
      t.Fatalf("Tier(%q): %v", raw, err)
    }
    if got != want {
      t.Fatalf("Tier(%q) = %d, want %d", raw, got, want)
    }
  }
}

func TestInvalidValueFailsWithChoiceError(t *testing.T) {
  _, err := AdversaryType("dragon")
  if err == nil {
    t.Fatalf("expected error for unknown type")
  }
  var choiceErr *InvalidChoiceError
  if !errors.As(err, &choiceErr) {
    t.Fatalf("expected InvalidChoiceError, got %T", err)
  }
  if choiceErr.Value != "dragon" {
    t.Fatalf("unexpected value in error: %q", choiceErr.Value)
  }
}

func TestStatusSynonyms(t *testing.T) {
  got, err := Status("draft")
  if err != nil || got != types.AdversaryStatusDraft {
    t.Fatalf("Status(draft) = %q, %v", got, err)
  }
  got, err = Status("PUBLISHED")
  if err != nil || got != types.AdversaryStatusPublished {
    t.Fatalf("Status(PUBLISHED) = %q, %v", got, err)
  }
}

func TestChoicesListsCanonicalCodes(t *testing.T) {
  choices := Choices()
  ranges, ok := choices["range"]
  if !ok {
    t.Fatalf("expected a range table")
  }
  want := []string{"CLO", "FAR", "MEL", "UNK", "VCL", "VFA"}
  if len(ranges) != len(want) {
    t.Fatalf("unexpected range codes: %v", ranges)
  }
  for i, code := range want {
    if ranges[i] != code {
      t.Fatalf("unexpected range codes: %v", ranges)
    }
  }

  tiers, ok := choices["tier"]
  if !ok {
    t.Fatalf("expected a tier table")
  }
  wantTiers := []string{"0", "1", "2", "3", "4"}
  if len(tiers) != len(wantTiers) {
    t.Fatalf("unexpected tier codes: %v", tiers)
  }
  for i, code := range wantTiers {
    if tiers[i] != code {
      t.Fatalf("unexpected tier codes: %v", tiers)
    }
  }
}
