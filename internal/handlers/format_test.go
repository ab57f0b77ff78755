package handlers

import (
  "testing"

  "github.com/a-beduc/dh-toolbox/internal/types"
)

func TestFormatBasicAttack(t *testing.T) {
  cases := []struct {
    name string
    rng  types.AttackRange
    dp   *types.DamageProfile
    want string
  }{
    {"Claws", types.AttackRangeVeryClose,
      &types.DamageProfile{DiceNumber: 1, DiceType: 12, DamageType: types.DamageTypeMagical},
      "Claws: VCL | 1d12 MAG"},
    {"Bite", types.AttackRangeClose,
      &types.DamageProfile{DiceNumber: 1, DiceType: 8, Bonus: 3, DamageType: types.DamageTypePhysical},
      "Bite: CLO | 1d8+3 PHY"},
    {"Tail", types.AttackRangeFar,
      &types.DamageProfile{DiceNumber: 2, DiceType: 10, Bonus: -4, DamageType: types.DamageTypeMagical},
      "Tail: FAR | 2d10-4 MAG"},
    {"Smash", types.AttackRangeClose,
      &types.DamageProfile{Bonus: 7, DamageType: types.DamageTypePhysical},
      "Smash: CLO | 7 PHY"},
    {"Slam", types.AttackRangeClose,
      &types.DamageProfile{Bonus: -3, DamageType: types.DamageTypeBoth},
      "Slam: CLO | -3 BTH"},
    {"Poke", types.AttackRangeVeryFar,
      &types.DamageProfile{DamageType: types.DamageTypePhysical},
      "Poke: VFA |  PHY"},
  }
  for _, tc := range cases {
    got := formatBasicAttack(tc.name, tc.rng, tc.dp)
    if got == nil {
      t.Fatalf("formatBasicAttack(%q) returned nil", tc.name)
    }
    if *got != tc.want {
      t.Fatalf("formatBasicAttack(%q) = %q, want %q", tc.name, *got, tc.want)
    }
  }
}

func TestFormatBasicAttackNamelessIsNil(t *testing.T) {
  if got := formatBasicAttack("", types.AttackRangeClose, &types.DamageProfile{DiceNumber: 1, DiceType: 6}); got != nil {
    t.Fatalf("expected nil for nameless attack, got %q", *got)
  }
}

func TestFormatBasicAttackNoDamage(t *testing.T) {
  got := formatBasicAttack("Stare", types.AttackRangeFar, nil)
  if got == nil || *got != "Stare: FAR |  UNK" {
    t.Fatalf("unexpected: %v", got)
  }
}

func TestFormatCSVNames(t *testing.T) {
  got := formatCSVNames([]string{"Burrow", "Hide", "Run"})
  if got == nil || *got != "Burrow, Hide, Run" {
    t.Fatalf("unexpected: %v", got)
  }
  if formatCSVNames(nil) != nil {
    t.Fatalf("empty list should render nil")
  }
}

func TestFormatCSVExperiences(t *testing.T) {
  exps := []*types.AdversaryExperience{
    {Experience: &types.Experience{Name: "Drag"}, Bonus: 0},
    {Experience: &types.Experience{Name: "Swimmer"}, Bonus: -5},
    {Experience: &types.Experience{Name: "Eat ice creams"}, Bonus: 5},
  }
  got := formatCSVExperiences(exps)
  if got == nil || *got != "Drag +0, Swimmer -5, Eat ice creams +5" {
    t.Fatalf("unexpected: %v", got)
  }
  if formatCSVExperiences(nil) != nil {
    t.Fatalf("empty list should render nil")
  }
}
