package handlers

import (
  "fmt"
  "strings"

  "github.com/a-beduc/dh-toolbox/internal/types"
)

// formatBasicAttack renders the compact list-view form, e.g.
// "Claws: VCL | 1d12 MAG" or "Smash: CLO | 7 PHY". A nameless attack
// renders as nothing.
func formatBasicAttack(name string, rng types.AttackRange, dp *types.DamageProfile) *string {
  if name == "" {
    return nil
  }
  var diceNumber, diceType, bonus int16
  damageType := types.DamageTypeUnspecified
  if dp != nil {
    diceNumber, diceType, bonus, damageType = dp.DiceNumber, dp.DiceType, dp.Bonus, dp.DamageType
  }
  dmg := ""
  if diceNumber != 0 && diceType != 0 {
    dmg = fmt.Sprintf("%dd%d", diceNumber, diceType)
  }
  if bonus != 0 {
    sign := ""
    if bonus > 0 && diceNumber != 0 {
      sign = "+"
    }
    dmg += fmt.Sprintf("%s%d", sign, bonus)
  }
  out := fmt.Sprintf("%s: %s | %s %s", name, rng, dmg, damageType)
  return &out
}

func formatCSVNames(names []string) *string {
  if len(names) == 0 {
    return nil
  }
  out := strings.Join(names, ", ")
  return &out
}

// formatCSVExperiences renders "Drag +0, Swimmer -5" style joins.
func formatCSVExperiences(exps []*types.AdversaryExperience) *string {
  if len(exps) == 0 {
    return nil
  }
  pieces := make([]string, 0, len(exps))
  for _, e := range exps {
    name := ""
    if e.Experience != nil {
      name = e.Experience.Name
    }
    if e.Bonus >= 0 {
      pieces = append(pieces, fmt.Sprintf("%s +%d", name, e.Bonus))
    } else {
      pieces = append(pieces, fmt.Sprintf("%s %d", name, e.Bonus))
    }
  }
  out := strings.Join(pieces, ", ")
  return &out
}
