package importer

import (
  "os"
  "path/filepath"
  "strings"
  "testing"

  "github.com/a-beduc/dh-toolbox/internal/types"
)

func TestSplitThreshold(t *testing.T) {
  major, severe, err := splitThreshold("12/24")
  if err != nil || major != 12 || severe != 24 {
    t.Fatalf("got %d/%d, %v", major, severe, err)
  }
  major, severe, err = splitThreshold("None")
  if err != nil || major != 0 || severe != 0 {
    t.Fatalf("None should read as 0/0, got %d/%d, %v", major, severe, err)
  }
  major, severe, err = splitThreshold("8/None")
  if err != nil || major != 8 || severe != 0 {
    t.Fatalf("got %d/%d, %v", major, severe, err)
  }
  if _, _, err = splitThreshold("abc"); err == nil {
    t.Fatalf("expected error for garbage threshold")
  }
}

func TestParseDamage(t *testing.T) {
  cases := []struct {
    raw        string
    diceNumber int16
    diceType   int16
    bonus      int16
    damageType types.DamageType
  }{
    {"2d6+3 phy", 2, 6, 3, types.DamageTypePhysical},
    {"1d12 mag", 1, 12, 0, types.DamageTypeMagical},
    {"2d10-4 mag", 2, 10, -4, types.DamageTypeMagical},
    {"7 phy", 0, 0, 7, types.DamageTypePhysical},
    {"-4 phy", 0, 0, -4, types.DamageTypePhysical},
    {"1d8 phy/mag", 1, 8, 0, types.DamageTypeBoth},
  }
  for _, tc := range cases {
    got, err := parseDamage(tc.raw)
    if err != nil {
      t.Fatalf("parseDamage(%q): %v", tc.raw, err)
    }
    if got.DiceNumber != tc.diceNumber || got.DiceType != tc.diceType ||
      got.Bonus != tc.bonus || got.DamageType != tc.damageType {
      t.Fatalf("parseDamage(%q) = %+v", tc.raw, got)
    }
  }
  if _, err := parseDamage("nonsense"); err == nil {
    t.Fatalf("expected error for damage without a type")
  }
}

func TestParseExperiences(t *testing.T) {
  got, err := parseExperiences("Tracker +2, Stalker +3")
  if err != nil {
    t.Fatalf("parseExperiences: %v", err)
  }
  if len(got) != 2 || got[0].Name != "tracker" || got[0].Bonus != 2 ||
    got[1].Name != "stalker" || got[1].Bonus != 3 {
    t.Fatalf("unexpected: %+v", got)
  }
  got, err = parseExperiences("")
  if err != nil || got != nil {
    t.Fatalf("empty input should yield nothing, got %+v, %v", got, err)
  }
}

func TestParseFeaturesSplitsBlocks(t *testing.T) {
  raw := "Relentless (3) - Passive: The burrower can be spotlighted " +
    "three times per round. Earth Eruption - Action: Mark a Stress to " +
    "have the burrower burst out of the ground."
  got, err := parseFeatures(raw)
  if err != nil {
    t.Fatalf("parseFeatures: %v", err)
  }
  if len(got) != 2 {
    t.Fatalf("expected 2 features, got %d: %+v", len(got), got)
  }
  if got[0].Name != "relentless (3)" || got[0].Type != types.FeatureTypePassive {
    t.Fatalf("unexpected first feature: %+v", got[0])
  }
  if !strings.HasPrefix(got[0].Description, "The burrower") ||
    strings.Contains(got[0].Description, "Earth Eruption") {
    t.Fatalf("description bled into the next block: %q", got[0].Description)
  }
  if got[1].Name != "earth eruption" || got[1].Type != types.FeatureTypeAction {
    t.Fatalf("unexpected second feature: %+v", got[1])
  }
}

func TestParseFileCollectsRowWarnings(t *testing.T) {
  header := strings.Join([]string{
    "Name", "Tier", "Type", "Horde HP", "Description", "Tactics",
    "Difficulty", "Thresholds", "HP", "Stress", "ATK", "Attack",
    "Range", "Damage", "Experience", "Features",
  }, "\t")
  good := strings.Join([]string{
    "Acid Burrower", "Tier 1", "Solo", "", "A horse-sized insect.",
    "Burrow, drag away", "14", "8/15", "8", "3", "+3", "Claws",
    "Very Close", "1d12+2 phy", "Tracker +2",
    "Relentless (3) - Passive: Spotlight three times.",
  }, "\t")
  bad := strings.Join([]string{
    "Broken Row", "Tier 1", "Solo", "", "", "", "not-a-number", "8/15",
    "8", "3", "+3", "Claws", "Very Close", "1d12 phy", "", "",
  }, "\t")

  path := filepath.Join(t.TempDir(), "adversaries.tsv")
  content := header + "\n" + good + "\n" + bad + "\n"
  if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
    t.Fatalf("write fixture: %v", err)
  }

  rows, warnings, err := ParseFile(path)
  if err != nil {
    t.Fatalf("ParseFile: %v", err)
  }
  if len(rows) != 1 {
    t.Fatalf("expected 1 good row, got %d", len(rows))
  }
  if len(warnings) != 1 || !strings.Contains(warnings[0], "line 3") {
    t.Fatalf("expected one warning about line 3, got %v", warnings)
  }

  in := rows[0].Input
  if in.Name != "acid burrower" {
    t.Fatalf("unexpected name: %q", in.Name)
  }
  if in.Tier != types.TierOne || in.Type != types.AdversaryTypeSolo {
    t.Fatalf("unexpected tier/type: %d %q", in.Tier, in.Type)
  }
  if in.Difficulty == nil || *in.Difficulty != 14 {
    t.Fatalf("unexpected difficulty: %v", in.Difficulty)
  }
  if in.ThresholdMajor == nil || *in.ThresholdMajor != 8 ||
    in.ThresholdSevere == nil || *in.ThresholdSevere != 15 {
    t.Fatalf("unexpected thresholds: %v/%v", in.ThresholdMajor, in.ThresholdSevere)
  }
  if in.HordeHitPoint != nil {
    t.Fatalf("empty horde column should stay nil")
  }
  if len(in.Tactics) != 2 || in.Tactics[0] != "burrow" || in.Tactics[1] != "drag away" {
    t.Fatalf("unexpected tactics: %v", in.Tactics)
  }
  if in.BasicAttack == nil || in.BasicAttack.Name != "claws" ||
    in.BasicAttack.Range != types.AttackRangeVeryClose {
    t.Fatalf("unexpected attack: %+v", in.BasicAttack)
  }
  if in.BasicAttack.Damage == nil || in.BasicAttack.Damage.DiceNumber != 1 ||
    in.BasicAttack.Damage.DiceType != 12 || in.BasicAttack.Damage.Bonus != 2 {
    t.Fatalf("unexpected damage: %+v", in.BasicAttack.Damage)
  }
  if len(in.Experiences) != 1 || in.Experiences[0].Name != "tracker" || in.Experiences[0].Bonus != 2 {
    t.Fatalf("unexpected experiences: %+v", in.Experiences)
  }
  if len(in.Features) != 1 || in.Features[0].Name != "relentless (3)" {
    t.Fatalf("unexpected features: %+v", in.Features)
  }
}
