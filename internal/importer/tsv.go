// Package importer loads the official-content TSV export into the
// catalog through the regular adversary service.
package importer

import (
  "encoding/csv"
  "fmt"
  "os"
  "regexp"
  "strconv"
  "strings"

  "github.com/a-beduc/dh-toolbox/internal/dto"
  "github.com/a-beduc/dh-toolbox/internal/normalize"
)

// Row is one parsed TSV line, ready for the service layer.
type Row struct {
  Line  int
  Input *dto.AdversaryInput
}

// column layout of the official export
const (
  colName = iota
  colTier
  colType
  colHordeHitPoint
  colDescription
  colTactics
  colDifficulty
  colThresholds
  colHitPoint
  colStressPoint
  colAtkBonus
  colAttackName
  colAttackRange
  colAttackDamage
  colExperiences
  colFeatures
  columnCount
)

// headerRe matches a feature heading like "Relentless (3) - Passive:".
// The description runs from the end of one heading to the start of the
// next.
var headerRe = regexp.MustCompile(`([\w\s]+(?:\s\(\d+\))?)\s*-\s*(Passive|Action|Reaction):`)

// splitThreshold parses "12/24" style damage thresholds. "None" on
// either side reads as zero.
func splitThreshold(value string) (int16, int16, error) {
  if value == "None" {
    return 0, 0, nil
  }
  parts := strings.Split(value, "/")
  major, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 16)
  if err != nil {
    return 0, 0, fmt.Errorf("bad threshold %q: %w", value, err)
  }
  var severe int64
  if len(parts) > 1 && parts[1] != "None" {
    severe, err = strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 16)
    if err != nil {
      return 0, 0, fmt.Errorf("bad threshold %q: %w", value, err)
    }
  }
  return int16(major), int16(severe), nil
}

// parseDamage parses strings like "2d6+3 phy", "1d12 mag", "-4 phy"
// or "7 phy/mag".
func parseDamage(raw string) (*dto.DamageInput, error) {
  fields := strings.SplitN(strings.TrimSpace(raw), " ", 2)
  if len(fields) != 2 {
    return nil, fmt.Errorf("bad damage %q", raw)
  }
  dice, typeStr := fields[0], fields[1]
  if strings.Contains(typeStr, "phy/mag") {
    typeStr = "BTH"
  }
  damageType, err := normalize.DamageType(typeStr)
  if err != nil {
    return nil, err
  }

  out := &dto.DamageInput{DamageType: damageType}
  if !strings.Contains(dice, "d") {
    bonus, err := strconv.ParseInt(dice, 10, 16)
    if err != nil {
      return nil, fmt.Errorf("bad damage %q: %w", raw, err)
    }
    out.Bonus = int16(bonus)
    return out, nil
  }

  dn, tail, _ := strings.Cut(dice, "d")
  diceNumber, err := strconv.ParseInt(dn, 10, 16)
  if err != nil {
    return nil, fmt.Errorf("bad damage %q: %w", raw, err)
  }
  out.DiceNumber = int16(diceNumber)

  sign := int16(1)
  dtStr := tail
  bonusStr := ""
  if left, right, found := strings.Cut(tail, "+"); found {
    dtStr, bonusStr = left, right
  } else if left, right, found := strings.Cut(tail, "-"); found {
    dtStr, bonusStr = left, right
    sign = -1
  }
  diceType, err := strconv.ParseInt(dtStr, 10, 16)
  if err != nil {
    return nil, fmt.Errorf("bad damage %q: %w", raw, err)
  }
  out.DiceType = int16(diceType)
  if bonusStr != "" {
    bonus, err := strconv.ParseInt(bonusStr, 10, 16)
    if err != nil {
      return nil, fmt.Errorf("bad damage %q: %w", raw, err)
    }
    out.Bonus = sign * int16(bonus)
  }
  return out, nil
}

// parseExperiences parses "Tracker +2, Stalker +3" lists.
func parseExperiences(raw string) ([]dto.ExperienceInput, error) {
  if strings.TrimSpace(raw) == "" {
    return nil, nil
  }
  var out []dto.ExperienceInput
  for _, piece := range strings.Split(raw, ",") {
    name, value, found := strings.Cut(piece, " +")
    if !found {
      return nil, fmt.Errorf("bad experience %q", piece)
    }
    bonus, err := strconv.ParseInt(strings.TrimSpace(value), 10, 16)
    if err != nil {
      return nil, fmt.Errorf("bad experience %q: %w", piece, err)
    }
    out = append(out, dto.ExperienceInput{
      Name:  strings.ToLower(strings.TrimSpace(name)),
      Bonus: int16(bonus),
    })
  }
  return out, nil
}

// parseFeatures parses concatenated "Name - Passive: desc" blocks.
func parseFeatures(raw string) ([]dto.FeatureInput, error) {
  matches := headerRe.FindAllStringSubmatchIndex(raw, -1)
  out := make([]dto.FeatureInput, 0, len(matches))
  for i, m := range matches {
    name := strings.TrimSpace(raw[m[2]:m[3]])
    featType, err := normalize.FeatureType(raw[m[4]:m[5]])
    if err != nil {
      return nil, err
    }
    end := len(raw)
    if i+1 < len(matches) {
      end = matches[i+1][0]
    }
    desc := strings.TrimSpace(raw[m[1]:end])
    out = append(out, dto.FeatureInput{
      Name:        strings.ToLower(name),
      Type:        featType,
      Description: desc,
    })
  }
  return out, nil
}

func parseTactics(raw string) []string {
  if strings.TrimSpace(raw) == "" {
    return nil
  }
  var out []string
  for _, piece := range strings.Split(raw, ",") {
    if name := strings.TrimSpace(piece); name != "" {
      out = append(out, strings.ToLower(name))
    }
  }
  return out
}

func parseInt16(raw string) (int16, error) {
  v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 16)
  return int16(v), err
}

func parseRecord(record []string) (*dto.AdversaryInput, error) {
  if len(record) < columnCount {
    return nil, fmt.Errorf("expected %d columns, got %d", columnCount, len(record))
  }

  tierFields := strings.Fields(record[colTier])
  if len(tierFields) == 0 {
    return nil, fmt.Errorf("bad tier %q", record[colTier])
  }
  tier, err := normalize.Tier(tierFields[len(tierFields)-1])
  if err != nil {
    return nil, err
  }
  advType, err := normalize.AdversaryType(record[colType])
  if err != nil {
    return nil, err
  }
  major, severe, err := splitThreshold(record[colThresholds])
  if err != nil {
    return nil, err
  }
  difficulty, err := parseInt16(record[colDifficulty])
  if err != nil {
    return nil, fmt.Errorf("bad difficulty %q: %w", record[colDifficulty], err)
  }
  hitPoint, err := parseInt16(record[colHitPoint])
  if err != nil {
    return nil, fmt.Errorf("bad hit point %q: %w", record[colHitPoint], err)
  }
  stressPoint, err := parseInt16(record[colStressPoint])
  if err != nil {
    return nil, fmt.Errorf("bad stress point %q: %w", record[colStressPoint], err)
  }
  atkBonus, err := parseInt16(strings.ReplaceAll(record[colAtkBonus], "+", ""))
  if err != nil {
    return nil, fmt.Errorf("bad attack bonus %q: %w", record[colAtkBonus], err)
  }

  in := &dto.AdversaryInput{
    Name:            strings.ToLower(record[colName]),
    Tier:            tier,
    Type:            advType,
    Difficulty:      &difficulty,
    ThresholdMajor:  &major,
    ThresholdSevere: &severe,
    HitPoint:        &hitPoint,
    StressPoint:     &stressPoint,
    AtkBonus:        &atkBonus,
    Tactics:         parseTactics(record[colTactics]),
  }
  if desc := record[colDescription]; desc != "" {
    in.Description = &desc
  }
  if horde := strings.Split(record[colHordeHitPoint], "/")[0]; horde != "" {
    hordeHP, err := parseInt16(horde)
    if err != nil {
      return nil, fmt.Errorf("bad horde hit point %q: %w", record[colHordeHitPoint], err)
    }
    in.HordeHitPoint = &hordeHP
  }

  attackRange, err := normalize.AttackRange(record[colAttackRange])
  if err != nil {
    return nil, err
  }
  damage, err := parseDamage(record[colAttackDamage])
  if err != nil {
    return nil, err
  }
  in.BasicAttack = &dto.BasicAttackInput{
    Name:   strings.ToLower(record[colAttackName]),
    Range:  attackRange,
    Damage: damage,
  }

  if in.Experiences, err = parseExperiences(record[colExperiences]); err != nil {
    return nil, err
  }
  if in.Features, err = parseFeatures(record[colFeatures]); err != nil {
    return nil, err
  }
  return in, nil
}

// ParseFile reads the whole TSV. Malformed rows come back as warnings
// keyed by line number; good rows still load.
func ParseFile(path string) ([]Row, []string, error) {
  f, err := os.Open(path)
  if err != nil {
    return nil, nil, err
  }
  defer f.Close()

  reader := csv.NewReader(f)
  reader.Comma = '\t'
  reader.LazyQuotes = true
  reader.FieldsPerRecord = -1

  records, err := reader.ReadAll()
  if err != nil {
    return nil, nil, fmt.Errorf("read %s: %w", path, err)
  }
  if len(records) == 0 {
    return nil, nil, fmt.Errorf("%s is empty", path)
  }

  var rows []Row
  var warnings []string
  for i, record := range records[1:] {
    line := i + 2
    in, err := parseRecord(record)
    if err != nil {
      warnings = append(warnings, fmt.Sprintf("line %d: %v", line, err))
      continue
    }
    rows = append(rows, Row{Line: line, Input: in})
  }
  return rows, warnings, nil
}
