package handlers

import (
  "time"

  "github.com/google/uuid"

  "github.com/a-beduc/dh-toolbox/internal/types"
)

type AuthorView struct {
  ID       uuid.UUID `json:"id"`
  Username string    `json:"username"`
}

type DamageView struct {
  DiceNumber int16            `json:"dice_number"`
  DiceType   int16            `json:"dice_type"`
  Bonus      int16            `json:"bonus"`
  DamageType types.DamageType `json:"damage_type"`
}

type BasicAttackView struct {
  Name   string            `json:"name"`
  Range  types.AttackRange `json:"range"`
  Damage *DamageView       `json:"damage"`
}

type ExperienceView struct {
  Name  string `json:"name"`
  Bonus int16  `json:"bonus"`
}

type FeatureView struct {
  ID          uuid.UUID         `json:"id"`
  Name        string            `json:"name"`
  Type        types.FeatureType `json:"type"`
  Description string            `json:"description"`
}

// AdversaryDetailView nests full objects; the list view flattens the
// same relations into display strings.
type AdversaryDetailView struct {
  ID              uuid.UUID             `json:"id"`
  Name            string                `json:"name"`
  Tier            types.Tier            `json:"tier"`
  Type            types.AdversaryType   `json:"type"`
  Status          types.AdversaryStatus `json:"status"`
  Description     *string               `json:"description"`
  Source          *string               `json:"source"`
  Difficulty      *int16                `json:"difficulty"`
  ThresholdMajor  *int16                `json:"threshold_major"`
  ThresholdSevere *int16                `json:"threshold_severe"`
  HitPoint        *int16                `json:"hit_point"`
  HordeHitPoint   *int16                `json:"horde_hit_point"`
  StressPoint     *int16                `json:"stress_point"`
  AtkBonus        *int16                `json:"atk_bonus"`
  BasicAttack     *BasicAttackView      `json:"basic_attack"`
  Tactics         []string              `json:"tactics"`
  Tags            []string              `json:"tags"`
  Features        []FeatureView         `json:"features"`
  Experiences     []ExperienceView      `json:"experiences"`
  Author          *AuthorView           `json:"author"`
  CreatedAt       time.Time             `json:"created_at"`
  UpdatedAt       time.Time             `json:"updated_at"`
}

type AdversaryListItemView struct {
  ID              uuid.UUID             `json:"id"`
  Name            string                `json:"name"`
  Tier            types.Tier            `json:"tier"`
  Type            types.AdversaryType   `json:"type"`
  Status          types.AdversaryStatus `json:"status"`
  Description     *string               `json:"description"`
  Source          *string               `json:"source"`
  Difficulty      *int16                `json:"difficulty"`
  ThresholdMajor  *int16                `json:"threshold_major"`
  ThresholdSevere *int16                `json:"threshold_severe"`
  HitPoint        *int16                `json:"hit_point"`
  HordeHitPoint   *int16                `json:"horde_hit_point"`
  StressPoint     *int16                `json:"stress_point"`
  AtkBonus        *int16                `json:"atk_bonus"`
  BasicAttack     *string               `json:"basic_attack"`
  Tactics         *string               `json:"tactics"`
  Tags            *string               `json:"tags"`
  Features        *string               `json:"features"`
  Experiences     *string               `json:"experiences"`
  Author          *AuthorView           `json:"author"`
}

func toAuthorView(a *types.Account) *AuthorView {
  if a == nil {
    return nil
  }
  return &AuthorView{ID: a.ID, Username: a.Username}
}

func toBasicAttackView(ba *types.BasicAttack) *BasicAttackView {
  if ba == nil {
    return nil
  }
  view := &BasicAttackView{Name: ba.Name, Range: ba.Range}
  if ba.Damage != nil {
    view.Damage = &DamageView{
      DiceNumber: ba.Damage.DiceNumber,
      DiceType:   ba.Damage.DiceType,
      Bonus:      ba.Damage.Bonus,
      DamageType: ba.Damage.DamageType,
    }
  }
  return view
}

func tacticNames(ts []*types.Tactic) []string {
  out := make([]string, 0, len(ts))
  for _, t := range ts {
    out = append(out, t.Name)
  }
  return out
}

func tagNames(ts []*types.Tag) []string {
  out := make([]string, 0, len(ts))
  for _, t := range ts {
    out = append(out, t.Name)
  }
  return out
}

func featureNames(fs []*types.Feature) []string {
  out := make([]string, 0, len(fs))
  for _, f := range fs {
    out = append(out, f.Name)
  }
  return out
}

func toAdversaryDetailView(adv *types.Adversary) *AdversaryDetailView {
  features := make([]FeatureView, 0, len(adv.Features))
  for _, f := range adv.Features {
    features = append(features, FeatureView{ID: f.ID, Name: f.Name, Type: f.Type, Description: f.Description})
  }
  experiences := make([]ExperienceView, 0, len(adv.Experiences))
  for _, e := range adv.Experiences {
    name := ""
    if e.Experience != nil {
      name = e.Experience.Name
    }
    experiences = append(experiences, ExperienceView{Name: name, Bonus: e.Bonus})
  }
  return &AdversaryDetailView{
    ID:              adv.ID,
    Name:            adv.Name,
    Tier:            adv.Tier,
    Type:            adv.Type,
    Status:          adv.Status,
    Description:     adv.Description,
    Source:          adv.Source,
    Difficulty:      adv.Difficulty,
    ThresholdMajor:  adv.ThresholdMajor,
    ThresholdSevere: adv.ThresholdSevere,
    HitPoint:        adv.HitPoint,
    HordeHitPoint:   adv.HordeHitPoint,
    StressPoint:     adv.StressPoint,
    AtkBonus:        adv.AtkBonus,
    BasicAttack:     toBasicAttackView(adv.BasicAttack),
    Tactics:         tacticNames(adv.Tactics),
    Tags:            tagNames(adv.Tags),
    Features:        features,
    Experiences:     experiences,
    Author:          toAuthorView(adv.Author),
    CreatedAt:       adv.CreatedAt,
    UpdatedAt:       adv.UpdatedAt,
  }
}

func toAdversaryListItemView(adv *types.Adversary) *AdversaryListItemView {
  var attack *string
  if adv.BasicAttack != nil {
    attack = formatBasicAttack(adv.BasicAttack.Name, adv.BasicAttack.Range, adv.BasicAttack.Damage)
  }
  return &AdversaryListItemView{
    ID:              adv.ID,
    Name:            adv.Name,
    Tier:            adv.Tier,
    Type:            adv.Type,
    Status:          adv.Status,
    Description:     adv.Description,
    Source:          adv.Source,
    Difficulty:      adv.Difficulty,
    ThresholdMajor:  adv.ThresholdMajor,
    ThresholdSevere: adv.ThresholdSevere,
    HitPoint:        adv.HitPoint,
    HordeHitPoint:   adv.HordeHitPoint,
    StressPoint:     adv.StressPoint,
    AtkBonus:        adv.AtkBonus,
    BasicAttack:     attack,
    Tactics:         formatCSVNames(tacticNames(adv.Tactics)),
    Tags:            formatCSVNames(tagNames(adv.Tags)),
    Features:        formatCSVNames(featureNames(adv.Features)),
    Experiences:     formatCSVExperiences(adv.Experiences),
    Author:          toAuthorView(adv.Author),
  }
}
