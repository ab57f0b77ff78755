package handlers

import (
  "encoding/json"

  "github.com/a-beduc/dh-toolbox/internal/dto"
  "github.com/a-beduc/dh-toolbox/internal/normalize"
  "github.com/a-beduc/dh-toolbox/internal/optional"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

// rawChoice tolerates both JSON strings and numbers so a tier may be
// sent as 2, "2" or "two".
type rawChoice string

func (rc *rawChoice) UnmarshalJSON(data []byte) error {
  var s string
  if err := json.Unmarshal(data, &s); err == nil {
    *rc = rawChoice(s)
    return nil
  }
  var n json.Number
  if err := json.Unmarshal(data, &n); err != nil {
    return err
  }
  *rc = rawChoice(n.String())
  return nil
}

// The wire structs decode every field three-state so one shape serves
// both the full (create/PUT) documents and the sparse PATCH ones.

type damageWire struct {
  DiceNumber optional.Value[int16]     `json:"dice_number"`
  DiceType   optional.Value[int16]     `json:"dice_type"`
  Bonus      optional.Value[int16]     `json:"bonus"`
  DamageType optional.Value[rawChoice] `json:"damage_type"`
}

type basicAttackWire struct {
  Name   optional.Value[string]     `json:"name"`
  Range  optional.Value[rawChoice]  `json:"range"`
  Damage optional.Value[damageWire] `json:"damage"`
}

type experienceWire struct {
  Name  string `json:"name"`
  Bonus int16  `json:"bonus"`
}

type featureWire struct {
  Name        string    `json:"name"`
  Type        rawChoice `json:"type"`
  Description string    `json:"description"`
}

type adversaryWire struct {
  Name            optional.Value[string]           `json:"name"`
  Tier            optional.Value[rawChoice]        `json:"tier"`
  Type            optional.Value[rawChoice]        `json:"type"`
  Status          optional.Value[rawChoice]        `json:"status"`
  Description     optional.Value[string]           `json:"description"`
  Source          optional.Value[string]           `json:"source"`
  Difficulty      optional.Value[int16]            `json:"difficulty"`
  ThresholdMajor  optional.Value[int16]            `json:"threshold_major"`
  ThresholdSevere optional.Value[int16]            `json:"threshold_severe"`
  HitPoint        optional.Value[int16]            `json:"hit_point"`
  HordeHitPoint   optional.Value[int16]            `json:"horde_hit_point"`
  StressPoint     optional.Value[int16]            `json:"stress_point"`
  AtkBonus        optional.Value[int16]            `json:"atk_bonus"`
  BasicAttack     optional.Value[basicAttackWire]  `json:"basic_attack"`
  Tactics         optional.Value[[]string]         `json:"tactics"`
  Tags            optional.Value[[]string]         `json:"tags"`
  Experiences     optional.Value[[]experienceWire] `json:"experiences"`
  Features        optional.Value[[]featureWire]    `json:"features"`
}

func toFeatureInputs(in []featureWire) ([]dto.FeatureInput, error) {
  out := make([]dto.FeatureInput, 0, len(in))
  for _, f := range in {
    ft, err := normalize.FeatureType(string(f.Type))
    if err != nil {
      return nil, err
    }
    out = append(out, dto.FeatureInput{Name: f.Name, Type: ft, Description: f.Description})
  }
  return out, nil
}

func toExperienceInputs(in []experienceWire) []dto.ExperienceInput {
  out := make([]dto.ExperienceInput, 0, len(in))
  for _, e := range in {
    out = append(out, dto.ExperienceInput{Name: e.Name, Bonus: e.Bonus})
  }
  return out
}

func toBasicAttackInput(in basicAttackWire) (*dto.BasicAttackInput, error) {
  rng, err := normalize.AttackRange(string(in.Range.Or("")))
  if err != nil {
    return nil, err
  }
  attack := &dto.BasicAttackInput{
    Name:  in.Name.Or(""),
    Range: rng,
  }
  if dmg, ok := in.Damage.Get(); ok {
    dt, err := normalize.DamageType(string(dmg.DamageType.Or("")))
    if err != nil {
      return nil, err
    }
    attack.Damage = &dto.DamageInput{
      DiceNumber: dmg.DiceNumber.Or(0),
      DiceType:   dmg.DiceType.Or(0),
      Bonus:      dmg.Bonus.Or(0),
      DamageType: dt,
    }
  }
  return attack, nil
}

// toInput flattens a wire document to the full-replace form: absent
// and null both mean "use the default".
func (w *adversaryWire) toInput() (*dto.AdversaryInput, error) {
  tier, err := normalize.Tier(string(w.Tier.Or("")))
  if err != nil {
    return nil, err
  }
  advType, err := normalize.AdversaryType(string(w.Type.Or("")))
  if err != nil {
    return nil, err
  }
  // An absent or null status stays empty so the service fills in the
  // draft default; normalizing "" here would pin it to UNK instead.
  var status types.AdversaryStatus
  if raw, ok := w.Status.Get(); ok {
    if status, err = normalize.Status(string(raw)); err != nil {
      return nil, err
    }
  }
  in := &dto.AdversaryInput{
    Name:            w.Name.Or(""),
    Tier:            tier,
    Type:            advType,
    Status:          status,
    Description:     optionalToPtr(w.Description),
    Source:          optionalToPtr(w.Source),
    Difficulty:      optionalToPtr(w.Difficulty),
    ThresholdMajor:  optionalToPtr(w.ThresholdMajor),
    ThresholdSevere: optionalToPtr(w.ThresholdSevere),
    HitPoint:        optionalToPtr(w.HitPoint),
    HordeHitPoint:   optionalToPtr(w.HordeHitPoint),
    StressPoint:     optionalToPtr(w.StressPoint),
    AtkBonus:        optionalToPtr(w.AtkBonus),
    Tactics:         w.Tactics.Or(nil),
    Tags:            w.Tags.Or(nil),
  }
  if attack, ok := w.BasicAttack.Get(); ok {
    in.BasicAttack, err = toBasicAttackInput(attack)
    if err != nil {
      return nil, err
    }
  }
  if feats, ok := w.Features.Get(); ok {
    in.Features, err = toFeatureInputs(feats)
    if err != nil {
      return nil, err
    }
  }
  if exps, ok := w.Experiences.Get(); ok {
    in.Experiences = toExperienceInputs(exps)
  }
  return in, nil
}

// toPatch keeps the three-state shape and only normalizes the enum
// payloads that are actually present.
func (w *adversaryWire) toPatch() (*dto.AdversaryPatch, error) {
  patch := &dto.AdversaryPatch{
    Name:            w.Name,
    Description:     w.Description,
    Source:          w.Source,
    Difficulty:      w.Difficulty,
    ThresholdMajor:  w.ThresholdMajor,
    ThresholdSevere: w.ThresholdSevere,
    HitPoint:        w.HitPoint,
    HordeHitPoint:   w.HordeHitPoint,
    StressPoint:     w.StressPoint,
    AtkBonus:        w.AtkBonus,
    Tactics:         w.Tactics,
    Tags:            w.Tags,
  }

  var err error
  if patch.Tier, err = mapChoice(w.Tier, normalize.Tier); err != nil {
    return nil, err
  }
  if patch.Type, err = mapChoice(w.Type, normalize.AdversaryType); err != nil {
    return nil, err
  }
  if patch.Status, err = mapChoice(w.Status, normalize.Status); err != nil {
    return nil, err
  }

  if !w.BasicAttack.IsUnset() {
    if attack, ok := w.BasicAttack.Get(); ok {
      ap := dto.BasicAttackPatch{Name: attack.Name}
      if ap.Range, err = mapChoice(attack.Range, normalize.AttackRange); err != nil {
        return nil, err
      }
      if !attack.Damage.IsUnset() {
        if dmg, ok := attack.Damage.Get(); ok {
          dp := dto.DamagePatch{
            DiceNumber: dmg.DiceNumber,
            DiceType:   dmg.DiceType,
            Bonus:      dmg.Bonus,
          }
          if dp.DamageType, err = mapChoice(dmg.DamageType, normalize.DamageType); err != nil {
            return nil, err
          }
          ap.Damage = optional.Of(dp)
        } else {
          ap.Damage = optional.Null[dto.DamagePatch]()
        }
      }
      patch.BasicAttack = optional.Of(ap)
    } else {
      patch.BasicAttack = optional.Null[dto.BasicAttackPatch]()
    }
  }

  if !w.Features.IsUnset() {
    if feats, ok := w.Features.Get(); ok {
      inputs, err := toFeatureInputs(feats)
      if err != nil {
        return nil, err
      }
      patch.Features = optional.Of(inputs)
    } else {
      patch.Features = optional.Null[[]dto.FeatureInput]()
    }
  }
  if !w.Experiences.IsUnset() {
    if exps, ok := w.Experiences.Get(); ok {
      patch.Experiences = optional.Of(toExperienceInputs(exps))
    } else {
      patch.Experiences = optional.Null[[]dto.ExperienceInput]()
    }
  }
  return patch, nil
}

func mapChoice[T any](v optional.Value[rawChoice], fn func(string) (T, error)) (optional.Value[T], error) {
  if v.IsUnset() {
    return optional.Unset[T](), nil
  }
  if v.IsNull() {
    return optional.Null[T](), nil
  }
  raw, _ := v.Get()
  out, err := fn(string(raw))
  if err != nil {
    return optional.Unset[T](), err
  }
  return optional.Of(out), nil
}

func optionalToPtr[T any](v optional.Value[T]) *T {
  if out, ok := v.Get(); ok {
    return &out
  }
  return nil
}
