package services

import (
  "context"
  "errors"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/a-beduc/dh-toolbox/internal/dberr"
  "github.com/a-beduc/dh-toolbox/internal/dto"
  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/optional"
  "github.com/a-beduc/dh-toolbox/internal/repos"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

var (
  ErrMissingAuthor = errors.New("author id is required")
  ErrNameRequired  = errors.New("adversary name must not be empty")
  ErrInvalidDamage = errors.New("damage profile shape is invalid")
)

type AdversaryService interface {
  Create(ctx context.Context, authorID uuid.UUID, in *dto.AdversaryInput) (*types.Adversary, error)
  Get(ctx context.Context, id uuid.UUID) (*types.Adversary, error)
  List(ctx context.Context) ([]*types.Adversary, error)
  Put(ctx context.Context, id uuid.UUID, in *dto.AdversaryInput) (*types.Adversary, error)
  Patch(ctx context.Context, id uuid.UUID, patch *dto.AdversaryPatch) (*types.Adversary, error)
  Delete(ctx context.Context, id uuid.UUID) error
}

type adversaryService struct {
  db            *gorm.DB
  log           *logger.Logger
  adversaryRepo repos.AdversaryRepo
}

func NewAdversaryService(
  db *gorm.DB,
  baseLog *logger.Logger,
  adversaryRepo repos.AdversaryRepo,
) AdversaryService {
  serviceLog := baseLog.With("service", "AdversaryService")
  return &adversaryService{
    db:            db,
    log:           serviceLog,
    adversaryRepo: adversaryRepo,
  }
}

func (as *adversaryService) Create(ctx context.Context, authorID uuid.UUID, in *dto.AdversaryInput) (*types.Adversary, error) {
  if authorID == uuid.Nil {
    return nil, ErrMissingAuthor
  }
  name := strings.TrimSpace(in.Name)
  if name == "" {
    return nil, ErrNameRequired
  }

  var advID uuid.UUID
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    attackID, err := as.buildBasicAttack(ctx, tx, in.BasicAttack)
    if err != nil {
      return err
    }
    adv := &types.Adversary{
      ID:              uuid.New(),
      AuthorID:        authorID,
      Name:            name,
      Tier:            in.Tier,
      Type:            defaultType(in.Type),
      Status:          defaultStatus(in.Status),
      Description:     in.Description,
      Source:          in.Source,
      Difficulty:      in.Difficulty,
      ThresholdMajor:  in.ThresholdMajor,
      ThresholdSevere: in.ThresholdSevere,
      HitPoint:        in.HitPoint,
      HordeHitPoint:   in.HordeHitPoint,
      StressPoint:     in.StressPoint,
      AtkBonus:        in.AtkBonus,
      BasicAttackID:   attackID,
    }
    if err := tx.Omit(clause.Associations).Create(adv).Error; err != nil {
      return fmt.Errorf("create adversary: %w", err)
    }
    advID = adv.ID
    return as.syncAll(ctx, tx, adv, in)
  })
  if err != nil {
    return nil, err
  }
  as.log.Info("adversary created", "adversary_id", advID, "author_id", authorID)
  return as.adversaryRepo.GetByID(ctx, nil, advID)
}

func (as *adversaryService) Get(ctx context.Context, id uuid.UUID) (*types.Adversary, error) {
  return as.adversaryRepo.GetByID(ctx, nil, id)
}

func (as *adversaryService) List(ctx context.Context) ([]*types.Adversary, error) {
  return as.adversaryRepo.List(ctx, nil)
}

// Put replaces the whole document. Omitted scalars already hold their
// type defaults in the input, so assignment alone resets them; omitted
// collections come through empty and clear membership.
func (as *adversaryService) Put(ctx context.Context, id uuid.UUID, in *dto.AdversaryInput) (*types.Adversary, error) {
  name := strings.TrimSpace(in.Name)
  if name == "" {
    return nil, ErrNameRequired
  }

  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    adv, err := as.adversaryRepo.GetForUpdate(ctx, tx, id)
    if err != nil {
      return err
    }
    attackID, err := as.buildBasicAttack(ctx, tx, in.BasicAttack)
    if err != nil {
      return err
    }
    adv.Name = name
    adv.Tier = in.Tier
    adv.Type = defaultType(in.Type)
    adv.Status = defaultStatus(in.Status)
    adv.Description = in.Description
    adv.Source = in.Source
    adv.Difficulty = in.Difficulty
    adv.ThresholdMajor = in.ThresholdMajor
    adv.ThresholdSevere = in.ThresholdSevere
    adv.HitPoint = in.HitPoint
    adv.HordeHitPoint = in.HordeHitPoint
    adv.StressPoint = in.StressPoint
    adv.AtkBonus = in.AtkBonus
    adv.BasicAttackID = attackID
    if err := tx.Omit(clause.Associations).Save(adv).Error; err != nil {
      return fmt.Errorf("save adversary: %w", err)
    }
    return as.syncAll(ctx, tx, adv, in)
  })
  if err != nil {
    return nil, err
  }
  return as.adversaryRepo.GetByID(ctx, nil, id)
}

// Patch applies only the fields present in the document. Null clears:
// nullable scalars go to NULL, enum fields to their unspecified code,
// the basic attack detaches and collections empty out.
func (as *adversaryService) Patch(ctx context.Context, id uuid.UUID, patch *dto.AdversaryPatch) (*types.Adversary, error) {
  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    adv, err := as.adversaryRepo.GetForUpdate(ctx, tx, id)
    if err != nil {
      return err
    }

    if !patch.Name.IsUnset() {
      name, ok := patch.Name.Get()
      name = strings.TrimSpace(name)
      if !ok || name == "" {
        return ErrNameRequired
      }
      adv.Name = name
    }
    if !patch.Tier.IsUnset() {
      adv.Tier = patch.Tier.Or(types.TierUnspecified)
    }
    if !patch.Type.IsUnset() {
      adv.Type = defaultType(patch.Type.Or(types.AdversaryTypeUnspecified))
    }
    if !patch.Status.IsUnset() {
      // explicit null strips the status, it does not re-apply the
      // draft default
      adv.Status = patch.Status.Or(types.AdversaryStatusUnspecified)
    }
    applyNullableString(&adv.Description, patch.Description)
    applyNullableString(&adv.Source, patch.Source)
    applyNullableInt(&adv.Difficulty, patch.Difficulty)
    applyNullableInt(&adv.ThresholdMajor, patch.ThresholdMajor)
    applyNullableInt(&adv.ThresholdSevere, patch.ThresholdSevere)
    applyNullableInt(&adv.HitPoint, patch.HitPoint)
    applyNullableInt(&adv.HordeHitPoint, patch.HordeHitPoint)
    applyNullableInt(&adv.StressPoint, patch.StressPoint)
    applyNullableInt(&adv.AtkBonus, patch.AtkBonus)

    if !patch.BasicAttack.IsUnset() {
      attack, err := as.resolveBasicAttack(ctx, tx, adv.BasicAttackID, patch.BasicAttack)
      if err != nil {
        return err
      }
      if attack == nil {
        adv.BasicAttackID = nil
      } else {
        adv.BasicAttackID = &attack.ID
      }
    }

    if err := tx.Omit(clause.Associations).Save(adv).Error; err != nil {
      return fmt.Errorf("save adversary: %w", err)
    }

    if !patch.Tactics.IsUnset() {
      if err := as.syncTactics(ctx, tx, adv, patch.Tactics.Or(nil)); err != nil {
        return err
      }
    }
    if !patch.Tags.IsUnset() {
      if err := as.syncTags(ctx, tx, adv, patch.Tags.Or(nil)); err != nil {
        return err
      }
    }
    if !patch.Features.IsUnset() {
      if err := as.syncFeatures(ctx, tx, adv, patch.Features.Or(nil)); err != nil {
        return err
      }
    }
    if !patch.Experiences.IsUnset() {
      if err := as.syncExperiences(ctx, tx, adv, patch.Experiences.Or(nil)); err != nil {
        return err
      }
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return as.adversaryRepo.GetByID(ctx, nil, id)
}

func (as *adversaryService) Delete(ctx context.Context, id uuid.UUID) error {
  if _, err := as.adversaryRepo.GetByID(ctx, nil, id); err != nil {
    return err
  }
  return as.adversaryRepo.Delete(ctx, nil, id)
}

func (as *adversaryService) syncAll(ctx context.Context, tx *gorm.DB, adv *types.Adversary, in *dto.AdversaryInput) error {
  if err := as.syncTactics(ctx, tx, adv, in.Tactics); err != nil {
    return err
  }
  if err := as.syncTags(ctx, tx, adv, in.Tags); err != nil {
    return err
  }
  if err := as.syncFeatures(ctx, tx, adv, in.Features); err != nil {
    return err
  }
  return as.syncExperiences(ctx, tx, adv, in.Experiences)
}

// ---- value-object resolution ----

// findOrCreateDamageProfile deduplicates by the full 4-tuple. A lost
// create race surfaces as a unique violation, in which case the row
// now exists and a second lookup settles it.
func (as *adversaryService) findOrCreateDamageProfile(ctx context.Context, tx *gorm.DB, dp types.DamageProfile) (*types.DamageProfile, error) {
  if dp.DamageType == "" {
    dp.DamageType = types.DamageTypeUnspecified
  }
  if !dp.ValidShape() {
    return nil, ErrInvalidDamage
  }
  lookup := func() (*types.DamageProfile, error) {
    var found types.DamageProfile
    err := tx.WithContext(ctx).
      Where("dice_number = ? AND dice_type = ? AND bonus = ? AND damage_type = ?",
        dp.DiceNumber, dp.DiceType, dp.Bonus, dp.DamageType).
      First(&found).Error
    if err != nil {
      return nil, err
    }
    return &found, nil
  }
  found, err := lookup()
  if err == nil {
    return found, nil
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, err
  }
  created := dp
  created.ID = uuid.New()
  if err := tx.WithContext(ctx).Create(&created).Error; err != nil {
    if dberr.IsUniqueViolation(err) {
      return lookup()
    }
    return nil, err
  }
  return &created, nil
}

func (as *adversaryService) findOrCreateBasicAttack(ctx context.Context, tx *gorm.DB, name string, rng types.AttackRange, damageID *uuid.UUID) (*types.BasicAttack, error) {
  if rng == "" {
    rng = types.AttackRangeUnspecified
  }
  lookup := func() (*types.BasicAttack, error) {
    q := tx.WithContext(ctx).Where(`name = ? AND "range" = ?`, name, rng)
    if damageID == nil {
      q = q.Where("damage_id IS NULL")
    } else {
      q = q.Where("damage_id = ?", *damageID)
    }
    var found types.BasicAttack
    if err := q.First(&found).Error; err != nil {
      return nil, err
    }
    return &found, nil
  }
  found, err := lookup()
  if err == nil {
    return found, nil
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, err
  }
  created := types.BasicAttack{
    ID:       uuid.New(),
    Name:     name,
    Range:    rng,
    DamageID: damageID,
  }
  if err := tx.WithContext(ctx).Create(&created).Error; err != nil {
    if dberr.IsUniqueViolation(err) {
      return lookup()
    }
    return nil, err
  }
  return &created, nil
}

// buildBasicAttack resolves a full (create/PUT) attack fragment. A nil
// or all-blank fragment means no attack at all.
func (as *adversaryService) buildBasicAttack(ctx context.Context, tx *gorm.DB, in *dto.BasicAttackInput) (*uuid.UUID, error) {
  if in == nil {
    return nil, nil
  }
  name := strings.TrimSpace(in.Name)
  var damageID *uuid.UUID
  if in.Damage != nil {
    dp := types.DamageProfile{
      DiceNumber: in.Damage.DiceNumber,
      DiceType:   in.Damage.DiceType,
      Bonus:      in.Damage.Bonus,
      DamageType: in.Damage.DamageType,
    }
    if !dp.IsBlank() {
      resolved, err := as.findOrCreateDamageProfile(ctx, tx, dp)
      if err != nil {
        return nil, err
      }
      damageID = &resolved.ID
    }
  }
  probe := types.BasicAttack{Name: name, Range: in.Range, DamageID: damageID}
  if probe.IsBlank() {
    return nil, nil
  }
  attack, err := as.findOrCreateBasicAttack(ctx, tx, name, in.Range, damageID)
  if err != nil {
    return nil, err
  }
  return &attack.ID, nil
}

// resolveDamageProfile overlays a sparse damage fragment onto the
// current profile. Unset inner fields keep the current value, null
// ones fall back to the blank default.
func (as *adversaryService) resolveDamageProfile(ctx context.Context, tx *gorm.DB, current *types.DamageProfile, patch optional.Value[dto.DamagePatch]) (*uuid.UUID, error) {
  p, ok := patch.Get()
  if !ok {
    // null: no damage at all
    return nil, nil
  }
  var base types.DamageProfile
  if current != nil {
    base = types.DamageProfile{
      DiceNumber: current.DiceNumber,
      DiceType:   current.DiceType,
      Bonus:      current.Bonus,
      DamageType: current.DamageType,
    }
  }
  if !p.DiceNumber.IsUnset() {
    base.DiceNumber = p.DiceNumber.Or(0)
  }
  if !p.DiceType.IsUnset() {
    base.DiceType = p.DiceType.Or(0)
  }
  if !p.Bonus.IsUnset() {
    base.Bonus = p.Bonus.Or(0)
  }
  if !p.DamageType.IsUnset() {
    base.DamageType = p.DamageType.Or(types.DamageTypeUnspecified)
  }
  if base.IsBlank() {
    return nil, nil
  }
  resolved, err := as.findOrCreateDamageProfile(ctx, tx, base)
  if err != nil {
    return nil, err
  }
  return &resolved.ID, nil
}

// resolveBasicAttack applies a sparse attack fragment: unset keeps the
// current attack, null detaches, a value overlays field by field onto
// the current tuple and then find-or-creates the result. The current
// attack row itself is never mutated.
func (as *adversaryService) resolveBasicAttack(ctx context.Context, tx *gorm.DB, currentID *uuid.UUID, patch optional.Value[dto.BasicAttackPatch]) (*types.BasicAttack, error) {
  if patch.IsNull() {
    return nil, nil
  }
  p, ok := patch.Get()
  if !ok {
    return nil, nil
  }

  var current *types.BasicAttack
  if currentID != nil {
    var loaded types.BasicAttack
    if err := tx.WithContext(ctx).Preload("Damage").Where("id = ?", *currentID).First(&loaded).Error; err != nil {
      return nil, err
    }
    current = &loaded
  }

  name := ""
  rng := types.AttackRangeUnspecified
  var currentDamage *types.DamageProfile
  if current != nil {
    name = current.Name
    rng = current.Range
    currentDamage = current.Damage
  }
  if !p.Name.IsUnset() {
    name = strings.TrimSpace(p.Name.Or(""))
  }
  if !p.Range.IsUnset() {
    rng = p.Range.Or(types.AttackRangeUnspecified)
    if rng == "" {
      rng = types.AttackRangeUnspecified
    }
  }

  var damageID *uuid.UUID
  if p.Damage.IsUnset() {
    if currentDamage != nil {
      damageID = &currentDamage.ID
    }
  } else {
    resolved, err := as.resolveDamageProfile(ctx, tx, currentDamage, p.Damage)
    if err != nil {
      return nil, err
    }
    damageID = resolved
  }

  probe := types.BasicAttack{Name: name, Range: rng, DamageID: damageID}
  if probe.IsBlank() {
    return nil, nil
  }
  return as.findOrCreateBasicAttack(ctx, tx, name, rng, damageID)
}

// ---- set synchronizers ----

// syncTactics reconciles tactic membership to exactly the target
// names. Existing rows are looked up in one pass, then every missing
// name is inserted, so a duplicate inside the payload, or a case
// collision with an existing row, surfaces as a conflict instead of
// silently merging. Backing rows are never deleted.
func (as *adversaryService) syncTactics(ctx context.Context, tx *gorm.DB, adv *types.Adversary, target []string) error {
  names := trimmedNames(target)
  var existing []*types.Tactic
  if len(names) > 0 {
    if err := tx.WithContext(ctx).Where("name IN ?", names).Find(&existing).Error; err != nil {
      return fmt.Errorf("lookup tactics: %w", err)
    }
  }
  byName := make(map[string]*types.Tactic, len(existing))
  for _, row := range existing {
    byName[row.Name] = row
  }
  resolved := make([]interface{}, 0, len(names))
  for _, name := range names {
    row, ok := byName[name]
    if !ok {
      row = &types.Tactic{ID: uuid.New(), Name: name}
      if err := tx.WithContext(ctx).Create(row).Error; err != nil {
        return fmt.Errorf("create tactic %q: %w", name, err)
      }
    }
    resolved = append(resolved, row)
  }
  return replaceAssociation(tx.WithContext(ctx).Model(adv).Association("Tactics"), resolved)
}

// syncTags mirrors syncTactics for the tag set.
func (as *adversaryService) syncTags(ctx context.Context, tx *gorm.DB, adv *types.Adversary, target []string) error {
  names := trimmedNames(target)
  var existing []*types.Tag
  if len(names) > 0 {
    if err := tx.WithContext(ctx).Where("name IN ?", names).Find(&existing).Error; err != nil {
      return fmt.Errorf("lookup tags: %w", err)
    }
  }
  byName := make(map[string]*types.Tag, len(existing))
  for _, row := range existing {
    byName[row.Name] = row
  }
  resolved := make([]interface{}, 0, len(names))
  for _, name := range names {
    row, ok := byName[name]
    if !ok {
      row = &types.Tag{ID: uuid.New(), Name: name}
      if err := tx.WithContext(ctx).Create(row).Error; err != nil {
        return fmt.Errorf("create tag %q: %w", name, err)
      }
    }
    resolved = append(resolved, row)
  }
  return replaceAssociation(tx.WithContext(ctx).Model(adv).Association("Tags"), resolved)
}

// syncFeatures reconciles membership against the exact
// (name, type, description) triple. Lookups all run before the first
// insert so a duplicated triple in one payload collides on the unique
// index rather than resolving to the row its twin just created.
func (as *adversaryService) syncFeatures(ctx context.Context, tx *gorm.DB, adv *types.Adversary, target []dto.FeatureInput) error {
  found := make([]*types.Feature, len(target))
  for i, in := range target {
    ft := in.Type
    if ft == "" {
      ft = types.FeatureTypeUnspecified
    }
    var row types.Feature
    err := tx.WithContext(ctx).
      Where("name = ? AND type = ? AND description = ?", in.Name, ft, in.Description).
      First(&row).Error
    if err == nil {
      found[i] = &row
      continue
    }
    if !errors.Is(err, gorm.ErrRecordNotFound) {
      return fmt.Errorf("lookup feature %q: %w", in.Name, err)
    }
  }
  resolved := make([]interface{}, 0, len(target))
  for i, in := range target {
    row := found[i]
    if row == nil {
      ft := in.Type
      if ft == "" {
        ft = types.FeatureTypeUnspecified
      }
      row = &types.Feature{ID: uuid.New(), Name: in.Name, Type: ft, Description: in.Description}
      if err := tx.WithContext(ctx).Create(row).Error; err != nil {
        return fmt.Errorf("create feature %q: %w", in.Name, err)
      }
    }
    resolved = append(resolved, row)
  }
  return replaceAssociation(tx.WithContext(ctx).Model(adv).Association("Features"), resolved)
}

func trimmedNames(in []string) []string {
  out := make([]string, 0, len(in))
  for _, raw := range in {
    if name := strings.TrimSpace(raw); name != "" {
      out = append(out, name)
    }
  }
  return out
}

func replaceAssociation(assoc *gorm.Association, resolved []interface{}) error {
  if len(resolved) == 0 {
    if err := assoc.Clear(); err != nil {
      return fmt.Errorf("clear %s: %w", assoc.Relationship.Name, err)
    }
    return nil
  }
  if err := assoc.Replace(resolved...); err != nil {
    return fmt.Errorf("replace %s: %w", assoc.Relationship.Name, err)
  }
  return nil
}

// syncExperiences reconciles the payload-bearing joins. Duplicate
// names inside one payload collapse to the last bonus. Join rows are
// upserted on (adversary_id, experience_id) so an existing pair only
// gets its bonus refreshed; stale pairs are deleted. Experience rows
// themselves are never deleted.
func (as *adversaryService) syncExperiences(ctx context.Context, tx *gorm.DB, adv *types.Adversary, target []dto.ExperienceInput) error {
  bonuses := make(map[string]int16, len(target))
  order := make([]string, 0, len(target))
  for _, in := range target {
    name := strings.TrimSpace(in.Name)
    if name == "" {
      continue
    }
    if _, seen := bonuses[name]; !seen {
      order = append(order, name)
    }
    bonuses[name] = in.Bonus
  }

  keep := make([]uuid.UUID, 0, len(order))
  for _, name := range order {
    exp, err := as.findOrCreateExperience(ctx, tx, name)
    if err != nil {
      return fmt.Errorf("resolve experience %q: %w", name, err)
    }
    join := types.AdversaryExperience{
      ID:           uuid.New(),
      AdversaryID:  adv.ID,
      ExperienceID: exp.ID,
      Bonus:        bonuses[name],
    }
    err = tx.WithContext(ctx).Clauses(clause.OnConflict{
      Columns:   []clause.Column{{Name: "adversary_id"}, {Name: "experience_id"}},
      DoUpdates: clause.Assignments(map[string]interface{}{"bonus": bonuses[name]}),
    }).Create(&join).Error
    if err != nil {
      return fmt.Errorf("upsert experience join %q: %w", name, err)
    }
    keep = append(keep, exp.ID)
  }

  stale := tx.WithContext(ctx).Where("adversary_id = ?", adv.ID)
  if len(keep) > 0 {
    stale = stale.Where("experience_id NOT IN ?", keep)
  }
  if err := stale.Delete(&types.AdversaryExperience{}).Error; err != nil {
    return fmt.Errorf("delete stale experience joins: %w", err)
  }
  return nil
}

func (as *adversaryService) findOrCreateExperience(ctx context.Context, tx *gorm.DB, name string) (*types.Experience, error) {
  lookup := func() (*types.Experience, error) {
    var found types.Experience
    if err := tx.WithContext(ctx).Where("name = ?", name).First(&found).Error; err != nil {
      return nil, err
    }
    return &found, nil
  }
  found, err := lookup()
  if err == nil {
    return found, nil
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, err
  }
  created := types.Experience{ID: uuid.New(), Name: name}
  if err := tx.WithContext(ctx).Create(&created).Error; err != nil {
    if dberr.IsUniqueViolation(err) {
      return lookup()
    }
    return nil, err
  }
  return &created, nil
}

// ---- scalar helpers ----

func defaultType(t types.AdversaryType) types.AdversaryType {
  if t == "" {
    return types.AdversaryTypeUnspecified
  }
  return t
}

func defaultStatus(s types.AdversaryStatus) types.AdversaryStatus {
  if s == "" {
    return types.AdversaryStatusDraft
  }
  return s
}

func applyNullableString(field **string, v optional.Value[string]) {
  if v.IsUnset() {
    return
  }
  if val, ok := v.Get(); ok {
    *field = &val
  } else {
    *field = nil
  }
}

func applyNullableInt(field **int16, v optional.Value[int16]) {
  if v.IsUnset() {
    return
  }
  if val, ok := v.Get(); ok {
    *field = &val
  } else {
    *field = nil
  }
}
