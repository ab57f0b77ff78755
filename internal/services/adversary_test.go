package services

import (
  "context"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/db"
  "github.com/a-beduc/dh-toolbox/internal/dberr"
  "github.com/a-beduc/dh-toolbox/internal/dto"
  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/optional"
  "github.com/a-beduc/dh-toolbox/internal/repos"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  gdb, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{
    TranslateError: true,
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  sqlDB, err := gdb.DB()
  if err != nil {
    t.Fatalf("unwrap sql.DB: %v", err)
  }
  // the in-memory database lives per connection
  sqlDB.SetMaxOpenConns(1)
  if err := db.Migrate(gdb); err != nil {
    t.Fatalf("migrate: %v", err)
  }
  return gdb
}

func newTestService(t *testing.T) (AdversaryService, *gorm.DB, uuid.UUID) {
  t.Helper()
  gdb := newTestDB(t)
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  author := types.Account{
    ID:       uuid.New(),
    Username: "gm",
    Email:    "gm@example.com",
    Password: "hash",
  }
  if err := gdb.Create(&author).Error; err != nil {
    t.Fatalf("create author: %v", err)
  }
  svc := NewAdversaryService(gdb, log, repos.NewAdversaryRepo(gdb, log))
  return svc, gdb, author.ID
}

func int16ptr(v int16) *int16 { return &v }

func strptr(s string) *string { return &s }

func fullInput() *dto.AdversaryInput {
  return &dto.AdversaryInput{
    Name:            "acid burrower",
    Tier:            types.TierOne,
    Type:            types.AdversaryTypeSolo,
    Status:          types.AdversaryStatusDraft,
    Description:     strptr("A horse-sized insect."),
    Difficulty:      int16ptr(14),
    ThresholdMajor:  int16ptr(8),
    ThresholdSevere: int16ptr(15),
    HitPoint:        int16ptr(8),
    StressPoint:     int16ptr(3),
    AtkBonus:        int16ptr(3),
    BasicAttack: &dto.BasicAttackInput{
      Name:  "claws",
      Range: types.AttackRangeVeryClose,
      Damage: &dto.DamageInput{
        DiceNumber: 1,
        DiceType:   12,
        Bonus:      2,
        DamageType: types.DamageTypePhysical,
      },
    },
    Tactics:     []string{"burrow", "drag away"},
    Tags:        []string{"beast"},
    Experiences: []dto.ExperienceInput{{Name: "tracker", Bonus: 2}},
    Features: []dto.FeatureInput{
      {Name: "relentless", Type: types.FeatureTypePassive, Description: "Spotlight three times."},
    },
  }
}

func countRows(t *testing.T, gdb *gorm.DB, model any) int64 {
  t.Helper()
  var n int64
  if err := gdb.Model(model).Count(&n).Error; err != nil {
    t.Fatalf("count: %v", err)
  }
  return n
}

func TestCreatePersistsFullAggregate(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  adv, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  if adv.Name != "acid burrower" || adv.Tier != types.TierOne {
    t.Fatalf("unexpected aggregate: %+v", adv)
  }
  if adv.BasicAttack == nil || adv.BasicAttack.Name != "claws" {
    t.Fatalf("attack not persisted: %+v", adv.BasicAttack)
  }
  if adv.BasicAttack.Damage == nil || adv.BasicAttack.Damage.DiceType != 12 {
    t.Fatalf("damage not persisted: %+v", adv.BasicAttack.Damage)
  }
  if len(adv.Tactics) != 2 || len(adv.Tags) != 1 || len(adv.Features) != 1 {
    t.Fatalf("memberships not persisted: %d/%d/%d", len(adv.Tactics), len(adv.Tags), len(adv.Features))
  }
  if len(adv.Experiences) != 1 || adv.Experiences[0].Bonus != 2 ||
    adv.Experiences[0].Experience == nil || adv.Experiences[0].Experience.Name != "tracker" {
    t.Fatalf("experience join not persisted: %+v", adv.Experiences)
  }
  if adv.Author == nil || adv.Author.ID != authorID {
    t.Fatalf("author not loaded: %+v", adv.Author)
  }
}

func TestCreateRequiresAuthorAndName(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  if _, err := svc.Create(ctx, uuid.Nil, fullInput()); err != ErrMissingAuthor {
    t.Fatalf("expected ErrMissingAuthor, got %v", err)
  }
  in := fullInput()
  in.Name = "   "
  if _, err := svc.Create(ctx, authorID, in); err != ErrNameRequired {
    t.Fatalf("expected ErrNameRequired, got %v", err)
  }
}

func TestCreateDuplicateNameSameAuthorConflicts(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  if _, err := svc.Create(ctx, authorID, fullInput()); err != nil {
    t.Fatalf("create: %v", err)
  }
  _, err := svc.Create(ctx, authorID, fullInput())
  if err == nil || !dberr.IsUniqueViolation(err) {
    t.Fatalf("expected unique violation, got %v", err)
  }
}

func TestValueObjectsAreShared(t *testing.T) {
  svc, gdb, authorID := newTestService(t)
  ctx := context.Background()

  if _, err := svc.Create(ctx, authorID, fullInput()); err != nil {
    t.Fatalf("create first: %v", err)
  }
  second := fullInput()
  second.Name = "acid burrower elder"
  if _, err := svc.Create(ctx, authorID, second); err != nil {
    t.Fatalf("create second: %v", err)
  }
  if n := countRows(t, gdb, &types.DamageProfile{}); n != 1 {
    t.Fatalf("expected 1 shared damage profile, got %d", n)
  }
  if n := countRows(t, gdb, &types.BasicAttack{}); n != 1 {
    t.Fatalf("expected 1 shared basic attack, got %d", n)
  }
}

func TestCreateRejectsInvalidDamageShape(t *testing.T) {
  svc, gdb, authorID := newTestService(t)
  ctx := context.Background()

  in := fullInput()
  in.BasicAttack.Damage = &dto.DamageInput{DiceNumber: 1, DiceType: 0}
  if _, err := svc.Create(ctx, authorID, in); err != ErrInvalidDamage {
    t.Fatalf("expected ErrInvalidDamage, got %v", err)
  }
  if n := countRows(t, gdb, &types.Adversary{}); n != 0 {
    t.Fatalf("failed create must not persist the aggregate, found %d rows", n)
  }
}

func TestCreateRollsBackOnSyncFailure(t *testing.T) {
  svc, gdb, authorID := newTestService(t)
  ctx := context.Background()

  in := fullInput()
  in.Tactics = []string{"burrow", "burrow"}
  if _, err := svc.Create(ctx, authorID, in); err == nil {
    t.Fatalf("duplicate payload tactics should fail")
  }
  if n := countRows(t, gdb, &types.Adversary{}); n != 0 {
    t.Fatalf("expected rollback, found %d adversaries", n)
  }
  if n := countRows(t, gdb, &types.Tactic{}); n != 0 {
    t.Fatalf("expected tactic creation rolled back, found %d", n)
  }
}

func TestNamedSetCaseCollisionConflicts(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  if _, err := svc.Create(ctx, authorID, fullInput()); err != nil {
    t.Fatalf("create: %v", err)
  }
  second := fullInput()
  second.Name = "second"
  second.Tactics = []string{"Burrow"}
  _, err := svc.Create(ctx, authorID, second)
  if err == nil || !dberr.IsUniqueViolation(err) {
    t.Fatalf("case collision should surface as conflict, got %v", err)
  }
}

func TestPutOmissionResetsToDefaults(t *testing.T) {
  svc, gdb, authorID := newTestService(t)
  ctx := context.Background()

  created, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  updated, err := svc.Put(ctx, created.ID, &dto.AdversaryInput{Name: "acid burrower"})
  if err != nil {
    t.Fatalf("put: %v", err)
  }
  if updated.Tier != types.TierUnspecified || updated.Type != types.AdversaryTypeUnspecified {
    t.Fatalf("omitted enums should reset: tier=%d type=%q", updated.Tier, updated.Type)
  }
  if updated.Status != types.AdversaryStatusDraft {
    t.Fatalf("omitted status should reset to draft, got %q", updated.Status)
  }
  if updated.Description != nil || updated.Difficulty != nil || updated.AtkBonus != nil {
    t.Fatalf("omitted scalars should clear: %+v", updated)
  }
  if updated.BasicAttackID != nil {
    t.Fatalf("omitted attack should detach")
  }
  if len(updated.Tactics) != 0 || len(updated.Tags) != 0 ||
    len(updated.Features) != 0 || len(updated.Experiences) != 0 {
    t.Fatalf("omitted collections should clear: %+v", updated)
  }
  // membership cleared, backing rows kept
  if n := countRows(t, gdb, &types.Tactic{}); n != 2 {
    t.Fatalf("tactic rows must survive, got %d", n)
  }
  if n := countRows(t, gdb, &types.Experience{}); n != 1 {
    t.Fatalf("experience rows must survive, got %d", n)
  }
  if n := countRows(t, gdb, &types.AdversaryExperience{}); n != 0 {
    t.Fatalf("joins should be deleted, got %d", n)
  }
}

func TestPutIsIdempotent(t *testing.T) {
  svc, gdb, authorID := newTestService(t)
  ctx := context.Background()

  created, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  for i := 0; i < 2; i++ {
    if _, err := svc.Put(ctx, created.ID, fullInput()); err != nil {
      t.Fatalf("put #%d: %v", i+1, err)
    }
  }
  if n := countRows(t, gdb, &types.Tactic{}); n != 2 {
    t.Fatalf("expected 2 tactic rows, got %d", n)
  }
  if n := countRows(t, gdb, &types.AdversaryExperience{}); n != 1 {
    t.Fatalf("expected 1 join, got %d", n)
  }
  if n := countRows(t, gdb, &types.DamageProfile{}); n != 1 {
    t.Fatalf("expected 1 damage profile, got %d", n)
  }
}

func TestPatchOmissionLeavesUntouched(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  created, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  patched, err := svc.Patch(ctx, created.ID, &dto.AdversaryPatch{
    Difficulty: optional.Of(int16(17)),
  })
  if err != nil {
    t.Fatalf("patch: %v", err)
  }
  if patched.Difficulty == nil || *patched.Difficulty != 17 {
    t.Fatalf("patched field not applied: %v", patched.Difficulty)
  }
  if patched.Name != created.Name || patched.Tier != created.Tier {
    t.Fatalf("untouched scalars changed")
  }
  if patched.Description == nil || len(patched.Tactics) != 2 ||
    len(patched.Experiences) != 1 || patched.BasicAttackID == nil {
    t.Fatalf("untouched fields changed: %+v", patched)
  }
}

func TestPatchAllUnsetIsNoop(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  created, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  patched, err := svc.Patch(ctx, created.ID, &dto.AdversaryPatch{})
  if err != nil {
    t.Fatalf("patch: %v", err)
  }
  if patched.Name != created.Name || patched.Status != created.Status ||
    len(patched.Tactics) != len(created.Tactics) ||
    len(patched.Experiences) != len(created.Experiences) {
    t.Fatalf("empty patch must not change anything")
  }
}

func TestPatchNullClears(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  created, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  patched, err := svc.Patch(ctx, created.ID, &dto.AdversaryPatch{
    Description: optional.Null[string](),
    Difficulty:  optional.Null[int16](),
    Tier:        optional.Null[types.Tier](),
    BasicAttack: optional.Null[dto.BasicAttackPatch](),
    Tactics:     optional.Null[[]string](),
    Experiences: optional.Null[[]dto.ExperienceInput](),
  })
  if err != nil {
    t.Fatalf("patch: %v", err)
  }
  if patched.Description != nil || patched.Difficulty != nil {
    t.Fatalf("nullable scalars should go to NULL")
  }
  if patched.Tier != types.TierUnspecified {
    t.Fatalf("null tier should reset to unspecified, got %d", patched.Tier)
  }
  if patched.BasicAttackID != nil {
    t.Fatalf("null attack should detach")
  }
  if len(patched.Tactics) != 0 || len(patched.Experiences) != 0 {
    t.Fatalf("null collections should clear")
  }
  // untouched relations stay
  if len(patched.Tags) != 1 || len(patched.Features) != 1 {
    t.Fatalf("untouched collections changed")
  }
}

func TestPatchNullNameRejected(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  created, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  if _, err := svc.Patch(ctx, created.ID, &dto.AdversaryPatch{
    Name: optional.Null[string](),
  }); err != ErrNameRequired {
    t.Fatalf("expected ErrNameRequired, got %v", err)
  }
}

func TestPatchAttackOverlayFindsOrCreatesNewTuple(t *testing.T) {
  svc, gdb, authorID := newTestService(t)
  ctx := context.Background()

  created, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  // bump only the damage bonus; name, range and dice stay
  patched, err := svc.Patch(ctx, created.ID, &dto.AdversaryPatch{
    BasicAttack: optional.Of(dto.BasicAttackPatch{
      Damage: optional.Of(dto.DamagePatch{
        Bonus: optional.Of(int16(4)),
      }),
    }),
  })
  if err != nil {
    t.Fatalf("patch: %v", err)
  }
  if patched.BasicAttack == nil || patched.BasicAttack.Name != "claws" ||
    patched.BasicAttack.Range != types.AttackRangeVeryClose {
    t.Fatalf("overlay lost attack fields: %+v", patched.BasicAttack)
  }
  if patched.BasicAttack.Damage == nil || patched.BasicAttack.Damage.Bonus != 4 ||
    patched.BasicAttack.Damage.DiceNumber != 1 || patched.BasicAttack.Damage.DiceType != 12 {
    t.Fatalf("overlay lost damage fields: %+v", patched.BasicAttack.Damage)
  }
  // old tuple still exists, new one was created alongside
  if n := countRows(t, gdb, &types.DamageProfile{}); n != 2 {
    t.Fatalf("expected 2 damage profiles, got %d", n)
  }
  if n := countRows(t, gdb, &types.BasicAttack{}); n != 2 {
    t.Fatalf("expected 2 basic attacks, got %d", n)
  }
}

func TestPatchExperienceUpsertMatrix(t *testing.T) {
  svc, gdb, authorID := newTestService(t)
  ctx := context.Background()

  in := fullInput()
  in.Experiences = []dto.ExperienceInput{
    {Name: "burrow", Bonus: 2},
    {Name: "flank", Bonus: 1},
  }
  created, err := svc.Create(ctx, authorID, in)
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  patched, err := svc.Patch(ctx, created.ID, &dto.AdversaryPatch{
    Experiences: optional.Of([]dto.ExperienceInput{
      {Name: "burrow", Bonus: 3},
      {Name: "face", Bonus: 0},
    }),
  })
  if err != nil {
    t.Fatalf("patch: %v", err)
  }
  got := map[string]int16{}
  for _, e := range patched.Experiences {
    got[e.Experience.Name] = e.Bonus
  }
  if len(got) != 2 || got["burrow"] != 3 || got["face"] != 0 {
    t.Fatalf("unexpected joins: %v", got)
  }
  // the dropped name keeps its backing row
  if n := countRows(t, gdb, &types.Experience{}); n != 3 {
    t.Fatalf("expected 3 experience rows, got %d", n)
  }
}

func TestSyncExperiencesDuplicateNamesLastBonusWins(t *testing.T) {
  svc, _, authorID := newTestService(t)
  ctx := context.Background()

  in := fullInput()
  in.Experiences = []dto.ExperienceInput{
    {Name: "burrow", Bonus: 1},
    {Name: "burrow", Bonus: 5},
  }
  created, err := svc.Create(ctx, authorID, in)
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  if len(created.Experiences) != 1 || created.Experiences[0].Bonus != 5 {
    t.Fatalf("expected a single join with the last bonus, got %+v", created.Experiences)
  }
}

func TestDeleteKeepsSharedRows(t *testing.T) {
  svc, gdb, authorID := newTestService(t)
  ctx := context.Background()

  created, err := svc.Create(ctx, authorID, fullInput())
  if err != nil {
    t.Fatalf("create: %v", err)
  }
  if err := svc.Delete(ctx, created.ID); err != nil {
    t.Fatalf("delete: %v", err)
  }
  if n := countRows(t, gdb, &types.Adversary{}); n != 0 {
    t.Fatalf("adversary should be gone, got %d", n)
  }
  if n := countRows(t, gdb, &types.AdversaryExperience{}); n != 0 {
    t.Fatalf("joins should be gone, got %d", n)
  }
  if n := countRows(t, gdb, &types.Experience{}); n != 1 {
    t.Fatalf("experience rows should survive, got %d", n)
  }
  if n := countRows(t, gdb, &types.BasicAttack{}); n != 1 {
    t.Fatalf("attack value object should survive, got %d", n)
  }
  if err := svc.Delete(ctx, created.ID); err == nil {
    t.Fatalf("second delete should report not found")
  }
}
