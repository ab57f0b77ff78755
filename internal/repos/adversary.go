package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

type AdversaryRepo interface {
  // GetByID loads the aggregate with every relation materialized.
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Adversary, error)
  // GetForUpdate loads the bare aggregate row, locked for the
  // duration of tx on engines that support row locks.
  GetForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Adversary, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Adversary, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type adversaryRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAdversaryRepo(db *gorm.DB, baseLog *logger.Logger) AdversaryRepo {
  repoLog := baseLog.With("repo", "AdversaryRepo")
  return &adversaryRepo{db: db, log: repoLog}
}

func (ar *adversaryRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx == nil {
    return ar.db
  }
  return tx
}

func withRelations(q *gorm.DB) *gorm.DB {
  return q.
    Preload("Author").
    Preload("BasicAttack.Damage").
    Preload("Tactics").
    Preload("Tags").
    Preload("Features").
    Preload("Experiences.Experience")
}

func (ar *adversaryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Adversary, error) {
  var adv types.Adversary
  q := withRelations(ar.resolve(tx).WithContext(ctx))
  if err := q.Where("id = ?", id).First(&adv).Error; err != nil {
    return nil, err
  }
  return &adv, nil
}

func (ar *adversaryRepo) GetForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Adversary, error) {
  transaction := ar.resolve(tx)
  q := transaction.WithContext(ctx)
  // sqlite has no FOR UPDATE; its writer lock covers the tests
  if transaction.Dialector.Name() == "postgres" {
    q = q.Clauses(clause.Locking{Strength: "UPDATE"})
  }
  var adv types.Adversary
  if err := q.Where("id = ?", id).First(&adv).Error; err != nil {
    return nil, err
  }
  return &adv, nil
}

func (ar *adversaryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Adversary, error) {
  var results []*types.Adversary
  q := withRelations(ar.resolve(tx).WithContext(ctx))
  if err := q.Order("created_at").Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *adversaryRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := ar.resolve(tx)
  return transaction.WithContext(ctx).Transaction(func(txx *gorm.DB) error {
    if err := txx.Where("adversary_id = ?", id).Delete(&types.AdversaryExperience{}).Error; err != nil {
      return err
    }
    adv := types.Adversary{ID: id}
    for _, assoc := range []string{"Tactics", "Tags", "Features"} {
      if err := txx.Model(&adv).Association(assoc).Clear(); err != nil {
        return err
      }
    }
    return txx.Delete(&adv).Error
  })
}
