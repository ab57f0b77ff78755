package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

type ImportRunRepo interface {
  Create(ctx context.Context, tx *gorm.DB, run *types.ImportRun) error
  Update(ctx context.Context, tx *gorm.DB, run *types.ImportRun) error
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ImportRun, error)
}

type importRunRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewImportRunRepo(db *gorm.DB, baseLog *logger.Logger) ImportRunRepo {
  repoLog := baseLog.With("repo", "ImportRunRepo")
  return &importRunRepo{db: db, log: repoLog}
}

func (ir *importRunRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx == nil {
    return ir.db
  }
  return tx
}

func (ir *importRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.ImportRun) error {
  return ir.resolve(tx).WithContext(ctx).Create(run).Error
}

func (ir *importRunRepo) Update(ctx context.Context, tx *gorm.DB, run *types.ImportRun) error {
  return ir.resolve(tx).WithContext(ctx).Save(run).Error
}

func (ir *importRunRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ImportRun, error) {
  var run types.ImportRun
  if err := ir.resolve(tx).WithContext(ctx).Where("id = ?", id).First(&run).Error; err != nil {
    return nil, err
  }
  return &run, nil
}
