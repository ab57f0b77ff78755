package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

type AccountRepo interface {
  Create(ctx context.Context, tx *gorm.DB, account *types.Account) error
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Account, error)
  GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.Account, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Account, error)
}

type accountRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
  repoLog := baseLog.With("repo", "AccountRepo")
  return &accountRepo{db: db, log: repoLog}
}

func (ar *accountRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx == nil {
    return ar.db
  }
  return tx
}

func (ar *accountRepo) Create(ctx context.Context, tx *gorm.DB, account *types.Account) error {
  return ar.resolve(tx).WithContext(ctx).Create(account).Error
}

func (ar *accountRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Account, error) {
  var account types.Account
  if err := ar.resolve(tx).WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
    return nil, err
  }
  return &account, nil
}

func (ar *accountRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*types.Account, error) {
  var account types.Account
  if err := ar.resolve(tx).WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
    return nil, err
  }
  return &account, nil
}

func (ar *accountRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Account, error) {
  var account types.Account
  if err := ar.resolve(tx).WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
    return nil, err
  }
  return &account, nil
}
