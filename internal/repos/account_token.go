package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

type AccountTokenRepo interface {
  Create(ctx context.Context, tx *gorm.DB, token *types.AccountToken) error
  GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.AccountToken, error)
  GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.AccountToken, error)
  DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error
  DeleteExpired(ctx context.Context, tx *gorm.DB) error
}

type accountTokenRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAccountTokenRepo(db *gorm.DB, baseLog *logger.Logger) AccountTokenRepo {
  repoLog := baseLog.With("repo", "AccountTokenRepo")
  return &accountTokenRepo{db: db, log: repoLog}
}

func (tr *accountTokenRepo) resolve(tx *gorm.DB) *gorm.DB {
  if tx == nil {
    return tr.db
  }
  return tx
}

func (tr *accountTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.AccountToken) error {
  return tr.resolve(tx).WithContext(ctx).Create(token).Error
}

func (tr *accountTokenRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.AccountToken, error) {
  var token types.AccountToken
  if err := tr.resolve(tx).WithContext(ctx).Where("access_token = ?", accessToken).First(&token).Error; err != nil {
    return nil, err
  }
  return &token, nil
}

func (tr *accountTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.AccountToken, error) {
  var token types.AccountToken
  if err := tr.resolve(tx).WithContext(ctx).Where("refresh_token = ?", refreshToken).First(&token).Error; err != nil {
    return nil, err
  }
  return &token, nil
}

func (tr *accountTokenRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error {
  return tr.resolve(tx).WithContext(ctx).Where("account_id = ?", accountID).Delete(&types.AccountToken{}).Error
}

func (tr *accountTokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB) error {
  return tr.resolve(tx).WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&types.AccountToken{}).Error
}
