package services

import (
  "context"

  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/normalize"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

type LookupService interface {
  // ExperienceNames returns every known experience name, ordered.
  ExperienceNames(ctx context.Context) ([]string, error)
  // Choices returns the canonical codes per enum field.
  Choices() map[string][]string
}

type lookupService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLookupService(db *gorm.DB, baseLog *logger.Logger) LookupService {
  serviceLog := baseLog.With("service", "LookupService")
  return &lookupService{db: db, log: serviceLog}
}

func (ls *lookupService) ExperienceNames(ctx context.Context) ([]string, error) {
  var names []string
  err := ls.db.WithContext(ctx).
    Model(&types.Experience{}).
    Order("name").
    Pluck("name", &names).Error
  if err != nil {
    return nil, err
  }
  return names, nil
}

func (ls *lookupService) Choices() map[string][]string {
  return normalize.Choices()
}
