package db

import (
  "fmt"

  "gorm.io/driver/postgres"
  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/types"
  "github.com/a-beduc/dh-toolbox/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "dhtoolbox", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    TranslateError: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
  }

  return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  if err := Migrate(s.db); err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

// Migrate creates the schema plus the constraints gorm tags cannot
// express: case-insensitive uniqueness for the plain named sets.
// Shared with the sqlite-backed tests, so everything here must work
// on both dialects.
func Migrate(gdb *gorm.DB) error {
  err := gdb.AutoMigrate(
    &types.Account{},
    &types.AccountToken{},
    &types.DamageProfile{},
    &types.BasicAttack{},
    &types.Tactic{},
    &types.Tag{},
    &types.Feature{},
    &types.Experience{},
    &types.Adversary{},
    &types.AdversaryExperience{},
    &types.ImportRun{},
  )
  if err != nil {
    return err
  }
  for _, stmt := range []string{
    `CREATE UNIQUE INDEX IF NOT EXISTS idx_tactic_name_ci ON tactic (lower(name))`,
    `CREATE UNIQUE INDEX IF NOT EXISTS idx_tag_name_ci ON tag (lower(name))`,
  } {
    if err := gdb.Exec(stmt).Error; err != nil {
      return fmt.Errorf("failed to create expression index: %w", err)
    }
  }
  return nil
}
