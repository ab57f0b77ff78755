package importer

import (
  "context"
  "os"
  "path/filepath"
  "strings"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"

  "github.com/a-beduc/dh-toolbox/internal/db"
  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/repos"
  "github.com/a-beduc/dh-toolbox/internal/services"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

func newLoaderHarness(t *testing.T) (*Loader, repos.ImportRunRepo, *gorm.DB) {
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
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  author := types.Account{
    ID:       uuid.New(),
    Username: "importer",
    Email:    "importer@example.com",
    Password: "hash",
  }
  if err := gdb.Create(&author).Error; err != nil {
    t.Fatalf("create author: %v", err)
  }
  accountRepo := repos.NewAccountRepo(gdb, log)
  importRunRepo := repos.NewImportRunRepo(gdb, log)
  adversaryRepo := repos.NewAdversaryRepo(gdb, log)
  adversaryService := services.NewAdversaryService(gdb, log, adversaryRepo)
  loader := NewLoader(log, adversaryService, accountRepo, importRunRepo)
  return loader, importRunRepo, gdb
}

func TestLoaderRunRecordsImportRun(t *testing.T) {
  loader, runRepo, gdb := newLoaderHarness(t)

  header := strings.Join([]string{
    "Name", "Tier", "Type", "Horde HP", "Description", "Tactics",
    "Difficulty", "Thresholds", "HP", "Stress", "ATK", "Attack",
    "Range", "Damage", "Experience", "Features",
  }, "\t")
  good := strings.Join([]string{
    "Acid Burrower", "Tier 1", "Solo", "", "A horse-sized insect.",
    "Burrow, drag away", "14", "8/15", "8", "3", "+3", "Claws",
    "Very Close", "1d12+2 phy", "Tracker +2",
    "Relentless (3) - Passive: Spotlight three times.",
  }, "\t")
  bad := strings.Join([]string{
    "Broken Row", "Tier 1", "Solo", "", "", "", "not-a-number", "8/15",
    "8", "3", "+3", "Claws", "Very Close", "1d12 phy", "", "",
  }, "\t")

  path := filepath.Join(t.TempDir(), "adversaries.tsv")
  content := header + "\n" + good + "\n" + bad + "\n"
  if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
    t.Fatalf("write fixture: %v", err)
  }

  // zero-value config must not wedge the worker group
  run, err := loader.Run(context.Background(), path, Config{AuthorUsername: "importer"})
  if err != nil {
    t.Fatalf("Run: %v", err)
  }
  if run.Created != 1 || run.Failed != 1 {
    t.Fatalf("unexpected counts: created=%d failed=%d", run.Created, run.Failed)
  }
  if len(run.Warnings) == 0 {
    t.Fatalf("expected recorded warnings for the broken row")
  }

  stored, err := runRepo.GetByID(context.Background(), nil, run.ID)
  if err != nil {
    t.Fatalf("reload run: %v", err)
  }
  if stored.Created != run.Created || stored.Failed != run.Failed {
    t.Fatalf("persisted counts diverge: %+v", stored)
  }
  if stored.Filename != "adversaries.tsv" {
    t.Fatalf("unexpected filename: %q", stored.Filename)
  }

  var advCount int64
  if err := gdb.Model(&types.Adversary{}).Count(&advCount).Error; err != nil {
    t.Fatalf("count adversaries: %v", err)
  }
  if advCount != 1 {
    t.Fatalf("exactly the good row should load, got %d", advCount)
  }
}
