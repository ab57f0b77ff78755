package main

import (
  "context"
  "flag"
  "fmt"
  "os"

  "github.com/a-beduc/dh-toolbox/internal/db"
  "github.com/a-beduc/dh-toolbox/internal/importer"
  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/repos"
  "github.com/a-beduc/dh-toolbox/internal/services"
)

func main() {
  var (
    configPath = flag.String("config", "", "path to the importer yaml config")
    author     = flag.String("author", "", "username owning the imported rows (overrides config)")
  )
  flag.Parse()
  if flag.NArg() != 1 {
    fmt.Fprintf(os.Stderr, "usage: %s [flags] <file.tsv>\n", os.Args[0])
    flag.PrintDefaults()
    os.Exit(2)
  }
  tsvPath := flag.Arg(0)

  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  cfg, err := importer.LoadConfig(*configPath)
  if err != nil {
    log.Fatal("Config load failed", "error", err)
  }
  if *author != "" {
    cfg.AuthorUsername = *author
  }
  if cfg.AuthorUsername == "" {
    log.Fatal("No author configured, pass -author or set author_username in the config")
  }

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres migration failed", "error", err)
  }
  thePG := postgresService.DB()

  accountRepo := repos.NewAccountRepo(thePG, log)
  importRunRepo := repos.NewImportRunRepo(thePG, log)
  adversaryRepo := repos.NewAdversaryRepo(thePG, log)
  adversaryService := services.NewAdversaryService(thePG, log, adversaryRepo)

  loader := importer.NewLoader(log, adversaryService, accountRepo, importRunRepo)
  run, err := loader.Run(context.Background(), tsvPath, cfg)
  if err != nil {
    log.Fatal("Import failed", "error", err)
  }
  log.Info("Import run recorded", "id", run.ID, "created", run.Created, "failed", run.Failed)
}
