package importer

import (
  "context"
  "encoding/json"
  "fmt"
  "path/filepath"
  "sync"

  "golang.org/x/sync/errgroup"

  "github.com/a-beduc/dh-toolbox/internal/logger"
  "github.com/a-beduc/dh-toolbox/internal/normalize"
  "github.com/a-beduc/dh-toolbox/internal/repos"
  "github.com/a-beduc/dh-toolbox/internal/services"
  "github.com/a-beduc/dh-toolbox/internal/types"
)

type Loader struct {
  log              *logger.Logger
  adversaryService services.AdversaryService
  accountRepo      repos.AccountRepo
  importRunRepo    repos.ImportRunRepo
}

func NewLoader(
  baseLog *logger.Logger,
  adversaryService services.AdversaryService,
  accountRepo repos.AccountRepo,
  importRunRepo repos.ImportRunRepo,
) *Loader {
  loaderLog := baseLog.With("component", "Loader")
  return &Loader{
    log:              loaderLog,
    adversaryService: adversaryService,
    accountRepo:      accountRepo,
    importRunRepo:    importRunRepo,
  }
}

// Run parses the TSV at path and loads every well-formed row through
// the adversary service. Row failures become warnings on the recorded
// ImportRun; only setup failures abort the run.
func (l *Loader) Run(ctx context.Context, path string, cfg Config) (*types.ImportRun, error) {
  author, err := l.accountRepo.GetByUsername(ctx, nil, cfg.AuthorUsername)
  if err != nil {
    return nil, fmt.Errorf("load author %q: %w", cfg.AuthorUsername, err)
  }
  status, err := normalize.Status(cfg.Status)
  if err != nil {
    return nil, err
  }

  rows, warnings, err := ParseFile(path)
  if err != nil {
    return nil, err
  }

  // The run row exists while the load is in flight; counts land on it
  // once the group drains.
  run := &types.ImportRun{
    AuthorID: author.ID,
    Filename: filepath.Base(path),
  }
  if err := l.importRunRepo.Create(ctx, nil, run); err != nil {
    return nil, fmt.Errorf("record import run: %w", err)
  }

  var mu sync.Mutex
  created := 0

  limit := cfg.Parallelism
  if limit < 1 {
    limit = 1
  }
  g, gctx := errgroup.WithContext(ctx)
  g.SetLimit(limit)
  for _, row := range rows {
    g.Go(func() error {
      in := row.Input
      in.Status = status
      if cfg.Source != "" {
        source := cfg.Source
        in.Source = &source
      }
      _, err := l.adversaryService.Create(gctx, author.ID, in)
      mu.Lock()
      defer mu.Unlock()
      if err != nil {
        warnings = append(warnings, fmt.Sprintf("line %d: %v", row.Line, err))
        l.log.Warn("row rejected", "line", row.Line, "error", err)
        return nil
      }
      created++
      return nil
    })
  }
  if err := g.Wait(); err != nil {
    return nil, err
  }

  run.Created = created
  run.Failed = len(warnings)
  if len(warnings) > 0 {
    data, err := json.Marshal(warnings)
    if err != nil {
      return nil, fmt.Errorf("encode warnings: %w", err)
    }
    run.Warnings = data
  }
  if err := l.importRunRepo.Update(ctx, nil, run); err != nil {
    return nil, fmt.Errorf("finalize import run: %w", err)
  }
  l.log.Info("import finished", "file", run.Filename, "created", created, "warnings", len(warnings))
  return run, nil
}
