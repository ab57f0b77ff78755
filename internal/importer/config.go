package importer

import (
  "fmt"
  "os"

  "gopkg.in/yaml.v3"
)

// Config drives one import run. The author must already exist; the
// importer never creates accounts.
type Config struct {
  AuthorUsername string `yaml:"author_username"`
  Source         string `yaml:"source"`
  Status         string `yaml:"status"`
  Parallelism    int    `yaml:"parallelism"`
}

func DefaultConfig() Config {
  return Config{
    Source:      "official",
    Status:      "PUB",
    Parallelism: 4,
  }
}

func LoadConfig(path string) (Config, error) {
  cfg := DefaultConfig()
  if path == "" {
    return cfg, nil
  }
  data, err := os.ReadFile(path)
  if err != nil {
    return cfg, fmt.Errorf("read config %s: %w", path, err)
  }
  if err := yaml.Unmarshal(data, &cfg); err != nil {
    return cfg, fmt.Errorf("parse config %s: %w", path, err)
  }
  if cfg.Parallelism < 1 {
    cfg.Parallelism = 1
  }
  return cfg, nil
}
