package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no --config flag is given.
const DefaultFile = "shopscore.yaml"

type Config struct {
	ProductsFile string      `yaml:"products_file"`
	BoardFile    string      `yaml:"board_file"`
	BackupDir    string      `yaml:"backup_dir"`
	LogFile      string      `yaml:"log_file"`
	LogLevel     string      `yaml:"log_level"`
	Mongo        MongoConfig `yaml:"mongo"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

func Default() *Config {
	return &Config{
		ProductsFile: "products.json",
		BoardFile:    "board.json",
		BackupDir:    "./backups",
		LogFile:      "shopscore.log",
		LogLevel:     "info",
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "shopscore",
			Collection: "products",
		},
	}
}

// Load starts from defaults, overlays the YAML file at path if it exists, then applies
// environment overrides. An explicitly named file that is missing is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	overrides := []struct {
		key    string
		target *string
	}{
		{"SHOPSCORE_PRODUCTS_FILE", &c.ProductsFile},
		{"SHOPSCORE_BOARD_FILE", &c.BoardFile},
		{"SHOPSCORE_BACKUP_DIR", &c.BackupDir},
		{"SHOPSCORE_LOG_FILE", &c.LogFile},
		{"SHOPSCORE_LOG_LEVEL", &c.LogLevel},
		{"DB_URI", &c.Mongo.URI},
		{"DB_NAME", &c.Mongo.Database},
		{"DB_COLLECTION", &c.Mongo.Collection},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.target = v
		}
	}
}
