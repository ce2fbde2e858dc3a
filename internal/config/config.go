package config

import (
	"fmt"
	"os"

	"baralho-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Supported backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config provides configuration for the baralho server
type Config struct {
	loaded bool

	// Backend selects where room state lives: "memory" keeps all rooms in
	// process and broadcasts over sockets, "postgres" delegates state and
	// fan-out to the document store
	Backend string `yaml:"backend" envconfig:"backend"`

	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`

	// CatalogPath optionally points at a YAML card catalog; the built-in
	// deck is used when empty
	CatalogPath string `yaml:"catalogPath" envconfig:"catalog_path"`

	// CodeAttempts bounds the retries when allocating a room code against
	// the shared store
	CodeAttempts int `yaml:"codeAttempts" envconfig:"code_attempts"`

	Log struct {
		Level             string `yaml:"level" envconfig:"log_level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() Config {
	return Config{
		Backend:        BackendMemory,
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "./sql",
		CodeAttempts:   10,
	}
}

// Load will load the configuration
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("BARALHO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		err = yaml.NewDecoder(file).Decode(&config)
		_ = file.Close()
		if err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("baralho", &config); err != nil {
		return err
	}

	switch config.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unknown backend %q", config.Backend)
	}

	config.loaded = true
	return nil
}
