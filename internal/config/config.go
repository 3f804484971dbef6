package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable overriding the config path.
const EnvPath = "RPG_CONFIG"

// DefaultPath is used when EnvPath is unset.
const DefaultPath = "config/rpgserver.yaml"

// Storage backends for extended attributes.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Server holds all configuration for the rpg server.
type Server struct {
	Simulation Simulation `yaml:"simulation"`

	// Ability catalog (YAML)
	CatalogPath string `yaml:"catalog_path"`

	// Log level: debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// Storage backend: memory, postgres, redis
	Storage  string         `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
}

// Simulation holds tick loop and sweep tuning.
type Simulation struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Stagger      uint64        `yaml:"stagger"` // ticks between same-period jobs
	IngressSize  int           `yaml:"ingress_size"`

	Periods Periods `yaml:"periods"`

	ElectrocuteRadius   float64 `yaml:"electrocute_radius"`
	ElectrocuteDuration uint64  `yaml:"electrocute_duration"` // ticks

	ShieldDecayFlat    float64 `yaml:"shield_decay_flat"`
	ShieldDecayPercent float64 `yaml:"shield_decay_percent"`
}

// Periods are sweep job periods in ticks.
type Periods struct {
	DamageOverTime uint64 `yaml:"dot"`
	Interval       uint64 `yaml:"interval"`
	BelowHealth    uint64 `yaml:"below_health"`
	ShieldDecay    uint64 `yaml:"shield_decay"`
	HUD            uint64 `yaml:"hud"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"` // key prefix for attribute hashes
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		TickInterval: 50 * time.Millisecond,
		Stagger:      5,
		IngressSize:  1024,
		Periods: Periods{
			DamageOverTime: 20,
			Interval:       20,
			BelowHealth:    20,
			ShieldDecay:    40,
			HUD:            100,
		},
		ElectrocuteRadius:   3,
		ElectrocuteDuration: 60,
		ShieldDecayFlat:     1,
		ShieldDecayPercent:  0.05,
	}
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		Simulation:  DefaultSimulation(),
		CatalogPath: "config/items.yaml",
		LogLevel:    "info",
		Storage:     StorageMemory,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "rpgcore",
			Password: "rpgcore",
			DBName:   "rpgcore",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr:   "127.0.0.1:6379",
			Prefix: "rpg:attrs:",
		},
	}
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values the simulation cannot run with.
func (s Server) Validate() error {
	sim := s.Simulation
	if sim.TickInterval <= 0 {
		return fmt.Errorf("simulation.tick_interval must be positive")
	}
	if sim.IngressSize <= 0 {
		return fmt.Errorf("simulation.ingress_size must be positive")
	}
	p := sim.Periods
	if p.DamageOverTime == 0 || p.Interval == 0 || p.BelowHealth == 0 || p.ShieldDecay == 0 || p.HUD == 0 {
		return fmt.Errorf("simulation.periods must all be positive")
	}
	if sim.ElectrocuteRadius <= 0 || sim.ElectrocuteDuration == 0 {
		return fmt.Errorf("simulation electrocute radius and duration must be positive")
	}
	switch s.Storage {
	case StorageMemory, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("unknown storage backend %q", s.Storage)
	}
	return nil
}
