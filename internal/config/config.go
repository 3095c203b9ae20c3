package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Network    NetworkConfig    `toml:"network"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	ID        int    `toml:"id"`
	StartTime int64  // set at boot, not from config
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty disables the event journal
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type NetworkConfig struct {
	BindAddress  string        `toml:"bind_address"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

type SimulationConfig struct {
	TickRate   time.Duration `toml:"tick_rate"`
	RoomSeeds  string        `toml:"room_seeds"`
	ScriptsDir string        `toml:"scripts_dir"`
	IdleAfter  time.Duration `toml:"idle_after"` // 0 disables the idle sweep
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "Vivarium",
			ID:   1,
		},
		Database: DatabaseConfig{
			DSN:             "", // journal off unless configured
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Network: NetworkConfig{
			BindAddress:  "0.0.0.0:7410",
			WriteTimeout: 10 * time.Second,
		},
		Simulation: SimulationConfig{
			TickRate:   200 * time.Millisecond,
			RoomSeeds:  "data/yaml/room_list.yaml",
			ScriptsDir: "scripts",
			IdleAfter:  5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
