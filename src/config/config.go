package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	MaxCapacity        = 2
	ProgressStep       = 0.05
	DwellTicks         = 50
	EntryCooldownTicks = 10

	NumCars         = 3
	NumFloors       = 4
	CarTickInterval = 20 * time.Millisecond
	TickInterval    = 100 * time.Millisecond
	MinTickInterval = 10 * time.Millisecond
	MaxTickInterval = 2 * time.Second
	SpawnChance     = 0.05
	LogFile         = "elevsim.log"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the tunables of one simulation instance.
type Config struct {
	NumCars         int           `yaml:"num_cars"`
	NumFloors       int           `yaml:"num_floors"`
	TickInterval    time.Duration `yaml:"tick_interval"`
	CarTickInterval time.Duration `yaml:"car_tick_interval"`
	SpawnChance     float64       `yaml:"spawn_chance"`
	Seed            int64         `yaml:"seed"`
	LogFile         string        `yaml:"log_file"`
	Debug           bool          `yaml:"debug"`
}

func Default() Config {
	return Config{
		NumCars:         NumCars,
		NumFloors:       NumFloors,
		TickInterval:    TickInterval,
		CarTickInterval: CarTickInterval,
		SpawnChance:     SpawnChance,
		Seed:            time.Now().UnixNano(),
		LogFile:         LogFile,
	}
}

// Load starts from Default, applies the YAML file at path and then the .env file at envPath.
// Empty or missing paths are skipped.
func Load(path, envPath string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if envPath != "" {
		if err := loadEnv(envPath, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func loadYAML(path string, cfg *Config) error {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func loadEnv(path string, cfg *Config) error {
	envFile, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read env %s: %w", path, err)
	}
	return applyEnv(envFile, cfg)
}

func applyEnv(env map[string]string, cfg *Config) error {
	var err error
	for key, value := range env {
		switch key {
		case "ELEVSIM_CARS":
			cfg.NumCars, err = strconv.Atoi(value)
		case "ELEVSIM_FLOORS":
			cfg.NumFloors, err = strconv.Atoi(value)
		case "ELEVSIM_TICK":
			cfg.TickInterval, err = time.ParseDuration(value)
		case "ELEVSIM_CAR_TICK":
			cfg.CarTickInterval, err = time.ParseDuration(value)
		case "ELEVSIM_SPAWN_CHANCE":
			cfg.SpawnChance, err = strconv.ParseFloat(value, 64)
		case "ELEVSIM_SEED":
			cfg.Seed, err = strconv.ParseInt(value, 10, 64)
		case "ELEVSIM_LOG_FILE":
			cfg.LogFile = value
		case "ELEVSIM_DEBUG":
			cfg.Debug, err = strconv.ParseBool(value)
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
		}
	}
	return nil
}

func (cfg Config) Validate() error {
	switch {
	case cfg.NumCars < 1:
		return fmt.Errorf("%w: num_cars must be at least 1, got %d", ErrInvalidConfig, cfg.NumCars)
	case cfg.NumFloors < 2:
		return fmt.Errorf("%w: num_floors must be at least 2, got %d", ErrInvalidConfig, cfg.NumFloors)
	case cfg.TickInterval <= 0 || cfg.CarTickInterval <= 0:
		return fmt.Errorf("%w: tick intervals must be positive", ErrInvalidConfig)
	case cfg.SpawnChance < 0 || cfg.SpawnChance > 1:
		return fmt.Errorf("%w: spawn_chance must be within [0,1], got %v", ErrInvalidConfig, cfg.SpawnChance)
	}
	return nil
}
