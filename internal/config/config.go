package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the YAML file and .env.
const (
	EnvDB           = "CLIENTPRO_DB"
	EnvConfig       = "CLIENTPRO_CONFIG"
	EnvBackupDir    = "CLIENTPRO_BACKUP_DIR"
	EnvLogUseCases  = "CLIENTPRO_LOG_USE_CASES"
	EnvFirstHour    = "CLIENTPRO_FIRST_HOUR"
	EnvLastHour     = "CLIENTPRO_LAST_HOUR"
	defaultDirName  = ".clientpro"
	defaultFileName = "config.yaml"
)

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type BackupConfig struct {
	Dir string `yaml:"dir"`
	// Schedule is a standard 5-field cron spec used by `backup schedule`.
	Schedule string `yaml:"schedule"`
	// Keep bounds how many scheduled backups are retained; 0 keeps all.
	Keep int `yaml:"keep"`
}

type DisplayConfig struct {
	FirstHour int `yaml:"first_hour"`
	LastHour  int `yaml:"last_hour"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	UseCases bool   `yaml:"use_cases"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Backup   BackupConfig   `yaml:"backup"`
	Display  DisplayConfig  `yaml:"display"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultDir is ~/.clientpro, or ./.clientpro when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

// DefaultPath is where the config file lives unless CLIENTPRO_CONFIG says otherwise.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(DefaultDir(), defaultFileName)
}

func DefaultConfig() *Config {
	dir := DefaultDir()
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dir, "clientpro.db")},
		Backup: BackupConfig{
			Dir:      filepath.Join(dir, "backups"),
			Schedule: "0 2 * * *",
			Keep:     10,
		},
		Display: DisplayConfig{FirstHour: 8, LastHour: 19},
		Log:     LogConfig{Level: "info"},
	}
}

// Normalize fills zero values left by older or partial files.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Database.Path == "" {
		c.Database.Path = def.Database.Path
	}
	if c.Backup.Dir == "" {
		c.Backup.Dir = def.Backup.Dir
	}
	if c.Backup.Schedule == "" {
		c.Backup.Schedule = def.Backup.Schedule
	}
	if c.Backup.Keep < 0 {
		c.Backup.Keep = 0
	}
	if c.Display.FirstHour == 0 && c.Display.LastHour == 0 {
		c.Display = def.Display
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	c.Database.Path = expandHome(c.Database.Path)
	c.Backup.Dir = expandHome(c.Backup.Dir)
}

// Validate reports settings that cannot be used as given.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.FirstHour < 0 || c.Display.LastHour > 23 || c.Display.FirstHour > c.Display.LastHour {
		errs = append(errs, fmt.Errorf("display hours %d-%d must satisfy 0 <= first <= last <= 23",
			c.Display.FirstHour, c.Display.LastHour))
	}
	if _, err := cron.ParseStandard(c.Backup.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("backup.schedule %q: %w", c.Backup.Schedule, err))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel maps log.level to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return lvl, nil
}

// Load reads the YAML file at path, creating it with defaults on first run,
// then applies .env and environment overrides. The returned config is
// normalized and validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	cfg, err := readOrCreate(path)
	if err != nil {
		return nil, err
	}

	// A missing .env is the common case.
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func readOrCreate(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return nil, fmt.Errorf("writing default config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvBackupDir); v != "" {
		c.Backup.Dir = v
	}
	if v := os.Getenv(EnvLogUseCases); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogUseCases, err)
		}
		c.Log.UseCases = b
	}
	for _, o := range []struct {
		name string
		dst  *int
	}{
		{EnvFirstHour, &c.Display.FirstHour},
		{EnvLastHour, &c.Display.LastHour},
	} {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", o.name, err)
		}
		*o.dst = n
	}
	return nil
}

// Save writes cfg atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".clientpro-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~/")
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}
