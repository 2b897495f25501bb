package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath      = "config/config.yaml"
	defaultAddress         = ":4001"
	defaultDriver          = "mysql"
	defaultAccessTTL       = 20 * time.Hour
	defaultRefreshTTL      = 30 * 24 * time.Hour
	defaultResendCooldown  = 60 * time.Second
	defaultFunctionTimeout = 15 * time.Second
	defaultDebounce        = 300 * time.Millisecond
	defaultReminderEvery   = time.Hour
	defaultReminderAfter   = 24 * time.Hour
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver       string `yaml:"driver"`
		URL          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	JWT struct {
		Secret     string        `yaml:"secret"`
		AccessTTL  time.Duration `yaml:"access_ttl"`
		RefreshTTL time.Duration `yaml:"refresh_ttl"`
	} `yaml:"jwt"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
	Storage struct {
		Endpoint      string `yaml:"endpoint"`
		Region        string `yaml:"region"`
		Bucket        string `yaml:"bucket"`
		AccessKey     string `yaml:"access_key"`
		SecretKey     string `yaml:"secret_key"`
		PublicBaseURL string `yaml:"public_base_url"`
	} `yaml:"storage"`
	Verification struct {
		Endpoint       string        `yaml:"endpoint"`
		Secret         string        `yaml:"secret"`
		Timeout        time.Duration `yaml:"timeout"`
		ResendCooldown time.Duration `yaml:"resend_cooldown"`
	} `yaml:"verification"`
	Realtime struct {
		Debounce time.Duration `yaml:"debounce"`
	} `yaml:"realtime"`
	Reminders struct {
		Interval time.Duration `yaml:"interval"`
		After    time.Duration `yaml:"after"`
	} `yaml:"reminders"`
}

// StorageEnabled reports whether portfolio uploads go to object storage.
func (c Config) StorageEnabled() bool {
	return c.Storage.Bucket != "" && c.Storage.AccessKey != "" && c.Storage.SecretKey != ""
}

// LoadConfig reads the YAML file at path (CONFIG_PATH or the default when
// empty), applies environment overrides and defaults, and validates.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("unmarshal %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Address, "ADDR")
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Address = ":" + strings.TrimPrefix(port, ":")
	}
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.Firebase.CredentialsFile, "FIREBASE_CREDENTIALS")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.Region, "S3_REGION")
	setString(&cfg.Storage.Bucket, "S3_BUCKET")
	setString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Storage.PublicBaseURL, "S3_PUBLIC_BASE_URL")
	setString(&cfg.Verification.Endpoint, "VERIFICATION_ENDPOINT")
	setString(&cfg.Verification.Secret, "VERIFICATION_SECRET")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitList(v)
	}

	if v, err := readIntEnv("REDIS_DB"); err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	} else if v != nil {
		cfg.Redis.DB = *v
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"JWT_ACCESS_TTL_SECONDS", &cfg.JWT.AccessTTL},
		{"JWT_REFRESH_TTL_SECONDS", &cfg.JWT.RefreshTTL},
		{"VERIFICATION_TIMEOUT_SECONDS", &cfg.Verification.Timeout},
		{"VERIFICATION_COOLDOWN_SECONDS", &cfg.Verification.ResendCooldown},
		{"REMINDER_INTERVAL_SECONDS", &cfg.Reminders.Interval},
		{"REMINDER_AFTER_SECONDS", &cfg.Reminders.After},
	}
	for _, d := range durations {
		v, err := readIntEnv(d.name)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.name, err)
		}
		if v != nil {
			*d.dst = time.Duration(*v) * time.Second
		}
	}
	if v, err := readIntEnv("REALTIME_DEBOUNCE_MS"); err != nil {
		return fmt.Errorf("parse REALTIME_DEBOUNCE_MS: %w", err)
	} else if v != nil {
		cfg.Realtime.Debounce = time.Duration(*v) * time.Millisecond
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = defaultAddress
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = defaultDriver
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 25
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = defaultAccessTTL
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = defaultRefreshTTL
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Verification.Timeout == 0 {
		cfg.Verification.Timeout = defaultFunctionTimeout
	}
	if cfg.Verification.ResendCooldown == 0 {
		cfg.Verification.ResendCooldown = defaultResendCooldown
	}
	if cfg.Realtime.Debounce == 0 {
		cfg.Realtime.Debounce = defaultDebounce
	}
	if cfg.Reminders.Interval == 0 {
		cfg.Reminders.Interval = defaultReminderEvery
	}
	if cfg.Reminders.After == 0 {
		cfg.Reminders.After = defaultReminderAfter
	}
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "pgx":
	default:
		return fmt.Errorf("database.driver must be mysql or pgx, got %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("database.url (DATABASE_URL) is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret (JWT_SECRET) is required")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("jwt ttl values must be positive")
	}
	if c.Verification.ResendCooldown < 0 || c.Verification.Timeout <= 0 {
		return errors.New("verification timeout must be positive and cooldown non-negative")
	}
	if c.Realtime.Debounce <= 0 {
		return errors.New("realtime.debounce must be positive")
	}
	if c.Reminders.Interval <= 0 || c.Reminders.After <= 0 {
		return errors.New("reminder interval and after must be positive")
	}
	return nil
}

func setString(dst *string, name string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func readIntEnv(name string) (*int, error) {
	val := os.Getenv(name)
	if val == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(val)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
