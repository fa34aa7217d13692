package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment    string   `toml:"environment"`
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	SentryEnabled  bool     `toml:"sentry_enabled"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`

	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`
	AutoMigrate      bool   `toml:"auto_migrate"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// analysis
	AnalysisRateLimitPerMin int `toml:"analysis_rate_limit_per_min"`
	MaxImagesPerSubmission  int `toml:"max_images_per_submission"`
	MaxImageSizeMB          int `toml:"max_image_size_mb"`

	// leaderboard
	LeaderboardSize      int      `toml:"leaderboard_size"`
	HealBatchLimit       int      `toml:"heal_batch_limit"`
	LeaderboardCacheTTL  Duration `toml:"leaderboard_cache_ttl"`
	LeaderboardCacheSize int      `toml:"leaderboard_cache_size_mb"`

	// object store: "disk" or "gcs"
	ObjectStoreKind     string `toml:"object_store_kind"`
	ObjectStoreDiskPath string `toml:"object_store_disk_path"`
	ObjectStoreBaseURL  string `toml:"object_store_base_url"`
	GCSBucket           string `toml:"gcs_bucket"`

	// rating oracle and training plan generator, OpenAI compatible
	OracleBaseURL string `toml:"oracle_base_url"`
	OracleModel   string `toml:"oracle_model"`
	PlannerModel  string `toml:"planner_model"`

	// push
	FCMEndpoint string `toml:"fcm_endpoint"`

	SessionTTL Duration `toml:"session_ttl"`
}

// Duration lets toml values like "30s" decode into a time.Duration.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.AnalysisRateLimitPerMin == 0 {
		c.AnalysisRateLimitPerMin = 10
	}
	if c.MaxImagesPerSubmission == 0 {
		c.MaxImagesPerSubmission = 5
	}
	if c.MaxImageSizeMB == 0 {
		c.MaxImageSizeMB = 10
	}
	if c.LeaderboardSize == 0 {
		c.LeaderboardSize = 50
	}
	if c.HealBatchLimit == 0 {
		c.HealBatchLimit = 50
	}
	if c.LeaderboardCacheSize == 0 {
		c.LeaderboardCacheSize = 8
	}
	if c.ObjectStoreKind == "" {
		c.ObjectStoreKind = "disk"
	}
	if c.OracleModel == "" {
		c.OracleModel = "gpt-4o"
	}
	if c.PlannerModel == "" {
		c.PlannerModel = "gpt-4o-mini"
	}
	if c.SessionTTL.Duration == 0 {
		c.SessionTTL = Duration{Duration: 30 * 24 * time.Hour}
	}
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config %s: %w", path, err)
	}
	return t.Get(env)
}
