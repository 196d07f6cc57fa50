package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings of the service. Analysis thresholds are
// defaults only; each invocation receives its own explicit options record so
// two concurrent analyses with different plot rates never interfere.
type Config struct {
	Server   ServerConfig
	Paths    PathConfig
	Analysis AnalysisConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	RequestTimeout  time.Duration
	AnalysisTimeout time.Duration
	MaxUploadBytes  int64
}

type PathConfig struct {
	UploadDir    string
	ResultsDir   string
	RegistryPath string
}

// AnalysisConfig carries the default pipeline tuning. See analyzer.Options
// for the meaning of each knob.
type AnalysisConfig struct {
	MaxImageDimension int
	MinRegionAreaPx   int
	LeakageRatePerSqm float64
	PenaltyRatePerSqm float64
	Currency          string
}

type StorageConfig struct {
	Backend        string // "filesystem" or "azure"
	AzureAccount   string
	AzureKey       string
	AzureContainer string
}

// ServerAddress returns host:port with whitespace trimmed.
func (c *Config) ServerAddress() string {
	return net.JoinHostPort(strings.TrimSpace(c.Server.Host), fmt.Sprintf("%d", c.Server.Port))
}

// Load reads configuration from the environment with documented defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 8080)
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("ANALYSIS_TIMEOUT", "20s")
	v.SetDefault("MAX_UPLOAD_BYTES", 20*1024*1024)

	v.SetDefault("UPLOAD_DIR", "data/uploads")
	v.SetDefault("RESULTS_DIR", "data/results")
	v.SetDefault("REGISTRY_PATH", "")

	v.SetDefault("MAX_IMAGE_DIMENSION", 1024)
	v.SetDefault("MIN_REGION_AREA_PX", 48)
	v.SetDefault("LEAKAGE_RATE_PER_SQM", 500.0)
	v.SetDefault("PENALTY_RATE_PER_SQM", 2000.0)
	v.SetDefault("CURRENCY", "INR")

	v.SetDefault("STORAGE_BACKEND", "filesystem")
	v.SetDefault("AZURE_STORAGE_ACCOUNT", "")
	v.SetDefault("AZURE_STORAGE_KEY", "")
	v.SetDefault("AZURE_STORAGE_CONTAINER", "artifacts")

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("HOST"),
			Port:            v.GetInt("PORT"),
			RequestTimeout:  v.GetDuration("REQUEST_TIMEOUT"),
			AnalysisTimeout: v.GetDuration("ANALYSIS_TIMEOUT"),
			MaxUploadBytes:  v.GetInt64("MAX_UPLOAD_BYTES"),
		},
		Paths: PathConfig{
			UploadDir:    v.GetString("UPLOAD_DIR"),
			ResultsDir:   v.GetString("RESULTS_DIR"),
			RegistryPath: v.GetString("REGISTRY_PATH"),
		},
		Analysis: AnalysisConfig{
			MaxImageDimension: v.GetInt("MAX_IMAGE_DIMENSION"),
			MinRegionAreaPx:   v.GetInt("MIN_REGION_AREA_PX"),
			LeakageRatePerSqm: v.GetFloat64("LEAKAGE_RATE_PER_SQM"),
			PenaltyRatePerSqm: v.GetFloat64("PENALTY_RATE_PER_SQM"),
			Currency:          v.GetString("CURRENCY"),
		},
		Storage: StorageConfig{
			Backend:        v.GetString("STORAGE_BACKEND"),
			AzureAccount:   v.GetString("AZURE_STORAGE_ACCOUNT"),
			AzureKey:       v.GetString("AZURE_STORAGE_KEY"),
			AzureContainer: v.GetString("AZURE_STORAGE_CONTAINER"),
		},
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d", cfg.Server.Port)
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be > 0 (got %d)", cfg.Server.MaxUploadBytes)
	}
	if cfg.Server.RequestTimeout <= 0 || cfg.Server.AnalysisTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, analysis=%s)",
			cfg.Server.RequestTimeout, cfg.Server.AnalysisTimeout)
	}
	if cfg.Analysis.MaxImageDimension < 64 {
		return nil, fmt.Errorf("MAX_IMAGE_DIMENSION too small: %d", cfg.Analysis.MaxImageDimension)
	}
	switch cfg.Storage.Backend {
	case "filesystem":
	case "azure":
		if cfg.Storage.AzureAccount == "" || cfg.Storage.AzureKey == "" {
			return nil, fmt.Errorf("azure backend selected but credentials are missing")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND: %q", cfg.Storage.Backend)
	}

	return cfg, nil
}
