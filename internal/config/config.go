package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/kelseyhightower/envconfig"

	"github.com/dcm-project/compute-provisioner/internal/logging"
)

type Config struct {
	Service  *ServiceConfig
	Dispatch *DispatchConfig
	AWS      *AWSConfig
	GCP      *GCPConfig
}

type ServiceConfig struct {
	Address   string `envconfig:"SVC_ADDRESS" default:":8080"`
	LogLevel  string `envconfig:"SVC_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"SVC_LOG_FORMAT" default:"logfmt"`
}

type DispatchConfig struct {
	MaxParallel int `envconfig:"DISPATCH_MAX_PARALLEL" default:"8"`
}

type AWSConfig struct {
	Enabled       bool     `envconfig:"AWS_ENABLED" default:"true"`
	DefaultRegion string   `envconfig:"AWS_DEFAULT_REGION" default:"us-east-1"`
	Regions       []string `envconfig:"AWS_REGIONS"`
	Profile       string   `envconfig:"AWS_PROFILE"`
}

type GCPConfig struct {
	Enabled       bool          `envconfig:"GCP_ENABLED" default:"false"`
	Project       string        `envconfig:"GCP_PROJECT"`
	Endpoint      string        `envconfig:"GCP_ENDPOINT" default:"https://compute.googleapis.com/compute/v1"`
	AccessToken   string        `envconfig:"GCP_ACCESS_TOKEN"`
	ImageProjects []string      `envconfig:"GCP_IMAGE_PROJECTS" default:"debian-cloud,ubuntu-os-cloud"`
	Network       string        `envconfig:"GCP_NETWORK" default:"global/networks/default"`
	Timeout       time.Duration `envconfig:"GCP_TIMEOUT" default:"30s"`
	RetryCount    int           `envconfig:"GCP_RETRY_COUNT" default:"3"`
	OperationPoll time.Duration `envconfig:"GCP_OPERATION_POLL" default:"2s"`
}

// Load reads the configuration from the environment. Invalid logging settings
// fall back to their defaults with a warning; invalid provider settings are an
// error.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if !logging.ValidLevel(cfg.Service.LogLevel) {
		level.Warn(logger).Log("msg", "invalid SVC_LOG_LEVEL, defaulting to info", "value", cfg.Service.LogLevel)
		cfg.Service.LogLevel = "info"
	}
	if cfg.Service.LogFormat != logging.FormatLogfmt && cfg.Service.LogFormat != logging.FormatJSON {
		level.Warn(logger).Log("msg", "invalid SVC_LOG_FORMAT, defaulting to logfmt", "value", cfg.Service.LogFormat)
		cfg.Service.LogFormat = logging.FormatLogfmt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the provider settings.
func (c *Config) Validate() error {
	if !c.AWS.Enabled && !c.GCP.Enabled {
		return fmt.Errorf("at least one of AWS_ENABLED and GCP_ENABLED must be true")
	}
	if c.AWS.Enabled && c.AWS.DefaultRegion == "" {
		return fmt.Errorf("AWS_DEFAULT_REGION is required when AWS is enabled")
	}
	if c.GCP.Enabled && c.GCP.Project == "" {
		return fmt.Errorf("GCP_PROJECT is required when GCP is enabled")
	}
	if c.Dispatch.MaxParallel < 1 {
		return fmt.Errorf("DISPATCH_MAX_PARALLEL must be at least 1, got %d", c.Dispatch.MaxParallel)
	}
	return nil
}
