package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/kbukum/taskgraph/logger"
	"github.com/kbukum/taskgraph/observability"
	"github.com/kbukum/taskgraph/validation"
	"github.com/kbukum/taskgraph/version"
)

// Base contains the essential fields every embedding program needs.
type Base struct {
	Name        string `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ApplyDefaults applies default values to the base configuration.
func (c *Base) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
}

// Telemetry configures trace and metric export.
type Telemetry struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults applies default values to telemetry configuration.
func (c *Telemetry) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// TracerConfig converts the telemetry section for tracer initialization.
func (c *Telemetry) TracerConfig(serviceName, environment string) observability.TracerConfig {
	return observability.TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Get().String(),
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// MeterConfig converts the telemetry section for meter initialization.
func (c *Telemetry) MeterConfig(serviceName, environment string) observability.MeterConfig {
	return observability.MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.Get().String(),
		Environment:    environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.Interval,
	}
}

// Config is the engine configuration. Embedding programs extend it:
//
//	type MyConfig struct {
//	    config.Config `yaml:",inline" mapstructure:",squash"`
//	    Runner runner.ProcessConfig `yaml:"runner" mapstructure:"runner"`
//	}
type Config struct {
	Base `yaml:",inline" mapstructure:",squash"`

	// Workers is the default evaluation pool size.
	Workers   int           `yaml:"workers" mapstructure:"workers" validate:"gte=1"`
	Logging   logger.Config `yaml:"logging" mapstructure:"logging"`
	Telemetry Telemetry     `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults applies default values to the engine configuration.
// Override this in embedding structs and call c.Config.ApplyDefaults() first.
func (c *Config) ApplyDefaults() {
	c.Base.ApplyDefaults()
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	c.Logging.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
}

// Validate validates the engine configuration fields.
// Override this in embedding structs and call c.Config.Validate() first.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
