// Package config loads runtime settings for the CLI, pipeline and HTTP server.
//
// Sources are applied in order: built-in defaults, an optional YAML file,
// a .env file (never overriding variables already set), CCI_* environment
// variables, then validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"crypto-cluster-insights/internal/domain"
	"crypto-cluster-insights/internal/profile"
)

// Dataset sources.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSample   = "sample"
)

// Config is the full runtime configuration.
type Config struct {
	Dataset      DatasetConfig        `yaml:"dataset"`
	Storage      StorageConfig        `yaml:"storage"`
	Output       OutputConfig         `yaml:"output"`
	HTTP         HTTPConfig           `yaml:"http"`
	Log          LogConfig            `yaml:"log"`
	ROIScenarios []domain.ROIScenario `yaml:"roi_scenarios" validate:"dive"`
}

// DatasetConfig selects where the clustered table comes from.
type DatasetConfig struct {
	Source    string `yaml:"source" validate:"oneof=csv postgres sample"`
	CSVPath   string `yaml:"csv_path" validate:"required_if=Source csv"`
	DatasetID string `yaml:"dataset_id" validate:"required_if=Source postgres"`
}

// StorageConfig holds database connection settings. Empty DSNs disable the store.
type StorageConfig struct {
	PostgresDSN        string `yaml:"postgres_dsn"`
	ClickHouseDSN      string `yaml:"clickhouse_dsn"`
}

// OutputConfig controls report export.
type OutputConfig struct {
	Dir  string `yaml:"dir" validate:"required"`
	HTML bool   `yaml:"html"`
}

// HTTPConfig controls the API server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `yaml:"format" validate:"oneof=json pretty"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{Source: SourceSample},
		Output:  OutputConfig{Dir: "."},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds a Config from the YAML file at path and the env file at envFile.
// Either may be empty to skip it. A missing envFile is ignored; a missing YAML file is an error.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if len(cfg.ROIScenarios) == 0 {
		cfg.ROIScenarios = append([]domain.ROIScenario(nil), profile.DefaultROIScenarios...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}

	strs := map[string]*string{
		"CCI_DATASET_SOURCE":      &cfg.Dataset.Source,
		"CCI_CSV_PATH":            &cfg.Dataset.CSVPath,
		"CCI_DATASET_ID":          &cfg.Dataset.DatasetID,
		"CCI_POSTGRES_DSN":        &cfg.Storage.PostgresDSN,
		"CCI_CLICKHOUSE_DSN":      &cfg.Storage.ClickHouseDSN,
		"CCI_OUTPUT_DIR":          &cfg.Output.Dir,
		"CCI_HTTP_ADDR":           &cfg.HTTP.Addr,
		"CCI_LOG_LEVEL":           &cfg.Log.Level,
		"CCI_LOG_FORMAT":          &cfg.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := get(key); ok {
			*dst = v
		}
	}

	if v, ok := get("CCI_OUTPUT_HTML"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CCI_OUTPUT_HTML: %w", err)
		}
		cfg.Output.HTML = b
	}

	durations := map[string]*time.Duration{
		"CCI_HTTP_READ_TIMEOUT":  &cfg.HTTP.ReadTimeout,
		"CCI_HTTP_WRITE_TIMEOUT": &cfg.HTTP.WriteTimeout,
		"CCI_SHUTDOWN_TIMEOUT":   &cfg.HTTP.ShutdownTimeout,
	}
	for key, dst := range durations {
		if v, ok := get(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}
