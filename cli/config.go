package cli

import (
	"fmt"
	"go/token"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Default Config Values
const (
	defaultIndentation = "    "
	defaultWorkers     = 4
	defaultPackageName = "pyexprgen"
	defaultAppName     = "pyexpr"

	// LicenseKeyEnv is read when the telemetry license key is not set in the config file.
	LicenseKeyEnv = "NEW_RELIC_LICENSE_KEY"
)

// TelemetryConfig controls the optional New Relic agent.
type TelemetryConfig struct {
	Enabled    bool   `yaml:"enabled"`
	AppName    string `yaml:"appName"`
	LicenseKey string `yaml:"licenseKey"`
}

// Config defines the settings shared by all pyexpr commands.
type Config struct {
	// Indentation is the string repeated once per indent level.
	Indentation string `yaml:"indentation"`
	Indent      int    `yaml:"indent"`

	// Fold simplifies expressions before they are rendered.
	Fold bool `yaml:"fold"`

	// Workers bounds the number of documents rendered at once.
	Workers int `yaml:"workers"`

	// Package is the package clause of generated Go files.
	Package string `yaml:"package"`

	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// NewDefaultConfig returns a new default configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Indentation: defaultIndentation,
		Workers:     defaultWorkers,
		Package:     defaultPackageName,
		Telemetry: TelemetryConfig{
			AppName: defaultAppName,
		},
	}
}

// LoadFromFile loads the config from the file. It assumes that config already has the defaults:
// only the fields set in the file replace them. In the case of an error, it leaves the config untouched.
func (conf *Config) LoadFromFile(path string) error {
	log.WithFields(log.Fields{"path": path}).Info("pyexpr::config::LoadFromFile; loading config from file")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config from file %s: %w", path, err)
	}

	fconf := Config{}
	err = yaml.Unmarshal(data, &fconf)
	if err != nil {
		return fmt.Errorf("error unmarshalling config from file %s: %w", path, err)
	}

	log.WithFields(log.Fields{"config": fconf}).Debug("pyexpr::config::LoadFromFile; read contents from the file")

	// populate fields
	if fconf.Indentation != "" {
		conf.Indentation = fconf.Indentation
	}
	if fconf.Indent != 0 {
		conf.Indent = fconf.Indent
	}
	if fconf.Fold {
		conf.Fold = true
	}
	if fconf.Workers != 0 {
		conf.Workers = fconf.Workers
	}
	if fconf.Package != "" {
		conf.Package = strings.TrimSpace(fconf.Package)
	}
	if fconf.Telemetry.Enabled {
		conf.Telemetry.Enabled = true
	}
	if fconf.Telemetry.AppName != "" {
		conf.Telemetry.AppName = fconf.Telemetry.AppName
	}
	if fconf.Telemetry.LicenseKey != "" {
		conf.Telemetry.LicenseKey = fconf.Telemetry.LicenseKey
	}
	return nil
}

// LicenseKey returns the configured telemetry license key, falling back to
// the environment.
func (conf *Config) LicenseKey() string {
	if conf.Telemetry.LicenseKey != "" {
		return conf.Telemetry.LicenseKey
	}
	return os.Getenv(LicenseKeyEnv)
}

// Validate validates a Config and returns an error if it's invalid.
func (conf *Config) Validate() error {
	if strings.Trim(conf.Indentation, " \t") != "" {
		return fmt.Errorf("indentation must only contain spaces and tabs, got %q", conf.Indentation)
	}
	if conf.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", conf.Indent)
	}
	if conf.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", conf.Workers)
	}
	if !token.IsIdentifier(conf.Package) || conf.Package == "_" {
		return fmt.Errorf("invalid package name %q", conf.Package)
	}
	if conf.Telemetry.Enabled {
		if conf.Telemetry.AppName == "" {
			return fmt.Errorf("telemetry requires an app name")
		}
		if conf.LicenseKey() == "" {
			return fmt.Errorf("telemetry requires a license key in the config or in $%s", LicenseKeyEnv)
		}
	}
	return nil
}
