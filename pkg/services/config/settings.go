// Package config loads application settings and credential profiles.
package config

import (
	"fmt"
	"strings"

	"github.com/de-tools/hostaway-atlas/pkg/services/agent"
	"github.com/de-tools/hostaway-atlas/pkg/services/validation"
	"github.com/de-tools/hostaway-atlas/pkg/store/client"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const EnvPrefix = "HOSTAWAY_ATLAS"

type Settings struct {
	Server     ServerSettings     `mapstructure:"server"`
	Hostaway   client.Settings    `mapstructure:"hostaway"`
	Agent      agent.Settings     `mapstructure:"agent"`
	Report     ReportSettings     `mapstructure:"report"`
	Validation ValidationSettings `mapstructure:"validation"`
	Postgres   PostgresSettings   `mapstructure:"postgres"`
	Schedule   ScheduleSettings   `mapstructure:"schedule"`
	S3         S3Settings         `mapstructure:"s3"`
}

type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

type ReportSettings struct {
	// MaxRows caps the table shown and handed to the agent. Zero disables it.
	MaxRows        int `mapstructure:"max_rows"`
	DefaultColumns int `mapstructure:"default_columns"`
}

type ValidationSettings struct {
	// Tolerance switches reconciliation to decimal arithmetic when set.
	Tolerance string `mapstructure:"tolerance"`
}

type PostgresSettings struct {
	DSN string `mapstructure:"dsn"`
}

type ScheduleSettings struct {
	Spec       string `mapstructure:"spec"`
	WindowDays int    `mapstructure:"window_days"`
}

type S3Settings struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
	Region string `mapstructure:"region"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("hostaway.base_url", client.DefaultBaseURL)
	v.SetDefault("hostaway.listing_timeout", client.DefaultListingTimeout)
	v.SetDefault("hostaway.report_timeout", client.DefaultReportTimeout)
	v.SetDefault("agent.model", agent.DefaultModel)
	v.SetDefault("agent.temperature", 0)
	v.SetDefault("agent.base_url", "")
	v.SetDefault("report.max_rows", 100)
	v.SetDefault("report.default_columns", 5)
	v.SetDefault("validation.tolerance", "")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("schedule.spec", "0 6 * * *")
	v.SetDefault("schedule.window_days", 30)
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "discrepancies")
	v.SetDefault("s3.region", "")
}

// LoadSettings reads path when given, then applies HOSTAWAY_ATLAS_* overrides.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if _, err := cfg.Comparator(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Comparator returns the reconciliation rule the settings select.
func (s *Settings) Comparator() (validation.Comparator, error) {
	if strings.TrimSpace(s.Validation.Tolerance) == "" {
		return validation.ExactFloat{}, nil
	}
	tolerance, err := decimal.NewFromString(strings.TrimSpace(s.Validation.Tolerance))
	if err != nil {
		return nil, fmt.Errorf("invalid validation tolerance %q: %w", s.Validation.Tolerance, err)
	}
	return validation.DecimalTolerance{Tolerance: tolerance}, nil
}
