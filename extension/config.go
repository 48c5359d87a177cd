package extension

import "time"

// SMTPConfig holds mail delivery settings for supply and sensor alerts.
type SMTPConfig struct {
	// Host is the SMTP server hostname (default: "smtp.gmail.com").
	Host string `json:"host" mapstructure:"host" yaml:"host"`

	// Port is the SMTP server port (default: 465, implicit SSL).
	Port int `json:"port" mapstructure:"port" yaml:"port"`

	// From is the sender address and SMTP username.
	From string `json:"from" mapstructure:"from" yaml:"from"`

	// Password is the SMTP password or app password.
	Password string `json:"password" mapstructure:"password" yaml:"password"`
}

// SeedConfig describes the supply ledger entry ensured on start.
type SeedConfig struct {
	Location string `json:"location" mapstructure:"location" yaml:"location"`
	Year     int    `json:"year" mapstructure:"year" yaml:"year"`
	Food     int64  `json:"food" mapstructure:"food" yaml:"food"`
	Med      int64  `json:"med" mapstructure:"med" yaml:"med"`
}

// Config holds the Relief extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.relief" or "relief" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// StartupReset clears all supply ledger entries on start before seeding.
	StartupReset bool `json:"startup_reset" mapstructure:"startup_reset" yaml:"startup_reset"`

	// AdminEmail receives supply shortage alerts. Empty disables them.
	AdminEmail string `json:"admin_email" mapstructure:"admin_email" yaml:"admin_email"`

	// NotifyTimeout bounds each alert delivery attempt (default: 5s).
	NotifyTimeout time.Duration `json:"notify_timeout" mapstructure:"notify_timeout" yaml:"notify_timeout"`

	// SMTP configures the outbound mail sink. When From is empty no SMTP
	// sink is constructed and alerts are discarded unless a sink was
	// provided programmatically.
	SMTP SMTPConfig `json:"smtp" mapstructure:"smtp" yaml:"smtp"`

	// Seed overrides the default supply ledger entry ensured on start.
	// A zero Location leaves the engine default in place.
	Seed SeedConfig `json:"seed" mapstructure:"seed" yaml:"seed"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		NotifyTimeout: 5 * time.Second,
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 465,
		},
	}
}
