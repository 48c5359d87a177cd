package extension

import (
	"time"

	relief "github.com/xraph/relief"
	"github.com/xraph/relief/notify"
	"github.com/xraph/relief/plugin"
	"github.com/xraph/relief/store"
)

// Option configures the Relief Forge extension.
type Option func(*Extension)

// WithStore sets the store for the relief coordinator.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithReliefOption passes a relief.Option through to the underlying coordinator.
func WithReliefOption(opt relief.Option) Option {
	return func(e *Extension) {
		e.reliefOpts = append(e.reliefOpts, opt)
	}
}

// WithPlugin registers a relief plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.reliefOpts = append(e.reliefOpts, relief.WithPlugin(p))
	}
}

// WithSink sets the notification sink, overriding any SMTP configuration.
func WithSink(s notify.Sink) Option {
	return func(e *Extension) {
		e.sink = s
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithStartupReset clears the supply ledger on start before seeding.
func WithStartupReset() Option {
	return func(e *Extension) { e.config.StartupReset = true }
}

// WithAdminEmail sets the recipient for supply shortage alerts.
func WithAdminEmail(email string) Option {
	return func(e *Extension) { e.config.AdminEmail = email }
}

// WithNotifyTimeout bounds each alert delivery attempt.
func WithNotifyTimeout(d time.Duration) Option {
	return func(e *Extension) { e.config.NotifyTimeout = d }
}

// WithSMTP configures the outbound mail sink.
func WithSMTP(cfg SMTPConfig) Option {
	return func(e *Extension) { e.config.SMTP = cfg }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
