// Package extension provides the Forge extension adapter for Relief.
//
// It implements the forge.Extension interface to integrate Relief
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.relief" or "relief" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	relief "github.com/xraph/relief"
	"github.com/xraph/relief/notify"
	"github.com/xraph/relief/store"
	"github.com/xraph/relief/store/memory"
	"github.com/xraph/relief/supply"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "relief"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Disaster relief coordination engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Relief as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config      Config
	engine      *relief.Coordinator
	store       store.Store
	sink        notify.Sink
	reliefOpts  []relief.Option
	skipMigrate bool
}

// New creates a new Relief Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Coordinator instance.
// This is nil until Register is called.
func (e *Extension) Engine() *relief.Coordinator { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the relief coordinator, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build coordinator options from resolved config.
	opts, err := e.buildReliefOpts()
	if err != nil {
		return err
	}

	eng := relief.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*relief.Coordinator, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("relief: extension not initialized")
	}

	if !e.skipMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("relief: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildReliefOpts constructs relief.Option values from the resolved config.
func (e *Extension) buildReliefOpts() ([]relief.Option, error) {
	opts := make([]relief.Option, 0, len(e.reliefOpts)+5)

	if e.config.AdminEmail != "" {
		opts = append(opts, relief.WithAdminEmail(e.config.AdminEmail))
	}
	if e.config.NotifyTimeout > 0 {
		opts = append(opts, relief.WithNotifyTimeout(e.config.NotifyTimeout))
	}
	if e.config.StartupReset {
		opts = append(opts, relief.WithStartupReset())
	}
	if e.config.Seed.Location != "" {
		opts = append(opts, relief.WithSeed(supply.Entry{
			Location:  e.config.Seed.Location,
			Year:      e.config.Seed.Year,
			TotalFood: e.config.Seed.Food,
			TotalMed:  e.config.Seed.Med,
		}))
	}

	// Resolve the notification sink: programmatic sink wins, then SMTP
	// config, then alerts are discarded.
	sink := e.sink
	if sink == nil && e.config.SMTP.From != "" {
		smtpSink, err := notify.NewSMTPSink(notify.SMTPConfig{
			Host:     e.config.SMTP.Host,
			Port:     e.config.SMTP.Port,
			From:     e.config.SMTP.From,
			Password: e.config.SMTP.Password,
		})
		if err != nil {
			return nil, err
		}
		sink = smtpSink
	}
	if sink != nil {
		opts = append(opts, relief.WithSink(sink))
	}

	// Append any pass-through coordinator options.
	opts = append(opts, e.reliefOpts...)

	return opts, nil
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("relief: configuration is required but not found in config files; " +
				"ensure 'extensions.relief' or 'relief' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.skipMigrate = e.config.DisableMigrate

	e.Logger().Debug("relief: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("startup_reset", e.config.StartupReset),
		forge.F("admin_email", e.config.AdminEmail),
		forge.F("notify_timeout", e.config.NotifyTimeout),
		forge.F("smtp_host", e.config.SMTP.Host),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.relief" first (namespaced pattern).
	if cm.IsSet("extensions.relief") {
		if err := cm.Bind("extensions.relief", &cfg); err == nil {
			e.Logger().Debug("relief: loaded config from file",
				forge.F("key", "extensions.relief"),
			)
			return cfg, true
		}
		e.Logger().Warn("relief: failed to bind extensions.relief config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "relief" key.
	if cm.IsSet("relief") {
		if err := cm.Bind("relief", &cfg); err == nil {
			e.Logger().Debug("relief: loaded config from file",
				forge.F("key", "relief"),
			)
			return cfg, true
		}
		e.Logger().Warn("relief: failed to bind relief config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.NotifyTimeout == 0 {
		cfg.NotifyTimeout = defaults.NotifyTimeout
	}
	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = defaults.SMTP.Host
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = defaults.SMTP.Port
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if programmaticConfig.StartupReset {
		yamlConfig.StartupReset = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.AdminEmail == "" && programmaticConfig.AdminEmail != "" {
		yamlConfig.AdminEmail = programmaticConfig.AdminEmail
	}
	if yamlConfig.SMTP.From == "" && programmaticConfig.SMTP.From != "" {
		yamlConfig.SMTP = programmaticConfig.SMTP
	}
	if yamlConfig.Seed.Location == "" && programmaticConfig.Seed.Location != "" {
		yamlConfig.Seed = programmaticConfig.Seed
	}

	// Duration fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.NotifyTimeout == 0 && programmaticConfig.NotifyTimeout != 0 {
		yamlConfig.NotifyTimeout = programmaticConfig.NotifyTimeout
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
