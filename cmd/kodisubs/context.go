package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"kodisubs/internal/config"
	"kodisubs/internal/kodidb"
	"kodisubs/internal/language"
	"kodisubs/internal/logging"
	"kodisubs/internal/reconcile"
	"kodisubs/internal/scan"
)

type commandContext struct {
	configFlag   *string
	databaseFlag *string
	languageFlag *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, databaseFlag, languageFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		databaseFlag: databaseFlag,
		languageFlag: languageFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// applyOverrides layers persistent CLI flags over the loaded file.
func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if c.databaseFlag != nil && strings.TrimSpace(*c.databaseFlag) != "" {
		expanded, err := config.ExpandPath(*c.databaseFlag)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		cfg.Paths.Database = expanded
	}
	if c.languageFlag != nil && strings.TrimSpace(*c.languageFlag) != "" {
		cfg.Language.Preferred = strings.TrimSpace(*c.languageFlag)
		if _, err := cfg.PreferredLanguage(); err != nil {
			return err
		}
	}
	if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
		cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
	}
	return cfg.Validate()
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) targetLanguage() (language.Language, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return language.Language{}, err
	}
	return cfg.PreferredLanguage()
}

// openStore opens the Kodi database with the single-writer lock held. The
// caller owns the returned store and must close it.
func (c *commandContext) openStore() (*kodidb.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Paths.Database) == "" {
		return nil, fmt.Errorf("no database configured; set paths.database or pass --database")
	}
	return kodidb.Open(cfg.Paths.Database)
}

func (c *commandContext) newReconciler(store *kodidb.Store, logger *slog.Logger) *reconcile.Reconciler {
	return reconcile.New(store, logging.WithComponent(logger, "reconcile"))
}

func (c *commandContext) newInspector(logger *slog.Logger) (*scan.FFprobeInspector, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return &scan.FFprobeInspector{
		Binary:  cfg.Inspector.FFprobeBinary,
		Timeout: time.Duration(cfg.Inspector.TimeoutSeconds) * time.Second,
		Logger:  logging.WithComponent(logger, "inspect"),
	}, nil
}
