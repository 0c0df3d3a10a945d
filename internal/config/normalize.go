package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLanguage()
	c.normalizeInspector()
	c.normalizeWatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Database) != "" {
		if c.Paths.Database, err = expandPath(c.Paths.Database); err != nil {
			return fmt.Errorf("paths.database: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLanguage() {
	c.Language.Preferred = strings.TrimSpace(c.Language.Preferred)
	if c.Language.Preferred == "" {
		c.Language.Preferred = defaultLanguage
	}
}

func (c *Config) normalizeInspector() {
	c.Inspector.FFprobeBinary = strings.TrimSpace(c.Inspector.FFprobeBinary)
	if c.Inspector.FFprobeBinary == "" {
		c.Inspector.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Inspector.TimeoutSeconds <= 0 {
		c.Inspector.TimeoutSeconds = defaultInspectTimeout
	}
}

func (c *Config) normalizeWatch() {
	c.Watch.Address = strings.TrimSpace(c.Watch.Address)
	if c.Watch.Address == "" {
		c.Watch.Address = defaultWatchAddress
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
