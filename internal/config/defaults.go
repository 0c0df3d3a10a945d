package config

const (
	defaultLogDir         = "~/.local/share/kodisubs/logs"
	defaultLanguage       = "English"
	defaultFFprobeBinary  = "ffprobe"
	defaultInspectTimeout = 60
	defaultWatchAddress   = "ws://localhost:9090"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Language: Language{
			Preferred: defaultLanguage,
		},
		Inspector: Inspector{
			FFprobeBinary:  defaultFFprobeBinary,
			TimeoutSeconds: defaultInspectTimeout,
		},
		Watch: Watch{
			Address: defaultWatchAddress,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
