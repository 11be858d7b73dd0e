package config

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.slip39",
		Generation: GenerationConfig{
			DefaultIterationExponent: 1,
			DefaultExtendable:        true,
		},
		Security: SecurityConfig{
			MemoryLock: true,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.slip39/slip39.log",
		},
	}
}
