package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/slip39kit/slip39/internal/config"
	"github.com/slip39kit/slip39/internal/output"
	slip39err "github.com/slip39kit/slip39/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify slip39 configuration settings.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.slip39/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.`,
	Example: `  slip39 config init
  slip39 config init --force`,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show current configuration",
	Long:    `Display the current configuration settings.`,
	Example: `  slip39 config show
  slip39 config show -o json`,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its key.

Keys use dot notation to navigate the configuration tree.`,
	Example: `  slip39 config get generation.default_iteration_exponent
  slip39 config get security.memory_lock
  slip39 config get output.default_format`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by its key.

Keys use dot notation to navigate the configuration tree.
The configuration file is updated immediately.`,
	Example: `  slip39 config set generation.default_iteration_exponent 2
  slip39 config set security.memory_lock false
  slip39 config set output.default_format json`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return slip39err.WithSuggestion(
			slip39err.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - generation.default_iteration_exponent: PBKDF2 work factor for new shares")
	outln(w, "  - generation.default_extendable: whether new shares default to extendable")
	outln(w, "  - security.memory_lock: mlock secret material in memory when available")
	outln(w, "  - output.default_format: output format (text/json/auto)")
	outln(w, "  - logging.level: log level (off/error/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	format := formatter.Format()

	if format == output.FormatJSON {
		return displayConfigJSON(w, cfg)
	}

	return displayConfigText(w, cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	value, err := getConfigValue(cfg, key)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	outln(w, value)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	if _, err := getConfigValue(cfg, key); err != nil {
		return err
	}

	configPath := config.Path(cfg.Home)
	currentCfg, err := config.Load(configPath)
	if err != nil {
		currentCfg = config.Defaults()
		currentCfg.Home = cfg.Home
	}

	if err := setConfigValue(currentCfg, key, value); err != nil {
		return err
	}

	if err := config.Save(currentCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Set %s = %s\n", key, value)

	return nil
}

// getConfigValue retrieves a value from the config using dot notation.
func getConfigValue(c *config.Config, key string) (string, error) {
	switch key {
	case "home":
		return c.Home, nil
	case "generation.default_iteration_exponent":
		return fmt.Sprintf("%d", c.Generation.DefaultIterationExponent), nil
	case "generation.default_extendable":
		return fmt.Sprintf("%t", c.Generation.DefaultExtendable), nil
	case "security.memory_lock":
		return fmt.Sprintf("%t", c.Security.MemoryLock), nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.verbose":
		return fmt.Sprintf("%t", c.Output.Verbose), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", slip39err.WithDetails(
			slip39err.ErrUnknownConfigKey,
			map[string]string{"key": key},
		)
	}
}

// setConfigValue sets a value in the config using dot notation.
func setConfigValue(c *config.Config, key, value string) error {
	switch key {
	case "home":
		c.Home = value
		return nil
	case "generation.default_iteration_exponent":
		exp, err := parseUintFlag(value)
		if err != nil {
			return slip39err.WithDetails(
				slip39err.ErrInvalidFormat,
				map[string]string{"value": value, "valid": "a non-negative integer"},
			)
		}
		c.Generation.DefaultIterationExponent = exp
		return nil
	case "generation.default_extendable":
		b, ok := parseBoolFlag(value)
		if !ok {
			return slip39err.WithDetails(
				slip39err.ErrInvalidFormat,
				map[string]string{"value": value, "valid": "true or false"},
			)
		}
		c.Generation.DefaultExtendable = b
		return nil
	case "security.memory_lock":
		b, ok := parseBoolFlag(value)
		if !ok {
			return slip39err.WithDetails(
				slip39err.ErrInvalidFormat,
				map[string]string{"value": value, "valid": "true or false"},
			)
		}
		c.Security.MemoryLock = b
		return nil
	case "output.default_format":
		if value != "text" && value != "json" && value != "auto" {
			return slip39err.WithDetails(
				slip39err.ErrInvalidFormat,
				map[string]string{"value": value, "valid": "text, json, or auto"},
			)
		}
		c.Output.DefaultFormat = value
		return nil
	case "output.verbose":
		b, ok := parseBoolFlag(value)
		if !ok {
			return slip39err.WithDetails(
				slip39err.ErrInvalidFormat,
				map[string]string{"value": value, "valid": "true or false"},
			)
		}
		c.Output.Verbose = b
		return nil
	case "logging.level":
		validLevels := []string{"off", "error", "debug"}
		for _, l := range validLevels {
			if value == l {
				c.Logging.Level = value
				return nil
			}
		}
		return slip39err.WithDetails(
			slip39err.ErrInvalidFormat,
			map[string]string{"value": value, "valid": "off, error, or debug"},
		)
	case "logging.file":
		c.Logging.File = value
		return nil
	default:
		return slip39err.WithDetails(
			slip39err.ErrUnknownConfigKey,
			map[string]string{"key": key},
		)
	}
}

func parseBoolFlag(value string) (bool, bool) {
	switch value {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func parseUintFlag(value string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value: %d", n) //nolint:err113 // internal parse error, never surfaced directly
	}
	return n, nil
}

// displayConfigText shows the config in text format.
func displayConfigText(w interface {
	Write(p []byte) (n int, err error)
}, c *config.Config,
) error {
	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)
	outln(w)
	outln(w, "  Generation:")
	out(w, "    default_iteration_exponent: %d\n", c.Generation.DefaultIterationExponent)
	out(w, "    default_extendable: %t\n", c.Generation.DefaultExtendable)
	outln(w)
	outln(w, "  Security:")
	out(w, "    memory_lock: %t\n", c.Security.MemoryLock)
	outln(w)
	outln(w, "  Output:")
	out(w, "    default_format: %s\n", c.Output.DefaultFormat)
	out(w, "    verbose: %t\n", c.Output.Verbose)
	outln(w)
	outln(w, "  Logging:")
	out(w, "    level: %s\n", c.Logging.Level)
	out(w, "    file: %s\n", c.Logging.File)

	return nil
}

// displayConfigJSON shows the config in JSON format.
func displayConfigJSON(w interface {
	Write(p []byte) (n int, err error)
}, c *config.Config,
) error {
	type configJSON struct {
		Version    int    `json:"version"`
		Home       string `json:"home"`
		Generation struct {
			DefaultIterationExponent int  `json:"default_iteration_exponent"`
			DefaultExtendable        bool `json:"default_extendable"`
		} `json:"generation"`
		Security struct {
			MemoryLock bool `json:"memory_lock"`
		} `json:"security"`
		Output struct {
			DefaultFormat string `json:"default_format"`
			Verbose       bool   `json:"verbose"`
		} `json:"output"`
		Logging struct {
			Level string `json:"level"`
			File  string `json:"file"`
		} `json:"logging"`
	}

	outCfg := configJSON{
		Version: c.Version,
		Home:    c.Home,
	}
	outCfg.Generation.DefaultIterationExponent = c.Generation.DefaultIterationExponent
	outCfg.Generation.DefaultExtendable = c.Generation.DefaultExtendable
	outCfg.Security.MemoryLock = c.Security.MemoryLock
	outCfg.Output.DefaultFormat = c.Output.DefaultFormat
	outCfg.Output.Verbose = c.Output.Verbose
	outCfg.Logging.Level = c.Logging.Level
	outCfg.Logging.File = c.Logging.File

	return writeJSON(w, outCfg)
}
