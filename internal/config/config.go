package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigName = ".parex"
	defaultConfigDir  = ".parex"
	envPrefix         = "PAREX"
)

// Manager handles parex configuration
type Manager struct {
	configPath string
	config     *ParexConfig
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &ParexConfig{},
	}
}

// Load loads the parex configuration from file.
// A missing file is not an error; defaults are returned instead.
func (m *Manager) Load() (*ParexConfig, error) {
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		// ~/.parex/.parex.yaml, then ~/.parex.yaml
		m.viper.AddConfigPath(filepath.Join(home, defaultConfigDir))
		m.viper.AddConfigPath(home)
		m.viper.SetConfigName(defaultConfigName)
		m.viper.SetConfigType("yaml")
	}

	// PAREX_DEFAULTS_THREADS overrides defaults.threads
	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
	m.applyDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := m.decode(); err != nil {
		return nil, err
	}
	return m.config, nil
}

func (m *Manager) decode() error {
	cfg := &ParexConfig{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	m.config = cfg
	return nil
}

// BindFlag makes a command-line flag override key when the flag is set.
// Bindings must be made before Load.
func (m *Manager) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind to %q", key)
	}
	if err := m.viper.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %q: %w", flag.Name, err)
	}
	return nil
}

// Set updates a single dotted key, e.g. "defaults.threads"
func (m *Manager) Set(key string, value any) error {
	m.viper.Set(key, value)
	return m.decode()
}

// Path returns the file the configuration was read from or will be saved to
func (m *Manager) Path() (string, error) {
	if m.configPath != "" {
		return m.configPath, nil
	}
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigDir, defaultConfigName+".yaml"), nil
}

// Save writes the current configuration to file
func (m *Manager) Save() error {
	path, err := m.Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.configPath = path
	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *ParexConfig {
	return m.config
}

// applyDefaults registers default values with viper so that explicit
// zero values in the file (a limit of 0, say) are kept
func (m *Manager) applyDefaults() {
	m.viper.SetDefault("defaults.threads", runtime.NumCPU())
	m.viper.SetDefault("defaults.limit", -1)
	m.viper.SetDefault("defaults.maxDepth", -1)
	m.viper.SetDefault("defaults.outputFormat", "table")
	m.viper.SetDefault("defaults.timeout", "0s")
	m.viper.SetDefault("sql.driver", "sqlite")
	m.viper.SetDefault("sql.pathColumn", "path")
	m.viper.SetDefault("sql.nameColumn", "name")
	m.viper.SetDefault("sql.kindColumn", "kind")
	m.viper.SetDefault("sql.depthColumn", "depth")
}
