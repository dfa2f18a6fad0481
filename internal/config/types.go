package config

import "time"

// ParexConfig represents the parex configuration file structure
type ParexConfig struct {
	// Defaults contains default settings for runs
	Defaults DefaultsConfig `yaml:"defaults,omitempty" json:"defaults,omitempty"`

	// Kube configures the kube source
	Kube KubeConfig `yaml:"kube,omitempty" json:"kube,omitempty"`

	// SQL configures the sql source
	SQL SQLConfig `yaml:"sql,omitempty" json:"sql,omitempty"`
}

// DefaultsConfig contains default run values
type DefaultsConfig struct {
	// Threads is the number of workers
	Threads int `yaml:"threads,omitempty" json:"threads,omitempty"`

	// Limit caps the number of matches; -1 means unlimited
	Limit int `yaml:"limit" json:"limit"`

	// MaxDepth bounds traversal depth; -1 means unbounded
	MaxDepth int `yaml:"maxDepth" json:"maxDepth"`

	// OutputFormat is the default output format (table, json, yaml)
	OutputFormat string `yaml:"outputFormat,omitempty" json:"outputFormat,omitempty"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor,omitempty" json:"noColor,omitempty"`

	// CollectErrors reports every recoverable failure
	CollectErrors bool `yaml:"collectErrors,omitempty" json:"collectErrors,omitempty"`

	// Timeout bounds a run; zero means no timeout
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// KubeConfig holds kube source settings
type KubeConfig struct {
	// Kubeconfig is the kubeconfig file path
	Kubeconfig string `yaml:"kubeconfig,omitempty" json:"kubeconfig,omitempty"`

	// Context is the kubeconfig context name
	Context string `yaml:"context,omitempty" json:"context,omitempty"`

	// Namespaces restricts the walk; empty means all namespaces
	Namespaces []string `yaml:"namespaces,omitempty" json:"namespaces,omitempty"`
}

// SQLConfig holds sql source settings
type SQLConfig struct {
	// Driver is the database/sql driver name
	Driver string `yaml:"driver,omitempty" json:"driver,omitempty"`

	// DSN is the data source name
	DSN string `yaml:"dsn,omitempty" json:"dsn,omitempty"`

	// Table is the table to walk
	Table string `yaml:"table,omitempty" json:"table,omitempty"`

	PathColumn  string `yaml:"pathColumn,omitempty" json:"pathColumn,omitempty"`
	NameColumn  string `yaml:"nameColumn,omitempty" json:"nameColumn,omitempty"`
	KindColumn  string `yaml:"kindColumn,omitempty" json:"kindColumn,omitempty"`
	DepthColumn string `yaml:"depthColumn,omitempty" json:"depthColumn,omitempty"`
}
