// Package config provides configuration management for the filter list
// manager core, backed by Viper: environment variables (FLM_* prefix) and an
// optional YAML file merge over documented defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FilterListType selects the rule dialect a filter body is expected to
// contain; the core never interprets this beyond tagging filters with it.
type FilterListType string

const (
	FilterListTypeStandard FilterListType = "standard"
	FilterListTypeDNS      FilterListType = "dns"
)

// ProxyMode selects how outbound HTTP(S) fetches are routed.
type ProxyMode string

const (
	ProxyModeSystem ProxyMode = "system"
	ProxyModeNone   ProxyMode = "none"
	ProxyModeCustom ProxyMode = "custom"
)

// CompilationPolicy holds the set of compilation constants evaluated by
// !#if directives (spec §4.6).
type CompilationPolicy struct {
	Constants []string `mapstructure:"constants" yaml:"constants"`
}

// Has reports whether name is a member of the configured constant set.
func (p CompilationPolicy) Has(name string) bool {
	for _, c := range p.Constants {
		if c == name {
			return true
		}
	}
	return false
}

// Config is the full set of options recognized by the core (spec §6).
type Config struct {
	// Locale used for localisation fallback resolution (e.g. "en_US").
	Locale string `mapstructure:"locale" yaml:"locale"`

	// DefaultFilterListExpiresPeriod is loaded and validated but not read by
	// any component; staleness uses each filter's stored ExpiresSeconds only.
	DefaultFilterListExpiresPeriod time.Duration `mapstructure:"default_filter_list_expires_period" yaml:"default_filter_list_expires_period"`

	// AppName and Version compose the HTTP User-Agent for fetches.
	AppName string `mapstructure:"app_name" yaml:"app_name"`
	Version string `mapstructure:"version" yaml:"version"`

	// RequestTimeout bounds a single HTTP(S) fetch.
	RequestTimeout time.Duration `mapstructure:"request_timeout_ms" yaml:"request_timeout_ms"`

	// RequestProxyMode configures outbound proxying (mode and, for "custom",
	// the proxy address).
	RequestProxyMode RequestProxyMode `mapstructure:"request_proxy_mode" yaml:"request_proxy_mode"`

	// FilterListType is the rule dialect filters in this database use.
	FilterListType FilterListType `mapstructure:"filter_list_type" yaml:"filter_list_type"`

	// FiltersCompilationPolicy holds the directive-interpreter constants.
	FiltersCompilationPolicy CompilationPolicy `mapstructure:"filters_compilation_policy" yaml:"filters_compilation_policy"`

	// MetadataURL and MetadataLocalesURL point at the remote filter index.
	MetadataURL        string `mapstructure:"metadata_url" yaml:"metadata_url"`
	MetadataLocalesURL string `mapstructure:"metadata_locales_url" yaml:"metadata_locales_url"`

	// EncryptionKey is an opaque value reserved for a host-provided at-rest
	// encryption scheme; the core never interprets it.
	EncryptionKey string `mapstructure:"encryption_key" yaml:"encryption_key"`

	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Updater  UpdaterConfig  `mapstructure:"updater" yaml:"updater"`
}

// RequestProxyMode pairs a ProxyMode with the address a "custom" mode needs.
type RequestProxyMode struct {
	Mode ProxyMode `mapstructure:"mode" yaml:"mode"`
	Addr string    `mapstructure:"addr" yaml:"addr"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Path           string `mapstructure:"path" yaml:"path"`
	MigrationsPath string `mapstructure:"migrations_path" yaml:"migrations_path"`

	// CacheSizeKB, MmapSizeBytes and BusyTimeoutMS tune the SQLite pragmas
	// NewConnection applies (negative cache_size means "KB", per SQLite's
	// own convention).
	CacheSizeKB   int64 `mapstructure:"cache_size_kb" yaml:"cache_size_kb"`
	MmapSizeBytes int64 `mapstructure:"mmap_size_bytes" yaml:"mmap_size_bytes"`
	BusyTimeoutMS int64 `mapstructure:"busy_timeout_ms" yaml:"busy_timeout_ms"`
}

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
	Level         string `mapstructure:"level" yaml:"level"`
	Format        string `mapstructure:"format" yaml:"format"`
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir"`
}

// UpdaterConfig holds update-coordinator tuning knobs. Only Parallelism is
// read (as the coordinator's worker pool size); MaxRetries and
// RetryBaseBackoff are loaded but unused, and the coordinator does not retry
// failed fetches.
type UpdaterConfig struct {
	Parallelism      int           `mapstructure:"parallelism" yaml:"parallelism"`
	MaxRetries       int           `mapstructure:"max_retries" yaml:"max_retries"`
	RetryBaseBackoff time.Duration `mapstructure:"retry_base_backoff" yaml:"retry_base_backoff"`
}

const envPrefix = "FLM"

// Load reads configuration from (in ascending precedence) built-in defaults,
// an optional YAML file at path, and FLM_*-prefixed environment variables.
// path may be empty, in which case only defaults and the environment apply.
func Load(path string) (*Config, error) {
	_, cfg, err := newViper(path)
	return cfg, err
}

// newViper builds the Viper instance Load and NewWatcher share: defaults, the
// optional file at path, then the environment, unmarshalled and validated.
// The Watcher calls it again on every reload, so each reload rebuilds
// defaults, file and environment from scratch.
func newViper(path string) (*viper.Viper, *Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, nil, err
	}
	return v, &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("locale", "en")
	v.SetDefault("default_filter_list_expires_period", 12*time.Hour)
	v.SetDefault("app_name", "FilterListManager")
	v.SetDefault("version", "dev")
	v.SetDefault("request_timeout_ms", 30*time.Second)
	v.SetDefault("request_proxy_mode.mode", string(ProxyModeSystem))
	v.SetDefault("filter_list_type", string(FilterListTypeStandard))
	v.SetDefault("filters_compilation_policy.constants", []string{})
	v.SetDefault("database.path", "filter-list-manager.sqlite")
	v.SetDefault("database.cache_size_kb", 64000)
	v.SetDefault("database.mmap_size_bytes", 268435456)
	v.SetDefault("database.busy_timeout_ms", 5000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("updater.parallelism", 4)
	v.SetDefault("updater.max_retries", 2)
	v.SetDefault("updater.retry_base_backoff", 500*time.Millisecond)
}
