package internal

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CHAT_EXPLORER_DATA_DIR
const EnvPrefix = "CHAT_EXPLORER"

// Config keys
const (
	KeyDataDir      = "data_dir"
	KeyAddr         = "addr"
	KeyPageSize     = "page_size"
	KeyMaxWalkSteps = "max_walk_steps"
	KeyListDepth    = "list_depth"
	KeyCacheMaxSize = "cache.max_bytes"
	KeyCacheTTL     = "cache.ttl"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyVerbose      = "verbose"
)

// Config is the resolved runtime configuration
type Config struct {
	DataDir      string
	Addr         string
	PageSize     int
	MaxWalkSteps int
	ListDepth    int
	CacheMaxSize int
	CacheTTL     time.Duration
	LogLevel     string
	LogFormat    string
	Verbose      bool
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataDir, "data")
	v.SetDefault(KeyAddr, "127.0.0.1:8080")
	v.SetDefault(KeyPageSize, DefaultPageSize)
	v.SetDefault(KeyMaxWalkSteps, DefaultMaxWalkSteps)
	v.SetDefault(KeyListDepth, DefaultListDepth)
	v.SetDefault(KeyCacheMaxSize, DefaultCacheMaxBytes)
	v.SetDefault(KeyCacheTTL, time.Duration(0))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "auto")
}

// InitViper loads .env, the optional config file and environment overrides
// into v. A missing config file is not an error unless configPath names one.
func InitViper(v *viper.Viper, configPath string) error {
	_ = godotenv.Load(".env")

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("chat-explorer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "chat-explorer"))
		}
	}

	err := v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	} else if err != nil {
		return errors.Wrap(err, "read config")
	}
	return nil
}

// ConfigFrom resolves a Config from v
func ConfigFrom(v *viper.Viper) Config {
	cfg := Config{
		DataDir:      v.GetString(KeyDataDir),
		Addr:         v.GetString(KeyAddr),
		PageSize:     v.GetInt(KeyPageSize),
		MaxWalkSteps: v.GetInt(KeyMaxWalkSteps),
		ListDepth:    v.GetInt(KeyListDepth),
		CacheMaxSize: v.GetInt(KeyCacheMaxSize),
		CacheTTL:     v.GetDuration(KeyCacheTTL),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		Verbose:      v.GetBool(KeyVerbose),
	}
	if cfg.Verbose && cfg.LogLevel != "trace" {
		cfg.LogLevel = "debug"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.MaxWalkSteps <= 0 {
		cfg.MaxWalkSteps = DefaultMaxWalkSteps
	}
	if cfg.ListDepth <= 0 {
		cfg.ListDepth = DefaultListDepth
	}
	if cfg.CacheMaxSize <= 0 {
		cfg.CacheMaxSize = DefaultCacheMaxBytes
	}
	return cfg
}
