package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var boundFlags *pflag.FlagSet

// BindFlags registers a cobra/pflag set whose values override file and env
// configuration on the next Load. Only flags the user actually set win.
func BindFlags(flags *pflag.FlagSet) {
	boundFlags = flags
}

func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/devserve/")

	// Environment variable settings
	v.SetEnvPrefix("DEVSERVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if boundFlags != nil {
		for flag, key := range map[string]string{
			"host":    "server.host",
			"port":    "server.port",
			"network": "server.network",
			"cert":    "tls.cert_file",
			"key":     "tls.key_file",
			"root":    "root.dir",
		} {
			if f := boundFlags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config file is fine, defaults/env/flags cover everything.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// --network is shorthand for binding every interface.
	if cfg.Server.Network {
		cfg.Server.Host = "0.0.0.0"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8443)
	v.SetDefault("server.network", false)

	v.SetDefault("http.shutdown_timeout", "15s")

	v.SetDefault("root.dir", ".")
	v.SetDefault("root.required_files", []string{"index.html", "app.js", "styles.css"})

	v.SetDefault("content.cache_ttl", "2s")

	v.SetDefault("security.allowed_origin", "*")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "devserve")
	v.SetDefault("metrics.subsystem", "http")
}
