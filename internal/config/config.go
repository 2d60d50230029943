package config

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"
)

// Config 汇总应用的全部配置。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	TLS      TLSConfig      `mapstructure:"tls"`
	Root     RootConfig     `mapstructure:"root"`
	Content  ContentConfig  `mapstructure:"content"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 定义监听地址配置。
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Network bool   `mapstructure:"network"`
}

// Addr returns the host:port string the listener binds to.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// HTTPConfig 定义 HTTP 服务配置。
type HTTPConfig struct {
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// TLSConfig 定义证书来源配置。文件路径为空时在启动阶段自动生成自签名证书。
type TLSConfig struct {
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

// RootConfig 定义静态资源根目录配置。
type RootConfig struct {
	Dir           string   `mapstructure:"dir"`
	RequiredFiles []string `mapstructure:"required_files"`
}

// ContentConfig 定义内容解析配置。
type ContentConfig struct {
	// CacheTTL bounds how long a resolved file's metadata may be served
	// without re-statting it. Zero disables the cache.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// SecurityConfig 定义安全相关配置。
type SecurityConfig struct {
	// AllowedOrigin is reflected into Access-Control-Allow-Origin. The
	// wildcard default matches the reference dev behaviour; lock it down
	// when the served app talks to credentialed endpoints.
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// MetricsConfig 定义 Prometheus 指标配置。
type MetricsConfig struct {
	Enabled   bool      `mapstructure:"enabled"`
	Namespace string    `mapstructure:"namespace"`
	Subsystem string    `mapstructure:"subsystem"`
	Token     string    `mapstructure:"token"`
	Buckets   []float64 `mapstructure:"buckets"`
}

// LogConfig 定义日志配置。
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("config: tls cert_file and key_file must be provided together")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Server.Port)
	}
	if c.Root.Dir == "" {
		return fmt.Errorf("config: root dir must not be empty")
	}
	return nil
}
