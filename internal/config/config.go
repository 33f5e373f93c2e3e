package config

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/viewkit/internal/errors"
)

const (
	// FileName is the configuration file looked up by default.
	FileName = "viewkit.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "VIEWKIT_"

	DefaultAddr      = ":8080"
	DefaultQueueSize = 256
	DefaultNamespace = "viewkit"
	DefaultTick      = time.Second
	DefaultKey       = "todos"
)

// Snapshot backends.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendS3     = "s3"
)

// Config is the complete server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
	Snapshot SnapshotConfig `yaml:"snapshot" envPrefix:"SNAPSHOT_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
	Host     HostConfig     `yaml:"host" envPrefix:"HOST_"`
	Metrics  MetricsConfig  `yaml:"metrics" envPrefix:"METRICS_"`
	Demo     DemoConfig     `yaml:"demo" envPrefix:"DEMO_"`

	path string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// SnapshotConfig selects where host state is persisted.
type SnapshotConfig struct {
	// Backend is one of memory, bolt or s3.
	Backend string `yaml:"backend" env:"BACKEND"`

	// Path is the bbolt database file.
	Path string `yaml:"path,omitempty" env:"PATH"`

	// Bucket, Prefix and Region configure the s3 backend.
	Bucket string `yaml:"bucket,omitempty" env:"BUCKET"`
	Prefix string `yaml:"prefix,omitempty" env:"PREFIX"`
	Region string `yaml:"region,omitempty" env:"REGION"`

	// Key is the snapshot key of the demo component.
	Key string `yaml:"key" env:"KEY"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// HostConfig tunes host components.
type HostConfig struct {
	QueueSize int `yaml:"queueSize" env:"QUEUE_SIZE"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// DemoConfig contains settings of the demo application.
type DemoConfig struct {
	// Tick is the clock stream interval.
	Tick time.Duration `yaml:"tick" env:"TICK"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Server:   ServerConfig{Addr: DefaultAddr},
		Snapshot: SnapshotConfig{Backend: BackendMemory, Key: DefaultKey},
		Log:      LogConfig{Level: "info", Format: "text"},
		Host:     HostConfig{QueueSize: DefaultQueueSize},
		Metrics:  MetricsConfig{Namespace: DefaultNamespace},
		Demo:     DemoConfig{Tick: DefaultTick},
	}
}

// Load reads path (if non-empty) and applies environment overrides from
// the process environment. A missing file is only an error when path was
// given explicitly.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, nil)
}

// LoadWithEnv is Load with an explicit environment. A nil environ means the
// process environment.
func LoadWithEnv(path string, environ map[string]string) (*Config, error) {
	cfg := New()

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.New("VK105").Wrap(err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		e := errors.New("VK100").WithLocation(path, 0).Wrap(err)
		if stderrors.Is(err, fs.ErrNotExist) {
			e.WithSuggestion("Create " + path + " or omit --config to use defaults")
		}
		return e
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.New("VK100").
			WithLocation(path, yamlLine(err)).
			WithSuggestion("Check that " + path + " is valid YAML").
			Wrap(err)
	}
	c.path = path
	return nil
}

// yamlLine extracts the first line number from a yaml.v3 error message
// ("yaml: line 3: ..."), or 0.
func yamlLine(err error) int {
	var line int
	msg := err.Error()
	if i := strings.Index(msg, "line "); i >= 0 {
		for _, r := range msg[i+len("line "):] {
			if r < '0' || r > '9' {
				break
			}
			line = line*10 + int(r-'0')
		}
	}
	return line
}

// applyDefaults fills in values an override left empty.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = BackendMemory
	}
	c.Snapshot.Backend = strings.ToLower(c.Snapshot.Backend)
	if c.Snapshot.Key == "" {
		c.Snapshot.Key = DefaultKey
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		return c.locate(errors.New("VK106").
			WithDetail("server.addr " + quote(c.Server.Addr) + " is not host:port").
			Wrap(err))
	}

	switch c.Snapshot.Backend {
	case BackendMemory:
	case BackendBolt:
		if c.Snapshot.Path == "" {
			return c.locate(errors.New("VK102").
				WithDetail("snapshot.path is required for the bolt backend").
				WithSuggestion("Set snapshot.path or VIEWKIT_SNAPSHOT_PATH"))
		}
	case BackendS3:
		if c.Snapshot.Bucket == "" {
			return c.locate(errors.New("VK102").
				WithDetail("snapshot.bucket is required for the s3 backend").
				WithSuggestion("Set snapshot.bucket or VIEWKIT_SNAPSHOT_BUCKET"))
		}
	default:
		return c.locate(errors.New("VK101").
			WithDetail("snapshot backend " + quote(c.Snapshot.Backend) + " is not supported").
			WithSuggestion("Use one of: memory, bolt, s3"))
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return c.locate(errors.New("VK103").
			WithDetail("log level " + quote(c.Log.Level) + " is not supported"))
	}
	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		return c.locate(errors.New("VK103").
			WithDetail("log format " + quote(c.Log.Format) + " is not supported").
			WithSuggestion("Use text or json"))
	}

	if c.Host.QueueSize <= 0 {
		return c.locate(errors.New("VK104").WithDetail("host.queueSize must be positive"))
	}
	if c.Demo.Tick <= 0 {
		return c.locate(errors.New("VK104").WithDetail("demo.tick must be positive"))
	}
	return nil
}

// LogLevel returns the slog level for Log.Level. Unknown levels map to Info.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// Marshal returns the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) locate(e *errors.Error) *errors.Error {
	if c.path != "" {
		e.WithLocation(c.path, 0)
	}
	return e
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func quote(s string) string {
	return `"` + s + `"`
}
