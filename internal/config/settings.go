package config

import (
	"errors"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultDaemonAddress    = "127.0.0.1:7788"
	defaultLoginDelayMS     = 300
	defaultSearchDebounceMS = 250

	// BaseURLEnvVar overrides remote.base_url.
	BaseURLEnvVar = "NOTESAPP_API_BASE_URL"

	StorageBackendBbolt = "bbolt"
	StorageBackendFile  = "file"
)

type Config struct {
	Remote  RemoteConfig  `toml:"remote"`
	Session SessionConfig `toml:"session"`
	UI      UIConfig      `toml:"ui"`
	Daemon  DaemonConfig  `toml:"daemon"`
	Logging LoggingConfig `toml:"logging"`
}

type RemoteConfig struct {
	BaseURL string `toml:"base_url"`
}

type SessionConfig struct {
	LoginDelayMS *int `toml:"login_delay_ms"`
}

type UIConfig struct {
	SearchDebounceMS int `toml:"search_debounce_ms"`
}

type DaemonConfig struct {
	Address string `toml:"address"`
	Backend string `toml:"backend"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	delay := defaultLoginDelayMS
	return Config{
		Session: SessionConfig{LoginDelayMS: &delay},
		UI:      UIConfig{SearchDebounceMS: defaultSearchDebounceMS},
		Daemon: DaemonConfig{
			Address: defaultDaemonAddress,
			Backend: StorageBackendBbolt,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFromPath(path)
}

func LoadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RemoteBaseURL resolves the notes service location: env override, then
// remote.base_url, then the local daemon. Trailing slashes are dropped.
func (c Config) RemoteBaseURL() string {
	if raw := strings.TrimSpace(os.Getenv(BaseURLEnvVar)); raw != "" {
		return strings.TrimRight(raw, "/")
	}
	if raw := strings.TrimRight(strings.TrimSpace(c.Remote.BaseURL), "/"); raw != "" {
		return raw
	}
	return c.DaemonBaseURL()
}

func (c Config) LoginDelay() time.Duration {
	if c.Session.LoginDelayMS == nil || *c.Session.LoginDelayMS < 0 {
		return defaultLoginDelayMS * time.Millisecond
	}
	return time.Duration(*c.Session.LoginDelayMS) * time.Millisecond
}

func (c Config) SearchDebounce() time.Duration {
	if c.UI.SearchDebounceMS <= 0 {
		return defaultSearchDebounceMS * time.Millisecond
	}
	return time.Duration(c.UI.SearchDebounceMS) * time.Millisecond
}

func (c Config) DaemonAddress() string {
	addr := strings.TrimSpace(c.Daemon.Address)
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultDaemonAddress
	}
	return addr
}

func (c Config) DaemonBaseURL() string {
	return "http://" + c.DaemonAddress()
}

func (c Config) StorageBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.Daemon.Backend)) {
	case StorageBackendFile:
		return StorageBackendFile
	default:
		return StorageBackendBbolt
	}
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

// Effective returns the configuration with every default and override resolved.
func (c Config) Effective() Config {
	delay := int(c.LoginDelay() / time.Millisecond)
	return Config{
		Remote:  RemoteConfig{BaseURL: c.RemoteBaseURL()},
		Session: SessionConfig{LoginDelayMS: &delay},
		UI:      UIConfig{SearchDebounceMS: int(c.SearchDebounce() / time.Millisecond)},
		Daemon: DaemonConfig{
			Address: c.DaemonAddress(),
			Backend: c.StorageBackend(),
		},
		Logging: LoggingConfig{Level: c.LogLevel()},
	}
}

func (c Config) MarshalTOML() ([]byte, error) {
	return toml.Marshal(c)
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
