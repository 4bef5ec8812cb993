package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults for the client endpoint and the test server.
const (
	DefaultEndpoint = "ws://localhost:8181"
	DefaultListen   = ":8181"
	DefaultInterval = 5 * time.Second
	DefaultLogLevel = "info"
)

// Config represents the global ~/.wschat/config.toml.
type Config struct {
	Client ClientConfig `toml:"client"`
	Server ServerConfig `toml:"server"`
}

// ClientConfig configures the chat client.
type ClientConfig struct {
	Endpoint string `toml:"endpoint"`
	SeedDemo bool   `toml:"seed_demo"`
	LogLevel string `toml:"log_level"`
}

// ServerConfig configures the broadcast test server.
type ServerConfig struct {
	Listen      string          `toml:"listen"`
	Interval    time.Duration   `toml:"interval"`
	WelcomeFrom string          `toml:"welcome_from"`
	WelcomeText string          `toml:"welcome_text"`
	LogLevel    string          `toml:"log_level"`
	Messages    []CannedMessage `toml:"messages"`
}

// CannedMessage is one entry of the server's cyclic message list.
type CannedMessage struct {
	From    string `toml:"from"`
	Message string `toml:"message"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			Endpoint: DefaultEndpoint,
			SeedDemo: true,
			LogLevel: DefaultLogLevel,
		},
		Server: ServerConfig{
			Listen:      DefaultListen,
			Interval:    DefaultInterval,
			WelcomeFrom: "Server",
			WelcomeText: "Добро пожаловать в чат!",
			LogLevel:    DefaultLogLevel,
		},
	}
}

// Load reads config from the given path on top of Default. Returns nil and
// the error if the file is missing or invalid.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault reads config from path, falling back to Default when the file
// does not exist. Parse errors are still returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
