package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	AssetsDir  string `yaml:"assets-dir" env:"ASSETS_DIR" env-default:""`
	Redis      Redis  `yaml:"redis"`
	Match      Match  `yaml:"match"`
}

type Redis struct {
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
}

// Match tunes the match driver. FixedFirst makes the second arrival always move first instead of a coin flip.
type Match struct {
	PollBackoff time.Duration `yaml:"poll-backoff" env:"MATCH_POLL_BACKOFF" env-default:"300ms"`
	FixedFirst  bool          `yaml:"fixed-first" env:"MATCH_FIXED_FIRST" env-default:"false"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"MATCH_SNAPSHOT_TTL" env-default:"1h"`
}

// Load - reads the config file at path, environment variables override it.
// Without a file only the environment and the defaults are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	default:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
