package config

import (
	"fmt"
	"net"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	GRPCPort   string  `yaml:"grpc-port" env:"GRPC_PORT" env-default:"50051"`
	Redis      Redis   `yaml:"redis"`
	Session    Session `yaml:"session"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Session holds the texts sent to players and the per-connection event buffer.
type Session struct {
	WaitingMessage              string `yaml:"waiting-message" env-default:"Waiting for another player..."`
	OpponentDisconnectedMessage string `yaml:"opponent-disconnected-message" env-default:"Opponent disconnected"`
	CapacityMessage             string `yaml:"capacity-message" env-default:"Server supports two players only"`
	SinkBufferSize              int    `yaml:"sink-buffer-size" env:"SINK_BUFFER_SIZE" env-default:"64"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Session.SinkBufferSize <= 0 {
		return nil, fmt.Errorf("sink-buffer-size must be positive, got %d", config.Session.SinkBufferSize)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return net.JoinHostPort(that.Host, that.Port)
}
