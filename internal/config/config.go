package config

import (
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`
	LLM     LLMConfig     `envPrefix:"LLM_"`
	Kafka   KafkaConfig   `envPrefix:"KAFKA_"`
}

type ServerConfig struct {
	Host            string `env:"HOST" envDefault:"0.0.0.0"`
	Port            string `env:"PORT" envDefault:"8080"`
	CORSOriginRegex string `env:"CORS_ORIGIN_REGEX" envDefault:".*"`
	// DefaultAgentID backs requests without an X-Agent-ID header until a
	// real authentication layer replaces the identity middleware.
	DefaultAgentID uint `env:"DEFAULT_AGENT_ID" envDefault:"1"`
}

func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type StorageConfig struct {
	// Driver selects the backing store. "memory" only supports user and
	// activity operations; tickets and chat need "postgres".
	Driver   string `env:"DRIVER" envDefault:"postgres"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Database string `env:"DB_DATABASE" envDefault:"support_desk"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (c StorageConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

type LLMConfig struct {
	GoogleAIAPIKey string `env:"GOOGLE_AI_API_KEY"`
	Model          string `env:"MODEL" envDefault:"googleai/gemini-2.0-flash"`
}

type KafkaConfig struct {
	// Brokers empty disables the activity event producer.
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"support-desk.activities"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
