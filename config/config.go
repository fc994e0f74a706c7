package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	mu sync.RWMutex `yaml:"-"`

	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Web       WebConfig       `yaml:"web"`
	Notify    NotifyConfig    `yaml:"notify"`
	Messaging MessagingConfig `yaml:"messaging"`
}

type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// NotifyConfig points at the viewer gateway. Fallback is tried when the
// primary endpoint is unreachable or answers non-2xx.
type NotifyConfig struct {
	PrimaryURL  string        `yaml:"primary_url"`
	FallbackURL string        `yaml:"fallback_url"`
	Timeout     time.Duration `yaml:"timeout"`
}

type MessagingConfig struct {
	Kafka         KafkaConfig `yaml:"kafka"`
	MQTT          MQTTConfig  `yaml:"mqtt"`
	PlanningTopic string      `yaml:"planning_topic"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
}

type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
}

func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{Path: "vdtms.db"},
			Postgres: PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "vdtms",
				User:     "vdtms",
				Password: "",
				SSLMode:  "disable",
			},
		},
		Redis: RedisConfig{
			Address:  "localhost:6379",
			Password: "",
			DB:       0,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 8084,
		},
		Notify: NotifyConfig{
			PrimaryURL:  "http://localhost:3001/planning-events",
			FallbackURL: "http://127.0.0.1:3002/planning-events",
			Timeout:     3 * time.Second,
		},
		Messaging: MessagingConfig{
			Kafka:         KafkaConfig{Brokers: nil},
			MQTT:          MQTTConfig{Broker: "", ClientID: "vdtms-core"},
			PlanningTopic: "vdtms.planning",
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
