package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration, loaded from environment
// variables (HIRELENS_ prefix) with an optional YAML file underneath.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	HTTPPort string `mapstructure:"http_port"`

	DB      DBConfig      `mapstructure:"db"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Storage StorageConfig `mapstructure:"storage"`
	Worker  WorkerConfig  `mapstructure:"worker"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds the lib/pq connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type StorageConfig struct {
	// Backend selects the file storage implementation: "s3" or "local".
	Backend   string `mapstructure:"backend"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	AWSRegion string `mapstructure:"aws_region"`
	LocalRoot string `mapstructure:"local_root"`
}

type WorkerConfig struct {
	Count      int `mapstructure:"count"`
	QueueName  string `mapstructure:"queue_name"`
	MaxRetries int `mapstructure:"max_retries"`
}

// Load reads configuration from the optional file path and the environment.
func Load(file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("http_port", "8080")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "hirelens")
	v.SetDefault("db.name", "hirelens")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.prefix", "uploads")
	v.SetDefault("storage.local_root", "./data")
	v.SetDefault("worker.count", 4)
	v.SetDefault("worker.queue_name", "hirelens:parse")
	v.SetDefault("worker.max_retries", 3)

	v.SetEnvPrefix("HIRELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
