package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	StorageMongoDB  = "mongodb"
	StoragePostgres = "postgres"

	defaultDatabase = "inventory_store"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	MongoDB  MongoDBConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host         string   // Адрес хоста (по умолчанию 0.0.0.0)
	Port         string   // Порт сервера (по умолчанию 3000)
	AllowOrigins []string // Разрешенные CORS источники, "*" - любые
}

type StorageConfig struct {
	Driver string // mongodb или postgres
}

type MongoDBConfig struct {
	URI      string // URI подключения к MongoDB
	Database string // Имя базы данных; по умолчанию берется из пути URI
}

type PostgresConfig struct {
	DSN string
}

type KafkaConfig struct {
	Enabled bool     // События публикуются только при KAFKA_ENABLED=true
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий изменения склада
}

type LogConfig struct {
	Level        string
	LogstashAddr string // Пустой адрес - логи только в stdout
}

func Load() (*Config, error) {
	mongoURI := getEnv("MONGO_URI", getEnv("MONGODB_URI", "mongodb://localhost:27017/inventory_store"))

	database := os.Getenv("MONGODB_DATABASE")
	if database == "" {
		name, err := databaseFromURI(mongoURI)
		if err != nil {
			return nil, err
		}
		database = name
	}

	kafkaEnabled, err := parseBool("KAFKA_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("PORT", getEnv("SERVER_PORT", "3000")),
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMongoDB)),
		},
		MongoDB: MongoDBConfig{
			URI:      mongoURI,
			Database: database,
		},
		Postgres: PostgresConfig{
			DSN: getEnv("POSTGRES_DSN", "host=localhost port=5432 user=postgres password=postgres dbname=inventory_store sslmode=disable"),
		},
		Kafka: KafkaConfig{
			Enabled: kafkaEnabled,
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "inventory_events"),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: os.Getenv("LOGSTASH_ADDR"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMongoDB, StoragePostgres:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: must be %s or %s", c.Storage.Driver, StorageMongoDB, StoragePostgres)
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Server.Port)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED=true")
	}

	for _, origin := range c.Server.AllowOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid CORS origin %q", origin)
		}
	}
	return nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// databaseFromURI возвращает имя базы из пути URI или inventory_store
func databaseFromURI(uri string) (string, error) {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if cs.Database == "" {
		return defaultDatabase, nil
	}
	return cs.Database, nil
}

func parseBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return parsed, nil
}

func splitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
