package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server          ServerConfig
	OrdersService   ServiceConfig
	UsersService    ServiceConfig
	ProductsService ServiceConfig
	Redis           RedisConfig
	Database        DatabaseConfig
	Kafka           KafkaConfig
	Features        FeatureFlags
	Log             LogConfig
	RateLimit       RateLimitConfig
	Drafts          DraftConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Version         string
}

// ServiceConfig describes one backend service. A zero Timeout means the
// client waits for the backend indefinitely.
type ServiceConfig struct {
	Name    string
	BaseURL string
	Timeout time.Duration
	APIKey  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type KafkaConfig struct {
	Brokers       []string
	AuditTopic    string
	ConsumerGroup string
	WriteTimeout  time.Duration
}

type FeatureFlags struct {
	EnableRedisDrafts bool
	EnableAuditLog    bool
	EnableAuditEvents bool
}

type LogConfig struct {
	Level  string
	Format string
}

type RateLimitConfig struct {
	Enabled bool
	Rate    float64
	Burst   int
}

// DraftConfig controls how long an unsaved editor session survives.
type DraftConfig struct {
	TTL time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			Version:         getEnvString("CONSOLE_VERSION", "1.0.0"),
		},
		OrdersService: ServiceConfig{
			Name:    "orders",
			BaseURL: getEnvString("ORDERS_SERVICE_URL", "http://localhost:8083"),
			Timeout: getEnvDuration("ORDERS_SERVICE_TIMEOUT", 0),
			APIKey:  getEnvString("ORDERS_SERVICE_API_KEY", ""),
		},
		UsersService: ServiceConfig{
			Name:    "users",
			BaseURL: getEnvString("USERS_SERVICE_URL", "http://localhost:8081"),
			Timeout: getEnvDuration("USERS_SERVICE_TIMEOUT", 0),
			APIKey:  getEnvString("USERS_SERVICE_API_KEY", ""),
		},
		ProductsService: ServiceConfig{
			Name:    "products",
			BaseURL: getEnvString("PRODUCTS_SERVICE_URL", "http://localhost:8082"),
			Timeout: getEnvDuration("PRODUCTS_SERVICE_TIMEOUT", 0),
			APIKey:  getEnvString("PRODUCTS_SERVICE_API_KEY", ""),
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "acme"),
			Password:     getEnvString("DB_PASSWORD", "acme"),
			Name:         getEnvString("DB_NAME", "acme_console"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 2),
			MaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", []string{"localhost:9092"}),
			AuditTopic:    getEnvString("KAFKA_AUDIT_TOPIC", "console.audit"),
			ConsumerGroup: getEnvString("KAFKA_CONSUMER_GROUP", "consolectl-audit"),
			WriteTimeout:  getEnvDuration("KAFKA_WRITE_TIMEOUT", 10*time.Second),
		},
		Features: FeatureFlags{
			EnableRedisDrafts: getEnvBool("ENABLE_REDIS_DRAFTS", false),
			EnableAuditLog:    getEnvBool("ENABLE_AUDIT_LOG", false),
			EnableAuditEvents: getEnvBool("ENABLE_AUDIT_EVENTS", false),
		},
		Log: LogConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
			Rate:    getEnvFloat("RATE_LIMIT_RPS", 50),
			Burst:   getEnvInt("RATE_LIMIT_BURST", 100),
		},
		Drafts: DraftConfig{
			TTL: getEnvDuration("DRAFT_TTL", 30*time.Minute),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("15s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	items := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
