package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	ServerPort  string
	ServiceName string
	CORSOrigins []string

	// Key-value store
	StoreBackend string
	BadgerPath   string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// AWS S3
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3UseSSL           string
	S3BucketName       string

	// RabbitMQ
	RabbitMQHost     string
	RabbitMQPort     string
	RabbitMQUser     string
	RabbitMQPassword string

	// Generative text
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	// Rate limiting
	AuthRateLimit  int
	AuthRateWindow time.Duration
}

// FileConfig mirrors the subset of Config that can be set from a YAML file.
// Environment variables still win over file values.
type FileConfig struct {
	ServerPort     string   `yaml:"serverPort"`
	CORSOrigins    []string `yaml:"corsOrigins"`
	StoreBackend   string   `yaml:"storeBackend"`
	BadgerPath     string   `yaml:"badgerPath"`
	DBHost         string   `yaml:"dbHost"`
	DBPort         string   `yaml:"dbPort"`
	DBName         string   `yaml:"dbName"`
	RedisHost      string   `yaml:"redisHost"`
	RedisPort      string   `yaml:"redisPort"`
	S3BucketName   string   `yaml:"s3BucketName"`
	AWSEndpoint    string   `yaml:"awsEndpoint"`
	RabbitMQHost   string   `yaml:"rabbitmqHost"`
	GeminiModel    string   `yaml:"geminiModel"`
	GeminiTimeout  string   `yaml:"geminiTimeout"`
	JWTTTL         string   `yaml:"jwtTTL"`
	AuthRateLimit  int      `yaml:"authRateLimit"`
	AuthRateWindow string   `yaml:"authRateWindow"`
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	file, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", or(file.ServerPort, "8080")),
		ServiceName: getEnv("SERVICE_NAME", "creatitube"),
		CORSOrigins: file.CORSOrigins,

		StoreBackend: getEnv("STORE_BACKEND", or(file.StoreBackend, "redis")),
		BadgerPath:   getEnv("BADGER_PATH", or(file.BadgerPath, "data/badger")),

		DBHost:     getEnv("DB_HOST", or(file.DBHost, "localhost")),
		DBPort:     getEnv("DB_PORT", or(file.DBPort, "5432")),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", or(file.DBName, "creatitube")),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", or(file.RedisHost, "localhost")),
		RedisPort:     getEnv("REDIS_PORT", or(file.RedisPort, "6379")),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTTTL:    getEnvDuration("JWT_TTL", file.JWTTTL, 24*time.Hour),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", file.AWSEndpoint),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),
		S3BucketName:       getEnv("S3_BUCKET_NAME", or(file.S3BucketName, "creatitube-media")),

		RabbitMQHost:     getEnv("RABBITMQ_HOST", or(file.RabbitMQHost, "localhost")),
		RabbitMQPort:     getEnv("RABBITMQ_PORT", "5672"),
		RabbitMQUser:     getEnv("RABBITMQ_USER", "guest"),
		RabbitMQPassword: getEnv("RABBITMQ_PASSWORD", "guest"),

		GeminiAPIKey:  getEnv("API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", or(file.GeminiModel, "gemini-2.5-flash")),
		GeminiTimeout: getEnvDuration("GEMINI_TIMEOUT", file.GeminiTimeout, 20*time.Second),

		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", orInt(file.AuthRateLimit, 20)),
		AuthRateWindow: getEnvDuration("AUTH_RATE_WINDOW", file.AuthRateWindow, time.Minute),
	}

	if len(config.CORSOrigins) == 0 {
		config.CORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}

	switch config.StoreBackend {
	case "redis", "postgres", "badger":
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", config.StoreBackend)
	}

	return config, nil
}

// RedisAddr returns host:port for the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// PostgresDSN builds the DSN used by the GORM postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func loadFile(path string) (FileConfig, error) {
	var file FileConfig
	if path == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config: %w", err)
	}
	return file, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration takes the first positive duration from the environment,
// then the file, then defaultValue.
func getEnvDuration(key, fileValue string, defaultValue time.Duration) time.Duration {
	for _, value := range []string{os.Getenv(key), fileValue} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func orInt(value, fallback int) int {
	if value != 0 {
		return value
	}
	return fallback
}
