package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Config holds the cafe service settings loaded from .env and the environment.
type Config struct {
	HTTPAddr string

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	RedisHost string
	RedisPort string

	KafkaBroker  string
	ReviewsTopic string
	VisitsTopic  string

	ListingAPIURL     string
	ListingAPIKey     string
	ListingCacheTTL   time.Duration
	ReviewCacheTTL    time.Duration
	ListingMaxRetries int

	JWTSigningKey      string
	ShareBaseURL       string
	SearchRadiusMeters int
}

// Load reads an optional .env file and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8083"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "sipspotter"),
		DBUser:     getEnv("DB_USER", "sipspotter"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisHost: getEnv("REDIS_HOST", "localhost"),
		RedisPort: getEnv("REDIS_PORT", "6379"),

		KafkaBroker:  getEnv("KAFKA_BROKER", "localhost:9092"),
		ReviewsTopic: getEnv("REVIEWS_TOPIC", "reviews"),
		VisitsTopic:  getEnv("VISITS_TOPIC", "visit-reminders"),

		ListingAPIURL:     getEnv("LISTING_API_URL", "https://api.yelp.com/v3"),
		ListingAPIKey:     getEnv("LISTING_API_KEY", ""),
		ListingCacheTTL:   time.Duration(getEnvInt("LISTING_CACHE_TTL_SECONDS", 900)) * time.Second,
		ReviewCacheTTL:    time.Duration(getEnvInt("REVIEW_CACHE_TTL_SECONDS", 300)) * time.Second,
		ListingMaxRetries: getEnvInt("LISTING_MAX_RETRIES", 3),

		JWTSigningKey:      getEnv("JWT_SIGNING_KEY", ""),
		ShareBaseURL:       getEnv("SHARE_BASE_URL", "https://sipspotter.app"),
		SearchRadiusMeters: getEnvInt("SEARCH_RADIUS_METERS", 2000),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.DBHost + " port=" + c.DBPort + " user=" + c.DBUser +
		" password=" + c.DBPassword + " dbname=" + c.DBName + " sslmode=" + c.DBSSLMode
}

func MustInitPostgres(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg *Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisHost + ":" + cfg.RedisPort,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaReader(cfg *Config, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(cfg *Config, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
