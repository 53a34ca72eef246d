package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port                    string
	Env                     string
	DBDriver                string
	DatabaseURL             string
	JWTSecret               string
	JWTTTL                  time.Duration
	FeedScope               string
	LogLevel                string
	LogFormat               string
	FirebaseCredentialsPath string
	MongoURI                string
	MongoDatabase           string
	KafkaBrokers            []string
	KafkaTopic              string
	KafkaTimeout            time.Duration
	NatsURL                 string
	NatsSubjectPrefix       string
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
}

// Load reads the configuration from the environment, after loading .env if present
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, assuming environment variables are set.")
	}
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		DBDriver:                getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:             getEnv("DATABASE_URL", "host=localhost user=postgres dbname=microblog port=5432 sslmode=disable"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		JWTTTL:                  getDuration("JWT_TTL", 72*time.Hour),
		FeedScope:               getEnv("FEED_SCOPE", "global"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "microblog"),
		KafkaBrokers:            getList("KAFKA_BROKERS"),
		KafkaTopic:              getEnv("KAFKA_TOPIC", "microblog.events"),
		KafkaTimeout:            getDuration("KAFKA_TIMEOUT", 2*time.Second),
		NatsURL:                 getEnv("NATS_URL", ""),
		NatsSubjectPrefix:       getEnv("NATS_SUBJECT_PREFIX", "microblog"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		RedisDB:                 getInt("REDIS_DB", 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

// getList splits a comma separated variable, dropping blanks
func getList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
