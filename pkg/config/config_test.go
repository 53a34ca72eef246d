package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "JWT_TTL", "FEED_SCOPE", "KAFKA_BROKERS", "KAFKA_TIMEOUT", "REDIS_DB"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "global", cfg.FeedScope)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Second, cfg.KafkaTimeout)
	assert.Zero(t, cfg.RedisDB)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("FEED_SCOPE", "following")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")
	t.Setenv("KAFKA_TIMEOUT", "500ms")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "following", cfg.FeedScope)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 500*time.Millisecond, cfg.KafkaTimeout)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestInitDBSqlite(t *testing.T) {
	db, err := InitDB(&Config{DBDriver: "sqlite", DatabaseURL: "file::memory:", Env: "test"})
	require.NoError(t, err)
	defer db.CloseDB()
	assert.Nil(t, db.Mongo)
	assert.NoError(t, db.SQL.Exec("SELECT 1").Error)
}

func TestInitDBUnknownDriver(t *testing.T) {
	_, err := InitDB(&Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
