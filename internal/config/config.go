package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	Worker     WorkerConfig
	Database   DatabaseConfig
	MinIO      MinIOConfig
	RabbitMQ   RabbitMQConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Media      MediaConfig
	Engagement EngagementConfig
	RateLimit  RateLimitConfig
	Breaker    BreakerConfig
	Cache      CacheConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type WorkerConfig struct {
	MaxRetries      int           `envconfig:"WORKER_MAX_RETRIES" default:"5"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
	// RemovalsPerSecond throttles object removals issued by the cleanup worker.
	RemovalsPerSecond float64 `envconfig:"WORKER_REMOVALS_PER_SECOND" default:"10"`
	RemovalBurst      int     `envconfig:"WORKER_REMOVAL_BURST" default:"5"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"vidtube"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"vidtube"`
	DBName   string `envconfig:"POSTGRES_DB" default:"vidtube"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	Migrate  bool   `envconfig:"POSTGRES_MIGRATE" default:"true"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MinIOConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	Bucket    string `envconfig:"MINIO_BUCKET" default:"media"`
	UseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	// PublicBaseURL prefixes object keys to form the media URLs stored on videos.
	PublicBaseURL string `envconfig:"MINIO_PUBLIC_BASE_URL" default:"http://localhost:9000/media"`
}

type RabbitMQConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"vidtube"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"vidtube"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AuthConfig struct {
	JWTSecret string `envconfig:"AUTH_JWT_SECRET" required:"true"`
	JWTIssuer string `envconfig:"AUTH_JWT_ISSUER" default:""`
}

type MediaConfig struct {
	FFmpegPath    string `envconfig:"MEDIA_FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath   string `envconfig:"MEDIA_FFPROBE_PATH" default:"ffprobe"`
	TempDir       string `envconfig:"MEDIA_TEMP_DIR" default:"/tmp/vidtube"`
	MaxUploadSize int64  `envconfig:"MEDIA_MAX_UPLOAD_SIZE" default:"1073741824"`
}

type EngagementConfig struct {
	AllowSelfSubscription bool `envconfig:"ENGAGEMENT_ALLOW_SELF_SUBSCRIPTION" default:"true"`
}

type RateLimitConfig struct {
	Enabled  bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	Requests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"60"`
	Window   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

type BreakerConfig struct {
	MaxFailures uint32        `envconfig:"BREAKER_MAX_FAILURES" default:"5"`
	Interval    time.Duration `envconfig:"BREAKER_INTERVAL" default:"60s"`
	Timeout     time.Duration `envconfig:"BREAKER_TIMEOUT" default:"30s"`
}

type CacheConfig struct {
	VideoTTL time.Duration `envconfig:"CACHE_VIDEO_TTL" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
