package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig     `mapstructure:"admin"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	Google    GoogleConfig    `mapstructure:"google"`
	Sentiment SentimentConfig `mapstructure:"sentiment"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Storage   StorageConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Runtime flags set from the command line, not the config file.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port        string
	Mode        string
	FrontendURL string `mapstructure:"frontend_url"`
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret          string        `mapstructure:"secret"`
	ExpireTime      time.Duration `mapstructure:"expire_hours"`
	AdminExpireTime time.Duration `mapstructure:"admin_expire_hours"`
}

// AdminConfig seeds the initial admin account at migration time.
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// PaymentConfig holds the PayHere merchant credentials and endpoints.
type PaymentConfig struct {
	MerchantID     string `mapstructure:"merchant_id"`
	MerchantSecret string `mapstructure:"merchant_secret"`
	Currency       string `mapstructure:"currency"`
	Sandbox        bool   `mapstructure:"sandbox"`
	ReturnURL      string `mapstructure:"return_url"`
	CancelURL      string `mapstructure:"cancel_url"`
	NotifyURL      string `mapstructure:"notify_url"`
}

type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

type SentimentConfig struct {
	Python         string        `mapstructure:"python"`
	ScriptPath     string        `mapstructure:"script_path"`
	TimeoutSeconds time.Duration `mapstructure:"timeout_seconds"`
}

// QuizConfig carries the scoring denominator policy: "all-questions"
// scores against the quiz's full question count, "answered-only" against
// the submitted answers that matched a question.
type QuizConfig struct {
	ScoringPolicy string `mapstructure:"scoring_policy"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

const (
	ScoringAllQuestions = "all-questions"
	ScoringAnsweredOnly = "answered-only"
)

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("MCQUIZ")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("server.frontend_url", "FRONTEND_URL")

	// Admin seed
	viper.BindEnv("admin.email", "ADMIN_EMAIL")
	viper.BindEnv("admin.password", "ADMIN_PASSWORD")

	// SMTP
	viper.BindEnv("smtp.host", "SMTP_HOST")
	viper.BindEnv("smtp.port", "SMTP_PORT")
	viper.BindEnv("smtp.username", "SMTP_USERNAME")
	viper.BindEnv("smtp.password", "SMTP_PASSWORD")
	viper.BindEnv("smtp.from", "SMTP_FROM")

	// Payment gateway
	viper.BindEnv("payment.merchant_id", "PAYHERE_MERCHANT_ID")
	viper.BindEnv("payment.merchant_secret", "PAYHERE_MERCHANT_SECRET")
	viper.BindEnv("payment.return_url", "PAYHERE_RETURN_URL")
	viper.BindEnv("payment.cancel_url", "PAYHERE_CANCEL_URL")
	viper.BindEnv("payment.notify_url", "PAYHERE_NOTIFY_URL")

	// Google OAuth
	viper.BindEnv("google.client_id", "GOOGLE_CLIENT_ID")
	viper.BindEnv("google.client_secret", "GOOGLE_CLIENT_SECRET")
	viper.BindEnv("google.redirect_url", "GOOGLE_REDIRECT_URL")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.JWT.AdminExpireTime = cfg.JWT.AdminExpireTime * time.Hour
	if cfg.JWT.AdminExpireTime == 0 {
		cfg.JWT.AdminExpireTime = 8 * time.Hour
	}
	cfg.Sentiment.TimeoutSeconds = cfg.Sentiment.TimeoutSeconds * time.Second
	if cfg.Sentiment.TimeoutSeconds == 0 {
		cfg.Sentiment.TimeoutSeconds = 10 * time.Second
	}
	if cfg.Quiz.ScoringPolicy == "" {
		cfg.Quiz.ScoringPolicy = ScoringAllQuestions
	}
	if cfg.Quiz.ScoringPolicy != ScoringAllQuestions && cfg.Quiz.ScoringPolicy != ScoringAnsweredOnly {
		return nil, fmt.Errorf("invalid quiz.scoring_policy %q", cfg.Quiz.ScoringPolicy)
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "LKR"
	}

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}
