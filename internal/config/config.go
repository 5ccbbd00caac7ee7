package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendAirtable = "airtable"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Airtable  AirtableConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Slack     SlackConfig
	Report    ReportConfig
	Reminder  ReminderConfig
	Archive   ArchiveConfig
	RateLimit RateLimitConfig
	JWT       JWTConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StoreConfig struct {
	Backend string // airtable | mongo | memory
}

type AirtableConfig struct {
	APIKey    string
	BaseID    string
	TableName string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SlackConfig struct {
	APIToken         string
	ScrumMasterEmail string
	Disabled         bool
}

type ReportConfig struct {
	// Roster lists expected member emails; enables missing-member reporting
	// and is the default recipient list for scheduled reminders.
	Roster []string
	// FoldBlockerCase groups blocker texts case-insensitively.
	FoldBlockerCase bool
}

type ReminderConfig struct {
	Cron string // cron spec for scheduled reminders; empty disables
}

type ArchiveConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file.
// Missing required values are a startup-time configuration error, never a
// runtime one.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("STORE_BACKEND", BackendAirtable)
	viper.SetDefault("MONGODB_DATABASE", "standup")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("RATE_LIMIT_RPS", 5.0)
	viper.SetDefault("RATE_LIMIT_BURST", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("JWT_TOKEN_TTL", 60)
	viper.SetDefault("MINIO_BUCKET", "standup-reports")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Store: StoreConfig{
			Backend: strings.ToLower(viper.GetString("STORE_BACKEND")),
		},
		Airtable: AirtableConfig{
			APIKey:    os.Getenv("AIRTABLE_API_KEY"),
			BaseID:    viper.GetString("AIRTABLE_BASE_ID"),
			TableName: viper.GetString("AIRTABLE_TABLE_NAME"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Slack: SlackConfig{
			APIToken:         os.Getenv("SLACK_API_TOKEN"),
			ScrumMasterEmail: viper.GetString("SCRUM_MASTER_EMAIL"),
			Disabled:         viper.GetBool("NOTIFICATIONS_DISABLED"),
		},
		Report: ReportConfig{
			Roster:          splitList(viper.GetString("TEAM_ROSTER")),
			FoldBlockerCase: viper.GetBool("REPORT_FOLD_BLOCKER_CASE"),
		},
		Reminder: ReminderConfig{
			Cron: viper.GetString("REMINDER_CRON"),
		},
		Archive: ArchiveConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		JWT: JWTConfig{
			Secret:   os.Getenv("JWT_SECRET"),
			TokenTTL: time.Duration(viper.GetInt("JWT_TOKEN_TTL")) * time.Minute,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string

	switch c.Store.Backend {
	case BackendAirtable:
		if c.Airtable.APIKey == "" {
			missing = append(missing, "AIRTABLE_API_KEY")
		}
		if c.Airtable.BaseID == "" {
			missing = append(missing, "AIRTABLE_BASE_ID")
		}
		if c.Airtable.TableName == "" {
			missing = append(missing, "AIRTABLE_TABLE_NAME")
		}
	case BackendMongo:
		if c.MongoDB.URI == "" {
			missing = append(missing, "MONGODB_URI")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if !c.Slack.Disabled && c.Slack.APIToken == "" {
		missing = append(missing, "SLACK_API_TOKEN")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
