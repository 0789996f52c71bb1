package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid environment configuration")

// Source types
const (
	SourceTypeDrive  = "drive"
	SourceTypeBucket = "s3"
)

// Default templates used when none are configured.
const (
	DefaultTitleTemplate       = "Daily Upload: {{originalName}}"
	DefaultDescriptionTemplate = "Automatically scheduled upload.\n\nOriginal filename: {{originalName}}\nUploaded from Google Drive on {{uploadDate}}."
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Google   GoogleConfig   `mapstructure:"google"`
	Source   SourceConfig   `mapstructure:"source"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Upload   UploadConfig   `mapstructure:"upload"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Events   EventsConfig   `mapstructure:"events"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
	Auth AuthConfig `mapstructure:"auth"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// AuthConfig protects the trigger endpoints. Both empty means open.
type AuthConfig struct {
	CronSecret string `mapstructure:"cron_secret"`
	JWTSecret  string `mapstructure:"jwt_secret"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Driver          string        `mapstructure:"driver"` // sqlite, postgres
	Path            string        `mapstructure:"path"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN builds the driver-specific connection string.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	return c.Path
}

// GoogleConfig holds the OAuth client used for both Drive and YouTube.
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RefreshToken string `mapstructure:"refresh_token"`
}

type SourceConfig struct {
	Type     string      `mapstructure:"type"`
	PageSize int         `mapstructure:"page_size"`
	Drive    DriveConfig `mapstructure:"drive"`
}

type DriveConfig struct {
	FolderID        string `mapstructure:"folder_id"`
	ArchiveFolderID string `mapstructure:"archive_folder_id"`
}

// StorageConfig configures the S3-compatible bucket source (R2, S3, MinIO).
type StorageConfig struct {
	Type          string `mapstructure:"type"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	Prefix        string `mapstructure:"prefix"`
	ArchivePrefix string `mapstructure:"archive_prefix"`
}

// UploadConfig is resolved by every run.
type UploadConfig struct {
	TitleTemplate       string   `mapstructure:"title_template"`
	DescriptionTemplate string   `mapstructure:"description_template"`
	CategoryID          string   `mapstructure:"category_id"`
	PrivacyStatus       string   `mapstructure:"privacy_status"`
	DefaultTags         []string `mapstructure:"default_tags"`
}

type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether a model credential is configured.
func (c *LLMConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

type EventsConfig struct {
	AMQPURL    string `mapstructure:"amqp_url"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing_key"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Upload.DefaultTags = normalizeTags(cfg.Upload.DefaultTags)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("database.enabled", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/dailyreel.db")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("source.type", SourceTypeDrive)
	v.SetDefault("source.page_size", 25)
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("upload.title_template", DefaultTitleTemplate)
	v.SetDefault("upload.description_template", DefaultDescriptionTemplate)
	v.SetDefault("upload.category_id", "22")
	v.SetDefault("upload.privacy_status", "private")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("events.exchange", "dailyreel.runs")
	v.SetDefault("events.routing_key", "run.completed")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// bindEnv keeps the variable names the deployment already uses.
func bindEnv(v *viper.Viper) {
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.auth.cron_secret", "CRON_SECRET")
	v.BindEnv("server.auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("google.client_id", "GOOGLE_CLIENT_ID")
	v.BindEnv("google.client_secret", "GOOGLE_CLIENT_SECRET")
	v.BindEnv("google.refresh_token", "GOOGLE_REFRESH_TOKEN")
	v.BindEnv("source.type", "SOURCE_TYPE")
	v.BindEnv("source.drive.folder_id", "GOOGLE_DRIVE_FOLDER_ID")
	v.BindEnv("source.drive.archive_folder_id", "GOOGLE_DRIVE_ARCHIVE_FOLDER_ID")
	v.BindEnv("storage.endpoint", "S3_ENDPOINT")
	v.BindEnv("storage.access_key", "S3_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "S3_SECRET_KEY")
	v.BindEnv("storage.bucket", "S3_BUCKET")
	v.BindEnv("storage.region", "S3_REGION")
	v.BindEnv("storage.prefix", "S3_PREFIX")
	v.BindEnv("storage.archive_prefix", "S3_ARCHIVE_PREFIX")
	v.BindEnv("upload.title_template", "DEFAULT_VIDEO_TITLE_TEMPLATE")
	v.BindEnv("upload.description_template", "DEFAULT_VIDEO_DESCRIPTION_TEMPLATE")
	v.BindEnv("upload.category_id", "YOUTUBE_CATEGORY_ID")
	v.BindEnv("upload.privacy_status", "YOUTUBE_PRIVACY_STATUS")
	v.BindEnv("upload.default_tags", "YOUTUBE_DEFAULT_TAGS")
	v.BindEnv("llm.api_key", "OPENAI_API_KEY")
	v.BindEnv("llm.model", "OPENAI_MODEL")
	v.BindEnv("llm.base_url", "OPENAI_BASE_URL")
	v.BindEnv("events.amqp_url", "AMQP_URL")
}

// normalizeTags splits comma-joined entries, trims them and drops empties.
func normalizeTags(raw []string) []string {
	var tags []string
	for _, item := range raw {
		for _, tag := range strings.Split(item, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
