package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// MaxNotificationBatch is the Firestore limit on writes per batch commit.
const MaxNotificationBatch = 500

const (
	MediaBackendCloudinary = "cloudinary"
	MediaBackendFirebase   = "firebase"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	Env       string `envconfig:"ENV" default:"development"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"` // json or console

	Firebase FirebaseConfig
	Media    MediaConfig
	Admin    AdminConfig

	NotificationBatchSize int `envconfig:"NOTIFICATION_BATCH_SIZE" default:"500"`
}

type FirebaseConfig struct {
	CredentialsPath string `envconfig:"FIREBASE_CREDENTIALS_PATH" default:"./firebase_credentials.json"`
	DatabaseURL     string `envconfig:"FIREBASE_DATABASE_URL" required:"true"`
	StorageBucket   string `envconfig:"FIREBASE_STORAGE_BUCKET"`
}

type MediaConfig struct {
	Backend       string `envconfig:"MEDIA_BACKEND" default:"cloudinary"`
	CloudinaryURL string `envconfig:"CLOUDINARY_URL"`
	CloudName     string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	APIKey        string `envconfig:"CLOUDINARY_API_KEY"`
	APISecret     string `envconfig:"CLOUDINARY_API_SECRET"`
	Folder        string `envconfig:"MEDIA_FOLDER" default:"tasty_talk/dishes"`
	MaxWidth      int    `envconfig:"MEDIA_MAX_WIDTH" default:"1600"`
	MaxUploadMB   int64  `envconfig:"MEDIA_MAX_UPLOAD_MB" default:"10"`
}

type AdminConfig struct {
	Email         string        `envconfig:"ADMIN_EMAIL"`
	PasswordHash  string        `envconfig:"ADMIN_PASSWORD_HASH"`
	SessionSecret string        `envconfig:"SESSION_SECRET"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	LoginRate     float64       `envconfig:"LOGIN_RATE_PER_SECOND" default:"0.2"`
}

// AuthEnabled reports whether the admin pages require a login.
func (a AdminConfig) AuthEnabled() bool {
	return a.PasswordHash != ""
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from the environment, after loading a .env file when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return Process()
}

// Process decodes and validates configuration from the current environment.
func Process() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.NotificationBatchSize <= 0 || c.NotificationBatchSize > MaxNotificationBatch {
		c.NotificationBatchSize = MaxNotificationBatch
	}

	switch strings.ToLower(c.Media.Backend) {
	case MediaBackendCloudinary:
		if c.Media.CloudinaryURL == "" && (c.Media.CloudName == "" || c.Media.APIKey == "" || c.Media.APISecret == "") {
			return fmt.Errorf("cloudinary media backend requires CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME/API_KEY/API_SECRET")
		}
	case MediaBackendFirebase:
		if c.Firebase.StorageBucket == "" {
			return fmt.Errorf("firebase media backend requires FIREBASE_STORAGE_BUCKET")
		}
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q", c.Media.Backend)
	}
	c.Media.Backend = strings.ToLower(c.Media.Backend)

	if c.Admin.AuthEnabled() {
		if c.Admin.Email == "" {
			return fmt.Errorf("ADMIN_EMAIL is required when ADMIN_PASSWORD_HASH is set")
		}
		if len(c.Admin.SessionSecret) < 32 {
			return fmt.Errorf("SESSION_SECRET must be at least 32 characters when admin login is enabled")
		}
	}
	return nil
}
