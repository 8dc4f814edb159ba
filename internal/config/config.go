package config

import (
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string `yaml:"port"`
	GinMode string `yaml:"gin_mode"`

	// Firebase
	FirebaseProjectID string `yaml:"firebase_project_id"`
	FirebaseCredJSON  string `yaml:"-"`

	// Admin auth
	AdminKey          string        `yaml:"-"`
	AdminUsername     string        `yaml:"-"`
	AdminPassword     string        `yaml:"-"`
	AdminPasswordHash string        `yaml:"-"` // bcrypt hash; takes precedence over AdminPassword
	JWTSecret         string        `yaml:"-"`
	JWTTTL            time.Duration `yaml:"jwt_ttl"`
	AdminAuthRequired bool          `yaml:"admin_auth_required"` // gate mutating routes behind admin JWT

	// Cloudinary
	CloudinaryURL    string `yaml:"-"`
	CloudinaryFolder string `yaml:"cloudinary_folder"`

	// Push notifications
	PushNotificationsEnabled  bool `yaml:"push_notifications_enabled"`
	EventNotificationsEnabled bool `yaml:"event_notifications_enabled"`

	// Server
	ServerShutdownTimeoutSeconds int `yaml:"server_shutdown_timeout_seconds"`

	// CORS
	CORSAllowedOrigins string `yaml:"cors_allowed_origins"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "3000"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),

		// Firebase
		FirebaseProjectID: getEnvOrDefault("FIREBASE_PROJECT_ID", ""),
		FirebaseCredJSON:  getEnvOrDefault("FIREBASE_CRED_JSON", ""),

		// Admin auth
		AdminKey:          getEnvOrDefault("ADMIN_KEY", ""),
		AdminUsername:     getEnvOrDefault("ADMIN_USERNAME", ""),
		AdminPassword:     getEnvOrDefault("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnvOrDefault("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnvOrDefault("JWT_SECRET", ""),
		JWTTTL:            getEnvAsDuration("JWT_TTL", 2*time.Hour),
		AdminAuthRequired: getEnvAsBool("ADMIN_AUTH_REQUIRED", false),

		// Cloudinary
		CloudinaryURL:    getEnvOrDefault("CLOUDINARY_URL", ""),
		CloudinaryFolder: getEnvOrDefault("CLOUDINARY_FOLDER", "Gallery-nkym"),

		// Push notifications
		PushNotificationsEnabled:  getEnvAsBool("PUSH_NOTIFICATIONS_ENABLED", true),
		EventNotificationsEnabled: getEnvAsBool("EVENT_NOTIFICATIONS_ENABLED", true),

		// Server
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10),

		// CORS
		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),

		// Logging
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", ""),
	}

	// Optional YAML override for non-secret settings.
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Printf("Warning: cannot open config file %s: %v", path, err)
		} else {
			defer f.Close()
			if err := LoadConfigFile(f, AppConfig); err != nil {
				log.Printf("Warning: failed to parse config file %s: %v", path, err)
			}
		}
	}

	log.Println("Firebase project ID: ", AppConfig.FirebaseProjectID)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as time.Duration, using default %v: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as bool, using default %t: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

func LoadConfigFile(reader io.Reader, config *Config) error {
	decoder := yaml.NewDecoder(reader)

	if err := decoder.Decode(config); err != nil {
		return err
	}

	return nil
}
