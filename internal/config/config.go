package config

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds everything the constructors need. It is populated once at
// startup; nothing reads the environment after that.
type Config struct {
	AppPort     string
	DBDriver    string // "sqlite" or "postgres"
	DBDSN       string
	UploadDir   string
	RabbitMQURL string // empty disables stock event publishing
	LogLevel    string
	LogJSON     bool
}

// Load reads configuration from environment variables with sensible defaults
// for a single-machine deployment.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":3001")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "gudang.db")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_JSON", false)
	viper.AutomaticEnv() // Load environment variables

	return &Config{
		AppPort:     viper.GetString("APP_PORT"),
		DBDriver:    viper.GetString("DB_DRIVER"),
		DBDSN:       viper.GetString("DB_DSN"),
		UploadDir:   viper.GetString("UPLOAD_DIR"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		LogJSON:     viper.GetBool("LOG_JSON"),
	}
}

// NewLogger builds the application logger from the loaded configuration.
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
