package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type AdvisorConfig struct {
	ExportDir        string        `mapstructure:"export_dir"`
	TrainingDelay    time.Duration `mapstructure:"training_delay"`
	TrainingEpisodes int           `mapstructure:"training_episodes"`
}

type NotificationConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
}

type Config struct {
	DatabaseURL       string             `mapstructure:"database_url"`
	ServerPort        string             `mapstructure:"server_port"`
	JWTSecret         string             `mapstructure:"jwt_secret"`
	CORSAllowedOrigin string             `mapstructure:"cors_allowed_origin"`
	Advisor           AdvisorConfig      `mapstructure:"advisor"`
	Notification      NotificationConfig `mapstructure:"notification"`
}

// Load reads the configuration from a YAML file and returns a Config instance.
func Load() *Config {
	v := viper.New()

	// Look for config in the current directory and ./config
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}

	if config.JWTSecret == "" {
		log.Fatal("JWT secret must be set in the config file")
	}

	if config.CORSAllowedOrigin == "" {
		config.CORSAllowedOrigin = "http://localhost:3000"
	}
	if config.Advisor.ExportDir == "" {
		config.Advisor.ExportDir = "./reports"
	}
	if config.Advisor.TrainingDelay == 0 {
		config.Advisor.TrainingDelay = 2 * time.Second
	}
	if config.Advisor.TrainingEpisodes == 0 {
		config.Advisor.TrainingEpisodes = 500
	}

	return &config
}
