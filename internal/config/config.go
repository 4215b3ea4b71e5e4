package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port           string        `mapstructure:"PORT"`
	MongoURI       string        `mapstructure:"MONGO_URI"`
	DBName         string        `mapstructure:"MONGO_DB_NAME"`
	CollectionName string        `mapstructure:"MONGO_COLLECTION_NAME"`
	ModelPath      string        `mapstructure:"MODEL_PATH"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`
}

// Load reads configuration from environment variables, falling back to a
// .env file in the given path if one exists.
func Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("MONGO_DB_NAME", "BigData")
	viper.SetDefault("MONGO_COLLECTION_NAME", "mobility_trips")
	viper.SetDefault("MODEL_PATH", "fare_model.gob")
	viper.SetDefault("CACHE_TTL", 5*time.Minute)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found, using environment only.")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// RequireMongo returns an error when no connection string is configured.
// Store-dependent entry points treat this as a fatal startup condition.
func (c *Config) RequireMongo() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is missing, check your environment or .env file")
	}
	return nil
}
