package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds the full application configuration, loaded from
// environment variables (optionally via a .env file) with sane local
// defaults.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type DeploymentConfig struct {
	Mode string `mapstructure:"mode"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type CacheConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// NewConfig loads the configuration. A missing .env file is not an error;
// environment variables always win.
func NewConfig() (*Configuration, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HOMETUITION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", "api")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "hometuition")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("logging.level", "info")
}

// GetDefaultConfig returns a configuration suitable for tests and scripts
// where the environment is not set up.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: "local"},
		Server:     ServerConfig{Address: ":8080"},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "hometuition",
		},
		Cache:   CacheConfig{Enabled: true},
		Logging: LoggingConfig{Level: "debug"},
	}
}
