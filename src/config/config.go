package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Databases DatabasesConfig `mapstructure:"databases"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Auth      AuthConfig      `mapstructure:"auth"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// PasswordSecret names an AWS Secrets Manager secret holding the SMTP
	// password. When set it takes precedence over Password.
	PasswordSecret string `mapstructure:"passwordSecret"`
	From           string `mapstructure:"from"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwtSecret"`
	AdminUser     string `mapstructure:"adminUser"`
	AdminPassword string `mapstructure:"adminPassword"`
}

// LoadConfig reads appsettings.yaml from the given path. When env is non-empty
// it reads appsettings.<env>.yaml instead (e.g. appsettings.TESTING.yaml).
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	// .env values (if any) feed viper's environment expansion
	_ = godotenv.Load()

	configName := "appsettings"
	if env != "" {
		configName = "appsettings." + env
	}

	viper.AddConfigPath(path)
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
