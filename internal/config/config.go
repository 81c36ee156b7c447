package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort        int    `mapstructure:"APP_PORT"`
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	StoreBackend   string `mapstructure:"STORE_BACKEND"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	AuthSecret     string `mapstructure:"AUTH_SECRET"`
	ReplyDelayMin  int    `mapstructure:"REPLY_DELAY_MIN_MS"`
	ReplyDelayMax  int    `mapstructure:"REPLY_DELAY_MAX_MS"`
	FrontendDir    string `mapstructure:"FRONTEND_DIR"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("DATABASE_PATH", "/data/chat.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("STORE_BACKEND", "sqlite")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("AUTH_SECRET", "simulated-dev-secret")
	viper.SetDefault("REPLY_DELAY_MIN_MS", 1000)
	viper.SetDefault("REPLY_DELAY_MAX_MS", 2000)
	viper.SetDefault("FRONTEND_DIR", "./frontend/dist")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
