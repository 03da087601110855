package main

import (
	"fmt"
	"strings"

	"github.com/lomoval/famboard/internal/hubapi"
	"github.com/lomoval/famboard/internal/logger"
	"github.com/lomoval/famboard/internal/rabbit"
	internalhttp "github.com/lomoval/famboard/internal/server/http"
	"github.com/lomoval/famboard/internal/snapshot"
	"github.com/spf13/viper"
)

const envConfigPrefix = "$env:"

type Config struct {
	HTTPServer internalhttp.Config
	Logger     logger.Config
	Hub        hubapi.Config
	Rabbit     rabbit.Config
	Snapshot   snapshot.Config
}

func NewConfig(configFile string) (Config, error) {
	config := Config{}
	viper.SetConfigFile(configFile)

	viper.SetDefault("httpServer.host", "127.0.0.1")
	viper.SetDefault("httpServer.port", "8080")
	viper.SetDefault("logger.level", "WARN")
	viper.SetDefault("hub.baseURL", "http://127.0.0.1:8005")
	viper.SetDefault("hub.timeoutSeconds", "10")
	viper.SetDefault("rabbit.host", "127.0.0.1")
	viper.SetDefault("rabbit.port", "5672")
	viper.SetDefault("rabbit.user", "user")
	viper.SetDefault("rabbit.password", "pass")
	viper.SetDefault("rabbit.queue", "famboard.notify")
	viper.SetDefault("snapshot.pollIntervalSeconds", "300")

	err := viper.ReadInConfig()
	if err != nil {
		return config, fmt.Errorf("failed to read config %q: %w", configFile, err)
	}
	keys := viper.AllKeys()
	for _, key := range keys {
		env := viper.GetString(key)
		if strings.HasPrefix(env, envConfigPrefix) {
			err := viper.BindEnv(key, env[len(envConfigPrefix):])
			if err != nil {
				return Config{}, fmt.Errorf("failed to prepare config: %w", err)
			}
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return config, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	return config, nil
}
