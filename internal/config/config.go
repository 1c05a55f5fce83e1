package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime knob. Values come from an optional config.yaml
// in the working directory, overridden by ECOLENS_* environment variables.
type Config struct {
	Server struct {
		Addr           string
		AllowedOrigins []string
	}
	Model struct {
		ServerURL string
		Timeout   time.Duration
	}
	PlantNet struct {
		APIKey string
		URL    string
	}
	Geo struct {
		BigDataCloudURL string
		OpenCageKey     string
		OpenCageURL     string
	}
	Redis struct {
		Addr string
	}
	Fetch struct {
		Timeout  time.Duration
		MaxBytes int64
	}
}

// Load reads configuration with sane defaults for every field.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:8080",
		"http://localhost:3000",
		"http://localhost:5173",
	})
	v.SetDefault("model.server_url", "http://localhost:50052")
	v.SetDefault("model.timeout", "30s")
	v.SetDefault("plantnet.api_key", "")
	v.SetDefault("plantnet.url", "https://my-api.plantnet.org/v2/identify/all")
	v.SetDefault("geo.bigdatacloud_url", "https://api.bigdatacloud.net/data/reverse-geocode-client")
	v.SetDefault("geo.opencage_key", "")
	v.SetDefault("geo.opencage_url", "https://api.opencagedata.com/geocode/v1/json")
	v.SetDefault("redis.addr", "")
	v.SetDefault("fetch.timeout", "15s")
	v.SetDefault("fetch.max_bytes", 10<<20)

	v.SetEnvPrefix("ECOLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Server.Addr = v.GetString("server.addr")
	cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	cfg.Model.ServerURL = v.GetString("model.server_url")
	cfg.Model.Timeout = v.GetDuration("model.timeout")
	cfg.PlantNet.APIKey = v.GetString("plantnet.api_key")
	cfg.PlantNet.URL = v.GetString("plantnet.url")
	cfg.Geo.BigDataCloudURL = v.GetString("geo.bigdatacloud_url")
	cfg.Geo.OpenCageKey = v.GetString("geo.opencage_key")
	cfg.Geo.OpenCageURL = v.GetString("geo.opencage_url")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Fetch.Timeout = v.GetDuration("fetch.timeout")
	cfg.Fetch.MaxBytes = v.GetInt64("fetch.max_bytes")
	return cfg, nil
}
