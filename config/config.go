package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Completion CompletionConfig `mapstructure:"completion"`
	Geocoding  GeocodingConfig  `mapstructure:"geocoding"`
}

// JWTConfig holds token signing parameters. SecretKey is expected from the
// environment (PB_JWT_SECRETKEY), never from the embedded file.
type JWTConfig struct {
	SecretKey     string        `mapstructure:"secretKey"`
	Issuer        string        `mapstructure:"issuer"`
	Audience      string        `mapstructure:"audience"`
	AccessExpiry  time.Duration `mapstructure:"accessExpiry"`
	RefreshExpiry time.Duration `mapstructure:"refreshExpiry"`
}

// CompletionConfig parameterizes the itinerary text-generation endpoint.
// The endpoint speaks the OpenAI chat-completions contract; BaseURL allows
// pointing at any compatible gateway.
type CompletionConfig struct {
	APIKey      string        `mapstructure:"apiKey"`
	BaseURL     string        `mapstructure:"baseURL"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"maxTokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// GeocodingConfig parameterizes forward geocoding of extracted place names.
// CityQualifier is appended to every query so bare spot names resolve inside
// the city ("Burnham Park" -> "Burnham Park, Baguio City, Philippines").
type GeocodingConfig struct {
	APIKey        string        `mapstructure:"apiKey"`
	BaseURL       string        `mapstructure:"baseURL"`
	CityQualifier string        `mapstructure:"cityQualifier"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"ratePerSecond"`
	CacheTTL      time.Duration `mapstructure:"cacheTTL"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("PB")
	v.AutomaticEnv()

	// Try to load file-based config, fall back to the embedded copy.
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Secrets come from the environment, not the YAML.
	if secret := v.GetString("JWT_SECRETKEY"); secret != "" {
		v.Set("jwt.secretKey", secret)
	}
	if key := v.GetString("COMPLETION_APIKEY"); key != "" {
		v.Set("completion.apiKey", key)
	}
	if key := v.GetString("GEOCODING_APIKEY"); key != "" {
		v.Set("geocoding.apiKey", key)
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
