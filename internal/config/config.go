package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Addr string `mapstructure:"addr"`

	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`

	Auth struct {
		Secret        string `mapstructure:"secret"`
		Issuer        string `mapstructure:"issuer"`
		Audience      string `mapstructure:"audience"`
		ExpiryMinutes int    `mapstructure:"expiry_minutes"`
	} `mapstructure:"auth"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	CORS struct {
		Origins []string `mapstructure:"origins"`
	} `mapstructure:"cors"`
}

// Load lee config.yaml (cwd o ..) y deja que las env vars pisen todo
// (ADDR, DATABASE_URL, AUTH_SECRET, ...).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("auth.issuer", "kennel-manager")
	v.SetDefault("auth.audience", "kennel-manager-api")
	v.SetDefault("auth.expiry_minutes", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.origins", []string{"*"})

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// bindings explícitos
	_ = v.BindEnv("addr", "ADDR")
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("auth.secret", "AUTH_SECRET")
	_ = v.BindEnv("auth.issuer", "AUTH_ISSUER")
	_ = v.BindEnv("auth.audience", "AUTH_AUDIENCE")
	_ = v.BindEnv("auth.expiry_minutes", "AUTH_EXPIRY_MINUTES")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
