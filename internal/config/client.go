package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/viper"
)

const DefaultAPIURL = "http://localhost:5000/api/grammar"

type ClientConfig struct {
	API      APIConfig `mapstructure:"api"`
	Proxy    string    `mapstructure:"proxy" validate:"omitempty,url"`
	StateDB  string    `mapstructure:"state_db" validate:"required"`
	LogLevel string    `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

type APIConfig struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// LoadClient reads the client configuration from configFile, or from
// grammar.yaml in the working directory or $HOME/.config/grammar when
// configFile is empty. Environment variables override file values.
func LoadClient(configFile string) (*ClientConfig, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("grammar")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/grammar")
	}

	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("state_db", defaultStateDB())
	v.SetDefault("log_level", "warn")

	bindings := map[string]string{
		"api.url":     "GRAMMAR_API_URL",
		"api.timeout": "GRAMMAR_API_TIMEOUT",
		"proxy":       "GRAMMAR_PROXY",
		"state_db":    "GRAMMAR_STATE_DB",
		"log_level":   "GRAMMAR_LOG_LEVEL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w", err)
		}
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validateClient(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateClient(cfg *ClientConfig) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return fmt.Errorf("register default translations: %w", err)
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate configuration: %w", err)
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fe.Translate(trans))
	}
	sort.Strings(messages)
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

func defaultStateDB() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "grammar-state.db")
	}
	return filepath.Join(dir, "grammar", "state.db")
}
