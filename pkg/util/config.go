package util

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/viper"
)

const (
	ORACLE_PUSH_RELABEL = "push_relabel"
	ORACLE_DINIC        = "dinic"
)

type Config struct {
	MaxLevel int     `mapstructure:"max_level" validate:"gte=0,lte=4"`
	Epsilon  float64 `mapstructure:"epsilon" validate:"gte=0"`
	Seed     uint64  `mapstructure:"seed"`
	Oracle   string  `mapstructure:"oracle" validate:"oneof=push_relabel dinic"`
	Workers  int     `mapstructure:"workers" validate:"gte=1,lte=256"`
	LogLevel string  `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	Cutoff   float64 `mapstructure:"cutoff" validate:"gte=0"` // 0 disables the cut callback
	Verify   bool    `mapstructure:"verify"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("max_level", 4)
	v.SetDefault("epsilon", 1e-9)
	v.SetDefault("seed", 1)
	v.SetDefault("oracle", ORACLE_PUSH_RELABEL)
	v.SetDefault("workers", 4)
	v.SetDefault("log_level", "info")
	v.SetDefault("cutoff", 0)
	v.SetDefault("verify", false)
}

// ReadConfig loads config.yaml from ./data/ or the working directory. a missing file leaves the defaults,
// PRMINCUT_* environment variables override both.
func ReadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./data/")
	v.AddConfigPath(".")
	return loadConfig(v)
}

// ReadConfigFile is ReadConfig for an explicit path.
func ReadConfigFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("fatal error config file: %w", err)
	}
	v := viper.New()
	v.SetConfigFile(path)
	return loadConfig(v)
}

func loadConfig(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvPrefix("PRMINCUT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("fatal error config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, WrapErrorf(err, ErrBadParamInput, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field of the config, the error lists the failures in english.
func (c *Config) Validate() error {
	validate := validator.New()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	vv := translateError(err, trans)
	vvString := make([]string, 0, len(vv))
	for _, v := range vv {
		vvString = append(vvString, v.Error())
	}
	return WrapErrorf(nil, ErrBadParamInput, "validation error: %s", strings.Join(vvString, ", "))
}

func translateError(err error, trans ut.Translator) []error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []error{err}
	}
	errs := make([]error, 0, len(validationErrors))
	for _, e := range validationErrors {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
