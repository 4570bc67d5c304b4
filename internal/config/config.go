package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/dvcrn/jso-fetch/internal/env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvURL     = "JSOFETCH_URL"
	EnvMethod  = "JSOFETCH_METHOD"
	EnvHeaders = "JSOFETCH_HEADERS"
	EnvBody    = "JSOFETCH_BODY"
	EnvTimeout = "JSOFETCH_TIMEOUT"
	EnvDotenv  = "JSOFETCH_DOTENV"
)

// Config drives a single jsofetch invocation.
type Config struct {
	URL    string `envconfig:"JSOFETCH_URL" validate:"required,url"`
	Method string `envconfig:"JSOFETCH_METHOD" default:"GET" validate:"oneof=GET HEAD POST PUT PATCH DELETE OPTIONS"`
	// Headers is one "Name: value" item per line.
	Headers Headers       `envconfig:"JSOFETCH_HEADERS"`
	Body    string        `envconfig:"JSOFETCH_BODY"`
	Timeout time.Duration `envconfig:"JSOFETCH_TIMEOUT" default:"30s" validate:"gte=0"`
}

var validate = validator.New()

// Load reads the configuration from the environment. Variables from a .env
// file (or the file named by JSOFETCH_DOTENV) are loaded first without
// overriding ones already set. A non-empty url argument replaces JSOFETCH_URL.
func Load(url string) (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if url != "" {
		cfg.URL = url
	}
	cfg.Method = strings.ToUpper(cfg.Method)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and reports the first failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s failed %q", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// Header converts Headers into an http.Header, or nil when none are set.
func (c *Config) Header() http.Header {
	if len(c.Headers) == 0 {
		return nil
	}
	return http.Header(c.Headers).Clone()
}

func loadDotenv() error {
	path, explicit := lookupDotenv()
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func lookupDotenv() (path string, explicit bool) {
	if p, ok := env.Get(EnvDotenv); ok {
		return p, true
	}
	return ".env", false
}
