package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Log           Log       `yaml:"log"`
	Http          Http      `yaml:"http"`
	Storage       Storage   `yaml:"storage"`
	Listing       Listing   `yaml:"listing"`
	Limits        Limits    `yaml:"limits"`
	SanitizeHtml  bool      `yaml:"sanitize_html"`
	PostRateLimit RateLimit `yaml:"post_rate_limit"`
}

type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Json  bool   `yaml:"json"`
}

type Http struct {
	Port           string        `yaml:"port" validate:"required,numeric"`
	ReadTimeout    time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `yaml:"write_timeout" validate:"gt=0"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Https          bool          `yaml:"https"` // adds HSTS
}

type Storage struct {
	Driver       string `yaml:"driver" validate:"required,oneof=postgres mongo memory"`
	SaveAttempts int    `yaml:"save_attempts" validate:"min=1"` // optimistic concurrency retries
}

// Listing sizes of GET /api/threads/{board}
type Listing struct {
	Threads int `yaml:"threads" validate:"min=1"`
	Replies int `yaml:"replies" validate:"min=0"`
}

// Limits are maximum rune counts of user input
type Limits struct {
	BoardName int `yaml:"board_name" validate:"min=1"`
	Text      int `yaml:"text" validate:"min=1"`
	Password  int `yaml:"password" validate:"min=1"`
}

// RateLimit applies per client IP to thread and reply creation. Rate 0 disables it.
type RateLimit struct {
	Rate  float64 `yaml:"rate" validate:"min=0"`
	Burst float64 `yaml:"burst" validate:"min=0"`
}

type Private struct {
	Pg    Pg    `yaml:"pg"`
	Mongo Mongo `yaml:"mongo"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Mongo struct {
	Uri      string `yaml:"uri"`
	Database string `yaml:"database"`
}

func defaultPublic() Public {
	return Public{
		Log:           Log{Level: "info"},
		Http:          Http{Port: "8080", ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second},
		Storage:       Storage{Driver: DriverPostgres, SaveAttempts: 3},
		Listing:       Listing{Threads: 10, Replies: 3},
		Limits:        Limits{BoardName: 64, Text: 10_000, Password: 128},
		SanitizeHtml:  false,
		PostRateLimit: RateLimit{Rate: 0, Burst: 5},
	}
}

// Default returns the configuration used when no file overrides a field.
func Default() *Config {
	return &Config{Public: defaultPublic()}
}

func loadPath(configPath string, output interface{}) error {
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("can't read config file %s: %w", configPath, err)
	}
	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		return fmt.Errorf("can't unmarshal config file %s: %w", configPath, err)
	}
	return nil
}

// Load reads public.yaml and, if present, private.yaml from configFolder.
// The PORT environment variable overrides http.port.
func Load(configFolder string) (*Config, error) {
	cfg := Default()
	if err := loadPath(path.Join(configFolder, "public.yaml"), &cfg.Public); err != nil {
		return nil, err
	}

	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		if err := loadPath(privatePath, &cfg.Private); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Public.Http.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad(configFolder string) *Config {
	cfg, err := Load(configFolder)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// Validate checks field constraints and the credentials the chosen driver needs.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return fmt.Errorf("invalid public config: %w", err)
	}

	switch c.Public.Storage.Driver {
	case DriverPostgres:
		pg := c.Private.Pg
		if pg.Host == "" || pg.Port == 0 || pg.User == "" || pg.Dbname == "" {
			return errors.New("invalid private config: pg host, port, user and dbname are required")
		}
	case DriverMongo:
		if c.Private.Mongo.Uri == "" || c.Private.Mongo.Database == "" {
			return errors.New("invalid private config: mongo uri and database are required")
		}
	}
	return nil
}
