package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	api "encargos/internal/adapters/in/http"
	"encargos/internal/adapters/out/notify"
	"encargos/internal/adapters/out/sqlstore"
	"encargos/internal/core/domain/model/order"
	"encargos/internal/pkg/logging"
	"encargos/internal/pkg/retry"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables read into the configuration.
// ENCARGOS_DATABASE_DSN maps to database.dsn, ENCARGOS_HTTP_LOGIN_RATE to http.login_rate.
const EnvPrefix = "ENCARGOS_"

type Config struct {
	HTTP     api.Config            `koanf:"http"`
	Accounts api.Accounts          `koanf:"accounts"`
	Database sqlstore.Config       `koanf:"database"`
	Retry    retry.Policy          `koanf:"retry"`
	Workflow WorkflowConfig        `koanf:"workflow"`
	SMTP     notify.SMTPConfig     `koanf:"smtp"`
	WhatsApp notify.WhatsAppConfig `koanf:"whatsapp"`
	Logging  logging.Config        `koanf:"logging"`
}

// WorkflowConfig tunes the stage state machine.
type WorkflowConfig struct {
	// CascadePolicy is "partial" or "strict".
	CascadePolicy string `koanf:"cascade_policy"`
}

func DefaultConfig() Config {
	return Config{
		HTTP:     api.DefaultConfig(),
		Database: sqlstore.DefaultConfig(),
		Retry:    retry.DefaultPolicy(),
		Workflow: WorkflowConfig{CascadePolicy: "partial"},
		SMTP:     notify.SMTPConfig{Port: 587},
		WhatsApp: notify.WhatsAppConfig{CountryCode: "34"},
		Logging:  logging.NewDefaultConfig(),
	}
}

// LoadConfig layers, from lowest to highest precedence, the defaults, the YAML
// file at path and the environment. A .env file in the working directory is
// loaded into the environment first when present. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err = k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envKey splits on the first underscore only, so field names keep theirs.
func envKey(s string) string {
	section, field, found := strings.Cut(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_")
	if !found {
		return section
	}
	return section + "." + field
}

func (c Config) Validate() error {
	var errList []error
	errList = append(errList, c.HTTP.Validate(), c.Accounts.Validate(), c.SMTP.Validate(), c.Logging.Validate())
	if strings.TrimSpace(c.Database.DSN) == "" {
		errList = append(errList, errors.New("database dsn is required"))
	}
	if c.Database.Driver != sqlstore.DriverPostgres && c.Database.Driver != sqlstore.DriverMySQL {
		errList = append(errList, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if _, err := c.CascadePolicy(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}

func (c Config) CascadePolicy() (order.CascadePolicy, error) {
	return order.ParseCascadePolicy(c.Workflow.CascadePolicy)
}
