package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"

	"github.com/terralift/terralift/internal/models"
)

// Configuration is the full agent configuration. Defaults come from the
// struct tags; overrides come from the config file and TERRALIFT_* env vars.
type Configuration struct {
	Server Server         `mapstructure:"server"`
	Agent  Agent          `mapstructure:"agent"`
	Auth   Authentication `mapstructure:"auth"`

	// Stacks maps action names to stack definitions. DefaultStack names the
	// one the root command form operates on.
	Stacks       map[string]StackSpec `mapstructure:"stacks"`
	DefaultStack string               `mapstructure:"defaultStack"`

	LogFormat string `mapstructure:"logFormat" default:"console"`
	LogLevel  string `mapstructure:"logLevel" default:"info"`
}

type Server struct {
	ServerMode string `mapstructure:"mode" default:"dev"`
	HTTPPort   int    `mapstructure:"httpPort" default:"8000"`
}

type Agent struct {
	NumWorkers int `mapstructure:"numWorkers" default:"3"`
	// DataFolder holds the status cache database and managed terraform
	// binaries.
	DataFolder string `mapstructure:"dataFolder" default:""`
}

type Authentication struct {
	Enabled bool `mapstructure:"enabled" default:"false"`
	// SecretFilePath points at the shared HMAC secret used to validate
	// bearer tokens from the host orchestrator.
	SecretFilePath string `mapstructure:"secretFilePath" default:""`
}

// StackSpec is one stack definition as written in the config file.
type StackSpec struct {
	Kind          string            `mapstructure:"kind" default:"terraform"`
	Root          string            `mapstructure:"root"`
	Workspace     string            `mapstructure:"workspace"`
	BackendConfig map[string]string `mapstructure:"backendConfig"`
	Variables     map[string]any    `mapstructure:"variables"`
	Version       string            `mapstructure:"version"`
	AllowDestroy  bool              `mapstructure:"allowDestroy"`
	AutoApply     bool              `mapstructure:"autoApply"`
}

// StackConfig builds the per-operation immutable config for a named stack.
func (s StackSpec) StackConfig(name string) models.StackConfig {
	return models.StackConfig{
		Name:          name,
		RootPath:      s.Root,
		Workspace:     s.Workspace,
		BackendConfig: s.BackendConfig,
		Variables:     s.Variables,
		Version:       s.Version,
		AllowDestroy:  s.AllowDestroy,
		AutoApply:     s.AutoApply,
	}
}

// envKeys is the set of scalar configuration keys overridable through the
// environment. Each one must be bound explicitly: Unmarshal only consults
// env vars for keys viper already knows about, so AutomaticEnv alone drops
// overrides for keys absent from the config file.
var envKeys = []string{
	"server.mode",
	"server.httpPort",
	"agent.numWorkers",
	"agent.dataFolder",
	"auth.enabled",
	"auth.secretFilePath",
	"defaultStack",
	"logFormat",
	"logLevel",
}

// Load reads configuration from the given file (optional) and the
// environment, layered over the struct defaults.
func Load(path string) (*Configuration, error) {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying configuration defaults: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("TERRALIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding environment key %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading configuration %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	// Stack entries arrive with zero values where the file omitted keys, so
	// their defaults are applied per entry.
	for name, spec := range cfg.Stacks {
		if spec.Kind == "" {
			spec.Kind = string(models.StackKindTerraform)
		}
		cfg.Stacks[name] = spec
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	switch c.Server.ServerMode {
	case "dev", "prod":
	default:
		return fmt.Errorf("invalid server mode %q", c.Server.ServerMode)
	}
	if c.DefaultStack != "" {
		if _, ok := c.Stacks[c.DefaultStack]; !ok {
			return fmt.Errorf("defaultStack %q is not a configured stack", c.DefaultStack)
		}
	}
	return nil
}
