package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/crystalmyth/n8n-bmad/internal/branding"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	fileType   = "yaml"
	envFile    = ".env"
	defaultURL = "http://localhost:5678"
)

var envRefPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// NamingConvention holds the naming rules applied to workflows and credentials.
type NamingConvention struct {
	WorkflowPrefix       string `yaml:"workflow_prefix" json:"workflow_prefix"`
	CredentialPrefix     string `yaml:"credential_prefix" json:"credential_prefix"`
	EnvironmentSeparator string `yaml:"environment_separator" json:"environment_separator"`
	UseSnakeCase         bool   `yaml:"use_snake_case" json:"use_snake_case"`
}

// ValidationDefaults says which workflow checks a project enables by default.
type ValidationDefaults struct {
	Naming      bool
	Credentials bool
	Expressions bool
	Connections bool
}

// Config is a loaded module configuration. It is read-only once loaded.
type Config struct {
	v    *viper.Viper
	file string
	root string
}

// New returns a configuration holding only the built-in defaults, rooted at
// the current working directory.
func New() *Config {
	v := viper.New()
	for key, value := range defaultConfig {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	root, err := os.Getwd()
	if err != nil {
		root = "."
	}
	return &Config{v: v, root: root}
}

// Load reads the module configuration at path and merges it over the defaults.
// A missing file is not an error: the defaults are returned as-is. The project
// root is three directories above the file (<root>/src/core/module.yaml).
func Load(path string) (*Config, error) {
	c := New()
	if path == "" {
		path = branding.DefaultConfig()
	}

	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}

	if _, err := os.Stat(resolved); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("checking config file %s: %w", resolved, err)
	}

	c.file = resolved
	c.root = filepath.Dir(filepath.Dir(filepath.Dir(resolved)))

	// Project secrets referenced as ${VAR} live in <root>/.env.
	if err := godotenv.Load(filepath.Join(c.root, envFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	c.v.SetConfigFile(resolved)
	c.v.SetConfigType(fileType)
	if err := c.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("invalid YAML in configuration file %s: %w", resolved, err)
	}

	return c, nil
}

// File returns the absolute path of the loaded config file, or "" when only
// defaults are in use.
func (c *Config) File() string { return c.file }

// ProjectRoot returns the directory relative paths in the config resolve against.
func (c *Config) ProjectRoot() string { return c.root }

// GetValue returns the value at a dotted path (e.g. "agents.default_agent"),
// or def when nothing is set there.
func (c *Config) GetValue(path string, def any) any {
	if !c.v.IsSet(path) {
		return def
	}
	value := c.v.Get(path)
	if value == nil {
		return def
	}
	return value
}

// GetString returns the string at a dotted path, or def when unset or empty.
func (c *Config) GetString(path, def string) string {
	if s := c.v.GetString(path); s != "" {
		return s
	}
	return def
}

// GetStringSlice returns the string list at a dotted path.
func (c *Config) GetStringSlice(path string) []string {
	return c.v.GetStringSlice(path)
}

// NamingConvention returns options.naming_convention.default with every
// unset key filled from the built-in defaults.
func (c *Config) NamingConvention() NamingConvention {
	const base = "options.naming_convention.default."
	return NamingConvention{
		WorkflowPrefix:       c.v.GetString(base + "workflow_prefix"),
		CredentialPrefix:     c.v.GetString(base + "credential_prefix"),
		EnvironmentSeparator: c.v.GetString(base + "environment_separator"),
		UseSnakeCase:         c.v.GetBool(base + "use_snake_case"),
	}
}

// ValidationDefaults returns the defaults.validation switches.
func (c *Config) ValidationDefaults() ValidationDefaults {
	const base = "defaults.validation."
	return ValidationDefaults{
		Naming:      c.v.GetBool(base + "check_naming"),
		Credentials: c.v.GetBool(base + "check_credentials"),
		Expressions: c.v.GetBool(base + "check_expressions"),
		Connections: c.v.GetBool(base + "check_connections"),
	}
}

// AvailableAgents returns the agent ids the project declares.
func (c *Config) AvailableAgents() []string {
	return c.GetStringSlice("agents.available_agents")
}

// DefaultAgent returns the id of the agent used when none is named.
func (c *Config) DefaultAgent() string {
	return c.GetString("agents.default_agent", branding.MasterAgent())
}

// AgentsPath returns the absolute directory holding <id>.agent.yaml files.
func (c *Config) AgentsPath() string {
	return c.resolve(c.GetString("agents.agent_path", "./src/core/agents"))
}

// TemplatesPath returns the absolute template library directory.
func (c *Config) TemplatesPath() string {
	return c.resolve(c.GetString("templates.path", "./templates"))
}

// TemplateCategories returns the configured template categories in order.
func (c *Config) TemplateCategories() []string {
	return c.GetStringSlice("templates.categories")
}

// PatternCategories returns the configured workflow pattern categories.
func (c *Config) PatternCategories() []string {
	return c.GetStringSlice("patterns.categories")
}

// N8nURL returns the n8n instance URL. N8N_INSTANCE_URL wins over the file.
func (c *Config) N8nURL() string {
	if url := os.Getenv("N8N_INSTANCE_URL"); url != "" {
		return url
	}
	return ExpandEnv(c.GetString("options.n8n_instance_url.default", defaultURL))
}

// Validate reports missing required sections and an empty agent list.
func (c *Config) Validate() []string {
	var errs []string
	for _, section := range requiredSections {
		if c.v.Get(section) == nil {
			errs = append(errs, "Missing required section: "+section)
		}
	}
	if c.v.Get("agents") != nil && len(c.AvailableAgents()) == 0 {
		errs = append(errs, "No agents defined in configuration")
	}
	return errs
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.root, p)
}

// ExpandEnv replaces ${VAR} references with environment values. Unknown or
// empty variables are left as written.
func ExpandEnv(s string) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := envRefPattern.FindStringSubmatch(ref)[1]
		if value := os.Getenv(name); value != "" {
			return value
		}
		return ref
	})
}

// ResolveEnvVars applies ExpandEnv to every string inside a decoded value.
func ResolveEnvVars(value any) any {
	switch val := value.(type) {
	case string:
		return ExpandEnv(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = ResolveEnvVars(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = ResolveEnvVars(v)
		}
		return out
	default:
		return val
	}
}
