package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backends suportados para o cliente do modelo
const (
	BackendGenAI = "genai"
	BackendADK   = "adk"
)

var (
	ErrMissingAPIKey  = errors.New("GEMINI_API_KEY is not set")
	ErrUnknownBackend = errors.New("unknown provider backend")
)

// Config contém todas as configurações da aplicação
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Provider ProviderConfig `mapstructure:"provider"`
	MCP      MCPConfig      `mapstructure:"mcp"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig configura o servidor HTTP
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	PublicDir    string        `mapstructure:"public_dir"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// Addr retorna o endereço de escuta no formato ":porta"
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ProviderConfig configura o acesso ao Gemini
type ProviderConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Backend string        `mapstructure:"backend"`
	Timeout time.Duration `mapstructure:"timeout"`
	BaseURL string        `mapstructure:"base_url"`
}

type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// envBindings mapeia cada chave para as variáveis de ambiente aceitas
var envBindings = map[string][]string{
	"server.port":          {"PORT"},
	"server.public_dir":    {"PUBLIC_DIR"},
	"server.read_timeout":  {"SERVER_READ_TIMEOUT"},
	"server.write_timeout": {"SERVER_WRITE_TIMEOUT"},
	"server.idle_timeout":  {"SERVER_IDLE_TIMEOUT"},
	"provider.api_key":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"provider.model":       {"GEMINI_MODEL"},
	"provider.backend":     {"PROVIDER_BACKEND"},
	"provider.timeout":     {"PROVIDER_TIMEOUT"},
	"provider.base_url":    {"GEMINI_BASE_URL"},
	"mcp.enabled":          {"MCP_ENABLED"},
	"log.level":            {"LOG_LEVEL"},
	"log.format":           {"LOG_FORMAT"},
	"log.file":             {"LOG_FILE"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.public_dir", "")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.model", "gemini-2.5-flash")
	v.SetDefault("provider.backend", BackendGenAI)
	v.SetDefault("provider.timeout", 60*time.Second)
	v.SetDefault("provider.base_url", "")

	v.SetDefault("mcp.enabled", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
}

// Load lê o config.yaml opcional dos diretórios informados e aplica as
// variáveis de ambiente por cima. Sem diretórios, procura no diretório atual.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Provider.APIKey = strings.TrimSpace(cfg.Provider.APIKey)
	cfg.Provider.Backend = strings.ToLower(strings.TrimSpace(cfg.Provider.Backend))

	return &cfg, nil
}

// Validate verifica as condições necessárias para iniciar o processo
func (c *Config) Validate() error {
	if c.Provider.APIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.Provider.Backend {
	case BackendGenAI, BackendADK:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Provider.Backend)
	}
	if c.Provider.Model == "" {
		return errors.New("provider model is empty")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %s", c.Provider.Timeout)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}
