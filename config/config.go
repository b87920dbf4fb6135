package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const keyEnv = "ENV"
const envLocal = "local"

const (
	EngineKindOpenSearch = "opensearch"
	EngineKindBleve      = "bleve"

	defaultPort            = "3000"
	defaultIndexName       = "search-google-books"
	defaultConvertSource   = "google.json"
	defaultConvertDest     = "google_bulk_data.json"
	defaultEngineKind      = EngineKindOpenSearch
	defaultLogLevel        = "info"
	addressSeparator       = ","
	configDirName          = "config"
	configFileNameTemplate = "config.%s.yaml"
)

// credentialEnvAliases are the lower-case names used by existing .env files.
var credentialEnvAliases = map[string]string{
	"ELASTIC_CLOUD_ID": "elastic_cloud_id",
	"ELASTIC_USERID":   "elastic_userid",
	"ELASTIC_PASSWORD": "elastic_password",
}

type Config struct {
	config *viper.Viper
}

// Engine is the connection configuration for the search engine. It is built
// once by Config.Engine and handed to whatever constructs the client.
type Engine struct {
	Kind               string
	Index              string
	CloudID            string
	Addresses          []string
	Username           string
	Password           string
	InsecureSkipVerify bool
	BlevePath          string
	SeedPath           string
}

func Load(env string) (*Config, error) {

	if len(env) == 0 {
		if env = os.Getenv(keyEnv); len(env) == 0 {
			env = envLocal
		}
	}

	configPath, err := getConfigPath(env)

	viperConfig := viper.New()
	if err == nil {
		viperConfig.SetConfigFile(configPath)
		if err := viperConfig.ReadInConfig(); err != nil {
			slog.Warn(fmt.Sprintf("error reading config file, %s", err))
		}
	}
	viperConfig.AutomaticEnv()
	for key, alias := range credentialEnvAliases {
		if err := viperConfig.BindEnv(key, key, alias); err != nil {
			return nil, fmt.Errorf("could not bind environment variable %s: %w", alias, err)
		}
	}

	cfg := &Config{
		config: viperConfig,
	}

	return cfg, nil
}

func (c *Config) GetPort() string {
	return c.getString("PORT", "server.port", defaultPort)
}

func (c *Config) GetLogLevel() string {
	return c.getString("LOG_LEVEL", "log.level", defaultLogLevel)
}

func (c *Config) GetConvertSource() string {
	return c.getString("CONVERT_SOURCE", "convert.source", defaultConvertSource)
}

func (c *Config) GetConvertDestination() string {
	return c.getString("CONVERT_DESTINATION", "convert.destination", defaultConvertDest)
}

func (c *Config) GetIndexName() string {
	return c.getString("ENGINE_INDEX", "engine.index", defaultIndexName)
}

func (c *Config) Engine() Engine {
	return Engine{
		Kind:               strings.ToLower(c.getString("ENGINE_KIND", "engine.kind", defaultEngineKind)),
		Index:              c.GetIndexName(),
		CloudID:            c.getString("ELASTIC_CLOUD_ID", "engine.cloud_id", ""),
		Addresses:          c.getStringSlice("ENGINE_ADDRESSES", "engine.addresses"),
		Username:           c.getString("ELASTIC_USERID", "engine.username", ""),
		Password:           c.getString("ELASTIC_PASSWORD", "engine.password", ""),
		InsecureSkipVerify: c.getBool("ENGINE_INSECURE_SKIP_VERIFY", "engine.insecure_skip_verify"),
		BlevePath:          c.getString("BLEVE_INDEX_PATH", "engine.bleve_path", ""),
		SeedPath:           c.getString("BLEVE_SEED_PATH", "engine.seed_path", ""),
	}
}

// getString prefers the environment variable over the config file key.
func (c *Config) getString(envKey string, fileKey string, fallback string) string {
	value := c.config.GetString(envKey)
	if len(value) == 0 {
		value = c.config.GetString(fileKey)
	}
	if len(value) == 0 {
		value = fallback
	}

	return value
}

func (c *Config) getStringSlice(envKey string, fileKey string) []string {
	if value := c.config.GetString(envKey); len(value) > 0 {
		return splitAddresses(value)
	}

	var addresses []string
	for _, address := range c.config.GetStringSlice(fileKey) {
		addresses = append(addresses, splitAddresses(address)...)
	}
	return addresses
}

func (c *Config) getBool(envKey string, fileKey string) bool {
	if c.config.IsSet(envKey) {
		return c.config.GetBool(envKey)
	}
	return c.config.GetBool(fileKey)
}

func splitAddresses(value string) []string {
	var addresses []string
	for _, address := range strings.Split(value, addressSeparator) {
		if address = strings.TrimSpace(address); address != "" {
			addresses = append(addresses, address)
		}
	}
	return addresses
}

func getProjectRoot() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}

	for {
		configDir := filepath.Join(currentDir, configDirName)
		if info, err := os.Stat(configDir); err == nil && info.IsDir() {
			return currentDir, nil
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir {
			break
		}

		currentDir = parent
	}

	return "", fmt.Errorf("could not find project root (directory containing 'config' folder)")
}

func getConfigPath(env string) (string, error) {
	configFile := fmt.Sprintf(configFileNameTemplate, env)

	projectRoot, err := getProjectRoot()
	if err != nil {
		slog.Warn("failed to find project root with config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("failed to find project root: %w", err)
	}
	configPath := filepath.Join(projectRoot, configDirName, configFile)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		slog.Warn("failed to find config file within config directory, will use environment variables instead", "err", err.Error())
		return "", fmt.Errorf("config file does not exist: %s", configPath)
	}

	return configPath, nil
}
