package config

import (
	"bytes"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyPeriod                 = "period"
	KeyDatabasePath           = "database.path"
	KeyServerPort             = "server.port"
	KeyIngestCollectionPrefix = "ingest.collection_prefix"
	KeyIngestSheets           = "ingest.sheets"
)

type Config struct {
	// Period stamps every extracted record. The workbooks hardcode it in
	// merged title cells, so it is configuration instead.
	Period   string         `mapstructure:"period" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gte=1,lte=65535"`
}

type IngestConfig struct {
	CollectionPrefix string   `mapstructure:"collection_prefix" validate:"required"`
	Sheets           []string `mapstructure:"sheets"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# senametas configuration
period: "2025"

database:
  path: "./senametas.db"

server:
  port: 8080

ingest:
  collection_prefix: "metas_"
  # Explicit sheet names to process. Empty means every sheet except those
  # whose name contains "SQL".
  sheets: []
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPeriod, "2025")
	v.SetDefault(KeyDatabasePath, "./senametas.db")
	v.SetDefault(KeyServerPort, 8080)
	v.SetDefault(KeyIngestCollectionPrefix, "metas_")
	v.SetDefault(KeyIngestSheets, []string{})
}
