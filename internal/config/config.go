// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/enhance-forecast/internal/catalog"
	"github.com/iwvelando/enhance-forecast/internal/enhance"
	"github.com/iwvelando/enhance-forecast/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for enhance-forecast.
type Configuration struct {
	Character CharacterConfig `yaml:"character"`
	Data      DataConfig      `yaml:"data"`
	Queries   []QueryConfig   `yaml:"queries"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
	Server    ServerConfig    `yaml:"server,omitempty"`
}

// CharacterConfig holds the character-side enhancement inputs.
type CharacterConfig struct {
	EnhancingLevel int     `yaml:"enhancingLevel" validate:"gte=1"`
	HouseLevel     int     `yaml:"houseLevel" validate:"gte=0,lte=8"`
	ToolBonus      float64 `yaml:"toolBonus" validate:"gte=0"`
	SpeedBonus     float64 `yaml:"speedBonus" validate:"gte=0"`
	BlessedTea     bool    `yaml:"blessedTea"`
	GuzzlingBonus  float64 `yaml:"guzzlingBonus" validate:"gte=0"`
}

// DataConfig points at the catalog and market snapshot files.
type DataConfig struct {
	ItemCatalog    string `yaml:"itemCatalog" validate:"required"`
	MarketSnapshot string `yaml:"marketSnapshot" validate:"required"`
}

// QueryConfig is one item/target-level question to answer.
type QueryConfig struct {
	ItemHrid    string `yaml:"itemHrid" validate:"required,startswith=/items/"`
	TargetLevel int    `yaml:"targetLevel" validate:"gte=1,lte=20"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `yaml:"format,omitempty" validate:"omitempty,oneof=json console"`
	OutputFile string `yaml:"outputFile,omitempty"`
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=pretty csv xlsx"`
	File   string `yaml:"file,omitempty"`
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	Listen          string `yaml:"listen,omitempty"`
	MaxUploadSize   int64  `yaml:"maxUploadSize,omitempty" validate:"gte=0"`
	CacheTTLSeconds int    `yaml:"cacheTTLSeconds,omitempty" validate:"gte=0"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()

	return &configuration, nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Configuration) ApplyDefaults() {
	if c.Character.GuzzlingBonus == 0 {
		c.Character.GuzzlingBonus = 1.0
	}
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	if c.Server.MaxUploadSize == 0 {
		c.Server.MaxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	if c.Server.CacheTTLSeconds == 0 {
		c.Server.CacheTTLSeconds = constants.DefaultPlanCacheTTLSeconds
	}
}

// Validate performs structural validation and returns the first violation.
func (c *Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings for conditions that do not prevent a run.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Queries) == 0 {
		warnings = append(warnings, "no queries configured; nothing will be computed")
	}

	seen := make(map[string]bool)
	for _, query := range c.Queries {
		key := fmt.Sprintf("%s+%d", query.ItemHrid, query.TargetLevel)
		if seen[key] {
			warnings = append(warnings, fmt.Sprintf("query %s to +%d is duplicated", query.ItemHrid, query.TargetLevel))
		}
		seen[key] = true
	}

	if !c.Character.BlessedTea && c.Character.GuzzlingBonus > 1.0 {
		warnings = append(warnings, "guzzlingBonus is set but blessedTea is disabled; the bonus has no effect")
	}

	return warnings
}

// Parameters converts the character config into enhancement parameters.
func (c *Configuration) Parameters() enhance.Parameters {
	return enhance.Parameters{
		EnhancingLevel: c.Character.EnhancingLevel,
		HouseLevel:     c.Character.HouseLevel,
		ToolBonus:      c.Character.ToolBonus,
		SpeedBonus:     c.Character.SpeedBonus,
		BlessedTea:     c.Character.BlessedTea,
		GuzzlingBonus:  c.Character.GuzzlingBonus,
	}
}

// QueryHrid returns the typed hrid for a query.
func (q QueryConfig) QueryHrid() catalog.Hrid {
	return catalog.Hrid(q.ItemHrid)
}

// CacheTTL returns the plan cache lifetime.
func (c *Configuration) CacheTTL() time.Duration {
	return time.Duration(c.Server.CacheTTLSeconds) * time.Second
}
