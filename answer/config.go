package answer

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/serpjson/locator"
)

// Config holds all service configuration.
type Config struct {
	DBPath    string                `yaml:"db_path"`
	SearchURL string                `yaml:"search_url"`
	HTTPAddr  string                `yaml:"http_addr"`
	Browser   locator.BrowserConfig `yaml:"browser"`
	Selectors locator.Selectors     `yaml:"selectors"`
	Clean     CleanConfig           `yaml:"clean"`
}

// CleanConfig overrides the recovery pipeline's data-driven checks.
type CleanConfig struct {
	Placeholders []string `yaml:"placeholders"`
	RequiredKeys []string `yaml:"required_keys"`
}

func (c *Config) defaults() {
	if c.DBPath == "" {
		c.DBPath = "serpjson.db"
	}
	if c.SearchURL == "" {
		c.SearchURL = "https://www.google.com/search?udm=50"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8086"
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
