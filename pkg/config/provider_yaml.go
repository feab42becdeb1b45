package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML scenario files.
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// LoadConfig loads and normalizes the scenario from the YAML file. Fields
// absent from the file take their defaults.
func (y *YAMLProvider) LoadConfig() (*Scenario, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	scenario := DefaultScenario()
	if err := yaml.Unmarshal(cfgFile, &scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", y.filename, err)
	}

	normalized := scenario.Normalized()
	return &normalized, nil
}

// IsReadOnly always returns true for YAML files.
func (y *YAMLProvider) IsReadOnly() bool { return true }

// Close is a no-op for YAML files.
func (y *YAMLProvider) Close() error { return nil }
