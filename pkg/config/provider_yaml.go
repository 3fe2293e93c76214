package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements Provider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{filename: filename}
}

// LoadConfig loads the complete configuration from the YAML file.
// Sections the file omits keep their zero values; defaulting is the
// caller's concern.
func (y *YAMLProvider) LoadConfig() (*Data, error) {
	raw, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %s: %w", y.filename, err)
	}

	cfg := &Data{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %s: %w", y.filename, err)
	}

	return cfg, nil
}

// GetDataset returns the dataset section
func (y *YAMLProvider) GetDataset() (*DatasetData, error) {
	cfg, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &cfg.Dataset, nil
}

// GetHTTP returns the HTTP server section
func (y *YAMLProvider) GetHTTP() (*HTTPData, error) {
	cfg, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &cfg.HTTP, nil
}

// GetDisplay returns the display section
func (y *YAMLProvider) GetDisplay() (*DisplayData, error) {
	cfg, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return &cfg.Display, nil
}

// IsReadOnly returns true; YAML files are not written by the calculator
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}
