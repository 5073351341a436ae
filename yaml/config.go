// Package yaml loads harvest configuration files.
package yaml

import (
	"os"

	"github.com/fwojciec/harvest"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the YAML file at path over the default configuration.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*harvest.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, harvest.Errorf(harvest.ENOTFOUND, "config file not found: %s", path)
		}
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data over the default configuration.
// Unknown keys are rejected.
func ParseConfig(data []byte) (*harvest.Config, error) {
	cfg := harvest.DefaultConfig()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
