package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched in order when LoadAppConfig gets no path.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Config is the global application configuration
var Config = Default()

// Default returns the configuration used when a key is not set.
func Default() AppConfig {
	return AppConfig{
		Server:  ServerConfig{Port: 16181, Gzip: true},
		API:     APIConfig{BasePath: "/api/v1"},
		Catalog: CatalogConfig{Path: "motors.yml"},
		Logging: LoggingConfig{Level: "info", Console: true},
	}
}

// LoadAppConfig loads and validates the first readable file among paths, or
// DefaultPaths when none are given, and stores the result in Config.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return xerrors.Errorf("failed to read config: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes a YAML document over Default and validates the result.
func Parse(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, xerrors.Errorf("failed to decode config: %v", err)
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg AppConfig) error {
	if err := validator.New().Struct(cfg); err != nil {
		return xerrors.Errorf("invalid config: %v", err)
	}
	return nil
}
