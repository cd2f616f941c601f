package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port   int    `yaml:"port" validate:"gt=0,lte=65535"`
	Gzip   bool   `yaml:"gzip"`
	Indent string `yaml:"indent" validate:"omitempty,excludesall=abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ<>&"`
}

// APIConfig contains settings of the document endpoints
type APIConfig struct {
	Compat   bool   `yaml:"compat"`
	BasePath string `yaml:"basePath" validate:"required,startswith=/"`
}

// CatalogConfig points at the motor catalog file
type CatalogConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level   string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Console bool   `yaml:"console"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server" validate:"required"`
	API     APIConfig     `yaml:"api" validate:"required"`
	Catalog CatalogConfig `yaml:"catalog" validate:"required"`
	Logging LoggingConfig `yaml:"logging" validate:"required"`
}
