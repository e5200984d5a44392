package config

import "os"

// Config holds all application configuration.
type Config struct {
	ServerAddr   string
	ElasticURL   string
	IndexName    string
	DataPath     string
	DataURL      string
	SchemaPath   string
	TemplatePath string
	SigningKey   []byte
	LogLevel     string
	LogFormat    string
}

// Load reads configuration from the environment, falling back to defaults
// suitable for a local run.
func Load() *Config {
	addr := envOr("SERVER_ADDR", ":8888")

	return &Config{
		ServerAddr:   addr,
		ElasticURL:   envOr("ELASTIC_URL", "http://localhost:9200"),
		IndexName:    envOr("INDEX_NAME", "matcha_places"),
		DataPath:     envOr("DATA_PATH", "./materials/london_matcha_cafes.json"),
		DataURL:      envOr("DATA_URL", "http://localhost"+addr+"/data/london_matcha_cafes.json"),
		SchemaPath:   envOr("SCHEMA_PATH", "./src/templates/schema.json"),
		TemplatePath: envOr("TEMPLATE_PATH", "./src/templates/places.html"),
		SigningKey:   []byte(os.Getenv("MY_SIGNING_KEY")),
		LogLevel:     envOr("LOG_LEVEL", "info"),
		LogFormat:    envOr("LOG_FORMAT", "text"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
