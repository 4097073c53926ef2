// Package config loads the application configuration the host adapters
// share: where rules and converter profiles live, which profile converts by
// default, and how the HTTP server and logger behave.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk YAML configuration.
type Config struct {
	RuleDir      string `yaml:"rule_dir"`
	ConverterDir string `yaml:"converter_dir"`
	Profile      string `yaml:"profile"`
	OutputDir    string `yaml:"output_dir"`
	HTTP         HTTP   `yaml:"http"`
	Log          Log    `yaml:"log"`
}

// HTTP configures the server host adapter.
type HTTP struct {
	Addr          string   `yaml:"addr"`
	ShutdownGrace Duration `yaml:"shutdown_grace"`
}

// Duration decodes YAML strings like "5s" into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the plain time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Log configures the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		RuleDir:      "assets/parser",
		ConverterDir: "assets/converter",
		Profile:      "default",
		OutputDir:    "output",
		HTTP: HTTP{
			Addr:          ":8282",
			ShutdownGrace: Duration(5 * time.Second),
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}
