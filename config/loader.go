package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

const fileName = "engine.yaml"

// Load loads the engine configuration.
// Search order: customPath -> ~/.isec/engine.yaml -> ./configs/engine.yaml -> embedded default.
// Files only need the keys they change; everything else keeps the embedded
// default.
func Load(customPath string) (Engine, error) {
	cfg, err := Default()
	if err != nil {
		return Engine{}, err
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Engine{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		return parse(cfg, data, customPath)
	}

	if p := userConfigPath(); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			return parse(cfg, data, p)
		}
	}

	local := filepath.Join("configs", fileName)
	if data, err := os.ReadFile(local); err == nil {
		return parse(cfg, data, local)
	}
	return cfg, nil
}

// Default returns the embedded configuration.
func Default() (Engine, error) {
	return decodeDefault(defaultEngineYAML)
}

func decodeDefault(data []byte) (Engine, error) {
	var cfg Engine
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Engine{}, fmt.Errorf("config: unmarshal embedded default: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Engine{}, fmt.Errorf("config: validate embedded default: %w", err)
	}
	return cfg, nil
}

// Parse overlays YAML data on the embedded default and validates the result.
func Parse(data []byte) (Engine, error) {
	cfg, err := Default()
	if err != nil {
		return Engine{}, err
	}
	return parse(cfg, data, "<data>")
}

func parse(base Engine, data []byte, source string) (Engine, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Engine{}, fmt.Errorf("config: unmarshal %s: %w", source, err)
	}
	if err := cfg.Validate(); err != nil {
		return Engine{}, fmt.Errorf("config: validate %s: %w", source, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".isec", fileName)
}
