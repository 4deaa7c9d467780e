package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const pinballConfigFile = "pinball.yaml"

// LoadPinball loads the table configuration.
// Search order: customPath -> ~/.arcade/configs/pinball.yaml ->
// ./configs/pinball.yaml -> embedded default -> hardcoded default.
// Files overlay the hardcoded defaults, so a partial file only changes the
// keys it names. Only an explicit customPath turns read or parse failures
// into errors; the implicit locations are skipped when unusable.
func LoadPinball(customPath string) (PinballConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PinballConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parsePinball(data)
		if err != nil {
			return PinballConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(pinballConfigFile), filepath.Join("configs", pinballConfigFile)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parsePinball(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parsePinball(defaultPinballYAML); err == nil {
		return cfg, nil
	}
	return DefaultPinballConfig(), nil // Fallback to hardcoded if embed fails
}

// parsePinball decodes YAML over the hardcoded defaults and validates the
// result.
func parsePinball(data []byte) (PinballConfig, error) {
	cfg := DefaultPinballConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PinballConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PinballConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
