package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/home-lang/den/log"
)

const ConfigFileName = "config.json"

// GetConfigDir returns the path to the shell's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".den"), nil
}

// Config represents the shell configuration
type Config struct {
	// Workers is the number of worker goroutines used for parallel PATH
	// scanning. 0 means autodetect from the host's logical core count.
	Workers int `json:"workers"`
	// ShardCount is the shard count of the concurrent maps backing command
	// discovery. Must be a power-of-two-ish small number; 0 means default.
	ShardCount int `json:"shard_count"`
	// HistorySize is the maximum number of history entries kept in the
	// state file. Older entries are dropped.
	HistorySize int `json:"history_size"`
	// GitPrompt enables the git branch segment in the prompt.
	GitPrompt bool `json:"git_prompt"`
	// ColorPrompt enables styled prompt and diagnostics output when the
	// terminal supports it.
	ColorPrompt bool `json:"color_prompt"`
	// SuggestTypos enables "did you mean" suggestions for unknown commands.
	SuggestTypos bool `json:"suggest_typos"`
	// MaxSuggestions caps how many typo suggestions are shown.
	MaxSuggestions int `json:"max_suggestions"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Workers:        0,
		ShardCount:     16,
		HistorySize:    1000,
		GitPrompt:      true,
		ColorPrompt:    true,
		SuggestTypos:   true,
		MaxSuggestions: 3,
	}
}

// LoadConfig loads the configuration from disk. If it cannot be done, we return the default configuration.
func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to read config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}

	return &config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomicWriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
