package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/home-lang/den/log"
)

const StateFileName = "state.json"

// State holds the shell's persisted runtime state, kept separate from the
// user-editable config file so a corrupt or hand-edited config never loses
// history.
type State struct {
	// History is the command history, oldest first.
	History []string `json:"history"`
}

// DefaultState returns an empty state
func DefaultState() *State {
	return &State{History: []string{}}
}

// LoadState loads the persisted shell state from disk. A missing or
// unreadable state file degrades to empty state rather than an error.
func LoadState() *State {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState()
	}

	statePath := filepath.Join(configDir, StateFileName)
	data, err := os.ReadFile(statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to read state file: %v", err)
		}
		return DefaultState()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return DefaultState()
	}
	if state.History == nil {
		state.History = []string{}
	}

	return &state
}

// SaveState persists the shell state, trimming history to maxHistory entries.
func SaveState(state *State, maxHistory int) error {
	if maxHistory > 0 && len(state.History) > maxHistory {
		state.History = state.History[len(state.History)-maxHistory:]
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	statePath := filepath.Join(configDir, StateFileName)
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return atomicWriteFile(statePath, data, 0644)
}

// ResetState deletes the persisted state file. Used by `den reset`.
func ResetState() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	statePath := filepath.Join(configDir, StateFileName)
	if err := os.Remove(statePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
