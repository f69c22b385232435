package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName = ".notesapp"
	homeEnvVar = "NOTESAPP_HOME"
)

// DataDir returns the base data directory. NOTESAPP_HOME overrides ~/.notesapp.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(homeEnvVar)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	return dataPath("config.toml")
}

// SessionDBPath returns the bbolt file holding the persisted login session.
func SessionDBPath() (string, error) {
	return dataPath("session.db")
}

// NotesDBPath returns the bbolt file used by the daemon's note repository.
func NotesDBPath() (string, error) {
	return dataPath("notes.db")
}

// NotesFilePath returns the JSON file used by the daemon's file note repository.
func NotesFilePath() (string, error) {
	return dataPath("notes.json")
}

func UILogPath() (string, error) {
	return dataPath("ui.log")
}

func DaemonLogPath() (string, error) {
	return dataPath("daemon.log")
}

func dataPath(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
