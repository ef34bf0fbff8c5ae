// Package config resolves which todo and done files a run works on.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	TodoFile string `json:"todo_file"`
	DoneFile string `json:"done_file"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	TodoFileAbs  string `json:"-"`
	DoneFileAbs  string `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Legacy  string // Path to legacy key=value config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TodoFile: "todo.txt",
		DoneFile: "done.txt",
	}
}

// FileName is the project config file name.
const FileName = ".todo.json"

const (
	appDirName     = "todocommander"
	globalFileName = "config.json"
	legacyFileName = "todocommander.cfg"
)

// Keys of the legacy key=value config file.
const (
	legacyTodoKey = "todo_filename"
	legacyDoneKey = "done_filename"
)

// configDir returns $XDG_CONFIG_HOME/todocommander, falling back to
// ~/.config/todocommander. Returns empty string if neither is known.
func configDir(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, appDirName)
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", appDirName)
	}

	return ""
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	TodoFileOverride string            // -f/--todo-file flag value; empty means no override
	DoneFileOverride string            // -d/--done-file flag value; empty means no override
	HasTodoOverride  bool              // -f was given, even if empty
	HasDoneOverride  bool              // -d was given, even if empty
	Env              map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/todocommander/config.json)
// 3. Legacy todocommander.cfg next to the global config
// 4. Project config file at default location (.todo.json, if exists)
// 5. Explicit config file via ConfigPath (replaces 4)
// 6. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	} else if !filepath.IsAbs(workDir) {
		abs, err := filepath.Abs(workDir)
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
		}

		workDir = abs
	}

	cfg := DefaultConfig()

	dir := configDir(input.Env)

	globalCfg, globalPath, err := loadGlobalConfig(dir)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	legacyCfg, legacyPath, err := loadLegacyConfig(dir)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Legacy = legacyPath
	cfg = mergeConfig(cfg, legacyCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	// Apply CLI overrides
	if input.HasTodoOverride || input.TodoFileOverride != "" {
		cfg.TodoFile = input.TodoFileOverride
	}

	if input.HasDoneOverride || input.DoneFileOverride != "" {
		cfg.DoneFile = input.DoneFileOverride
	}

	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir
	cfg.TodoFileAbs = resolve(workDir, cfg.TodoFile)
	cfg.DoneFileAbs = resolve(workDir, cfg.DoneFile)

	return cfg, nil
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(dir string) (Config, string, error) {
	if dir == "" {
		return Config{}, "", nil
	}

	path := filepath.Join(dir, globalFileName)

	globalCfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return globalCfg, path, nil
}

// loadProjectConfig loads the project config file (.todo.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = resolve(workDir, configPath)
		mustExist = true

		// Check existence first to provide a clear "not found" error
		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		// Default project config file - optional
		cfgFile = filepath.Join(workDir, FileName)
		mustExist = false
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a JSONC config file. If mustExist is false, missing
// files return zero config. Explicitly empty paths are rejected.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, explicitEmpty, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	if explicitEmpty["todo_file"] {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrTodoFileEmpty)
	}

	if explicitEmpty["done_file"] {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrDoneFileEmpty)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	// Check which fields were explicitly set to empty
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	for _, key := range []string{"todo_file", "done_file"} {
		if val, exists := raw[key]; exists {
			if str, ok := val.(string); ok && str == "" {
				explicitEmpty[key] = true
			}
		}
	}

	return cfg, explicitEmpty, nil
}

// loadLegacyConfig reads todocommander.cfg, a file of key=value lines.
// Unknown keys and malformed lines are ignored.
func loadLegacyConfig(dir string) (Config, string, error) {
	if dir == "" {
		return Config{}, "", nil
	}

	path := filepath.Join(dir, legacyFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, "", nil
		}

		return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	return ParseLegacy(string(data)), path, nil
}

// ParseLegacy parses the key=value format. A line must hold exactly one "=".
func ParseLegacy(content string) Config {
	var cfg Config

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		parts := strings.Split(strings.TrimSpace(scanner.Text()), "=")
		if len(parts) != 2 {
			continue
		}

		switch parts[0] {
		case legacyTodoKey:
			cfg.TodoFile = parts[1]
		case legacyDoneKey:
			cfg.DoneFile = parts[1]
		}
	}

	return cfg
}

func mergeConfig(base, overlay Config) Config {
	if overlay.TodoFile != "" {
		base.TodoFile = overlay.TodoFile
	}

	if overlay.DoneFile != "" {
		base.DoneFile = overlay.DoneFile
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.TodoFile == "" {
		return ErrTodoFileEmpty
	}

	if cfg.DoneFile == "" {
		return ErrDoneFileEmpty
	}

	return nil
}

// Format renders cfg as JSON, the way a .todo.json file would hold it.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}
