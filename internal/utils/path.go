package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// AppName names the config directory.
const AppName = "wordtrie"

// PathResolver finds where wordtrie keeps its config file.
type PathResolver struct {
	executableDir string
	homeDir       string
	configDir     string
}

// NewPathResolver determines the executable location and the platform config dir.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	// Resolve any symlinks to get the actual binary location
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executableDir: filepath.Dir(execPath),
		homeDir:       homeDir,
		configDir:     getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", pr.executableDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "linux", "darwin":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, AppName)
		}
		return filepath.Join(homeDir, ".config", AppName)
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(homeDir, "AppData", "Roaming", AppName)
	default:
		return filepath.Join(homeDir, "."+AppName)
	}
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetConfigPath returns the full path for a config file.
// Falls back to other writable locations when the config dir is read-only.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if pr.ensureConfigDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, "."+AppName),
		filepath.Join(os.TempDir(), AppName),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ensureConfigDir creates the directory if needed and tests writability
func (pr *PathResolver) ensureConfigDir(dir string) bool {
	if err := EnsureDir(dir); err != nil {
		log.Debugf("Cannot create config directory %s: %v", dir, err)
		return false
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Config directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}
