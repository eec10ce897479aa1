package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "clockr"

	// ConfigFileName is the name of the optional INI configuration file
	ConfigFileName = "clockr.ini"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the clockr configuration directory path.
// Linux: ~/.config/clockr (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\clockr (via os.UserCacheDir)
//
// The directory is not created; clockr only ever reads from it.
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

// DefaultConfigPath returns the path of the configuration file inside the
// application directory.
func DefaultConfigPath() (string, error) {
	dir, err := GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, ConfigFileName), nil
}

func lazyLoad() {
	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)

		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
