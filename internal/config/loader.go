package config

import (
	"os"
	"path/filepath"
)

// Loader resolves and reads the settings file.
type Loader struct {
	Version      string // build version, "dev" enables the working-dir RC
	OverridePath string
}

// NewLoader creates a Loader. overridePath wins over every other location
// when it exists; the SNAPMARK_CONFIG environment variable is consulted when
// it is empty.
func NewLoader(version, overridePath string) *Loader {
	if overridePath == "" {
		overridePath = os.Getenv("SNAPMARK_CONFIG")
	}
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads the configuration, returning defaults when no file is found.
func (l *Loader) Load() (*Config, error) {
	path := l.ConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ConfigPath returns the settings file location, or empty when none exists.
// Lookup order: override path, .snapmarkrc in the working directory (dev
// builds only), then the XDG config dir.
func (l *Loader) ConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		local := filepath.Join(wd, ".snapmarkrc")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "snapmark.rc"} {
		path := filepath.Join(home, ".config", "snapmark", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
