package cliconfig

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	URL         string            `toml:"url"`
	Name        string            `toml:"name"`
	UserAgent   string            `toml:"user_agent"`
	Charset     string            `toml:"charset"`
	HTTPTimeout string            `toml:"http_timeout"`
	DialTimeout string            `toml:"dial_timeout"`
	Fields      []string          `toml:"fields"`
	Files       []string          `toml:"files"`
	Output      string            `toml:"output"`
	Watch       *bool             `toml:"watch"`
	Debounce    string            `toml:"debounce"`
	LogLevel    string            `toml:"log_level"`
	Headers     map[string]string `toml:"headers"`
	Fixtures    map[string]string `toml:"fixtures"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.formship/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".formship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
// Fields are sent before files, each list in file order.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", fc.URL, &cfg.URL)
	s.setString("name", fc.Name, &cfg.Name)
	s.setString("user-agent", fc.UserAgent, &cfg.UserAgent)
	s.setString("charset", fc.Charset, &cfg.Charset)
	s.setString("output", fc.Output, &cfg.Output)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("dial-timeout", fc.DialTimeout, &cfg.DialTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("watch", fc.Watch, &cfg.Watch)

	params := make([]string, 0, len(fc.Fields)+len(fc.Files))
	params = append(params, fc.Fields...)
	for _, f := range fc.Files {
		params = append(params, fileEntry(f))
	}
	s.setStrings("field", params, &cfg.Params)

	mergeMap(fc.Headers, &cfg.Headers)
	mergeMap(fc.Fixtures, &cfg.Fixtures)

	return nil
}

// fileEntry turns a "name=path" files entry into the "name=@path" form.
func fileEntry(f string) string {
	name, path, ok := strings.Cut(f, "=")
	if !ok || strings.HasPrefix(path, "@") {
		return f
	}
	return name + "=@" + path
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
