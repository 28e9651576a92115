package cliconfig

import (
	"os"
	"strings"
)

// ApplyEnvConfig applies configuration from environment variables (FORMSHIP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", os.Getenv("FORMSHIP_URL"), &cfg.URL)
	s.setString("name", os.Getenv("FORMSHIP_NAME"), &cfg.Name)
	s.setString("user-agent", os.Getenv("FORMSHIP_USER_AGENT"), &cfg.UserAgent)
	s.setString("charset", os.Getenv("FORMSHIP_CHARSET"), &cfg.Charset)
	s.setString("output", os.Getenv("FORMSHIP_OUTPUT"), &cfg.Output)
	s.setString("log-level", os.Getenv("FORMSHIP_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", os.Getenv("FORMSHIP_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("dial-timeout", os.Getenv("FORMSHIP_DIAL_TIMEOUT"), &cfg.DialTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv("FORMSHIP_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("FORMSHIP_WATCH"), &cfg.Watch)

	// FORMSHIP_HEADERS holds "Key: value" pairs separated by newlines.
	if v := os.Getenv("FORMSHIP_HEADERS"); v != "" && !changed["header"] {
		env := Config{}
		for _, line := range strings.Split(v, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := env.ParseHeader(line); err != nil {
				return err
			}
		}
		for k, val := range env.Headers {
			if cfg.Headers == nil {
				cfg.Headers = map[string]string{}
			}
			cfg.Headers[k] = val
		}
	}

	return nil
}
