package cliconfig

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bft-labs/formship/internal/domain"
)

// Config holds CLI configuration for formship.
type Config struct {
	URL  string
	Name string

	UserAgent string
	Headers   map[string]string
	Charset   string

	HTTPTimeout time.Duration
	DialTimeout time.Duration

	// Params are raw "name=value" or "name=@path" entries, in order
	Params []string

	// Fixtures maps a logical name to a file whose content a test: URL returns
	Fixtures map[string]string

	Output   string
	Watch    bool
	Debounce time.Duration
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Charset:     "UTF-8",
		HTTPTimeout: 30 * time.Second,
		DialTimeout: 10 * time.Second,
		Debounce:    500 * time.Millisecond,
		LogLevel:    "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: url is required", domain.ErrInvalidConfig)
	}
	if c.Charset == "" {
		c.Charset = "UTF-8"
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("%w: dial timeout must not be negative", domain.ErrInvalidConfig)
	}
	if c.Watch && c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive in watch mode", domain.ErrInvalidConfig)
	}
	for _, p := range c.Params {
		if _, err := ParseParameter(p); err != nil {
			return err
		}
	}
	return nil
}

// Parameters converts Params into domain parameters, preserving order.
func (c *Config) Parameters() ([]domain.Parameter, error) {
	params := make([]domain.Parameter, 0, len(c.Params))
	for _, raw := range c.Params {
		p, err := ParseParameter(raw)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// ParseParameter parses "name=value" into a text parameter and "name=@path"
// into a file parameter. A literal leading @ is written as "name=@@value".
func ParseParameter(raw string) (domain.Parameter, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return domain.Parameter{}, fmt.Errorf("%w: parameter %q must be name=value", domain.ErrInvalidConfig, raw)
	}
	switch {
	case strings.HasPrefix(value, "@@"):
		return domain.Text(name, value[1:]), nil
	case strings.HasPrefix(value, "@"):
		if len(value) == 1 {
			return domain.Parameter{}, fmt.Errorf("%w: parameter %q has an empty path", domain.ErrInvalidConfig, raw)
		}
		return domain.File(name, value[1:]), nil
	}
	return domain.Text(name, value), nil
}

// Header returns Headers as an http.Header.
func (c *Config) Header() http.Header {
	if len(c.Headers) == 0 {
		return nil
	}
	h := make(http.Header, len(c.Headers))
	for k, v := range c.Headers {
		h.Set(k, v)
	}
	return h
}

// ParseHeader parses a "Key: value" flag into Headers.
func (c *Config) ParseHeader(raw string) error {
	k, v, ok := strings.Cut(raw, ":")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return fmt.Errorf("%w: header %q must be Key: value", domain.ErrInvalidConfig, raw)
	}
	if c.Headers == nil {
		c.Headers = map[string]string{}
	}
	c.Headers[k] = strings.TrimSpace(v)
	return nil
}

// LoadFixtures reads every fixture file into memory.
func (c *Config) LoadFixtures() (map[string][]byte, error) {
	if len(c.Fixtures) == 0 {
		return nil, nil
	}
	out := make(map[string][]byte, len(c.Fixtures))
	for name, path := range c.Fixtures {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixture %s: %w", name, err)
		}
		out[name] = b
	}
	return out, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// setStrings replaces a list unless it is empty or the flag was set.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// mergeMap adds entries missing from dst. Entries already in dst win, so
// flag values are never overwritten by lower-precedence sources.
func mergeMap(value map[string]string, dst *map[string]string) {
	if len(value) == 0 {
		return
	}
	if *dst == nil {
		*dst = make(map[string]string, len(value))
	}
	for k, v := range value {
		if _, ok := (*dst)[k]; !ok {
			(*dst)[k] = v
		}
	}
}
