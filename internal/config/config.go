// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for vibes.
//
// Configuration file locations (in order of precedence):
//   - ~/.vibes/config.toml
//   - ~/.vibes/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/vibes-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete vibes configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Model is passed to the prompt builder and shown in the header.
	Model string `toml:"model" json:"model"`

	UI      UIConfig      `toml:"ui" json:"ui"`
	Stream  StreamConfig  `toml:"stream" json:"stream"`
	Storage StorageConfig `toml:"storage" json:"storage"`
	Prompts PromptsConfig `toml:"prompts" json:"prompts"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is "dark", "light" or "auto"
	Theme string `toml:"theme" json:"theme"`
	// StickyOffset is how many rows past a code segment's top the view must
	// scroll before the segment pins
	StickyOffset int `toml:"sticky_offset" json:"sticky_offset"`
	// StickyMode is "auto" (scroll notifications) or "poll"
	StickyMode string `toml:"sticky_mode" json:"sticky_mode"`
	// PollIntervalMs is the sample rate of the polling fallback
	PollIntervalMs int `toml:"poll_interval_ms" json:"poll_interval_ms"`
	// Mouse enables wheel scrolling
	Mouse bool `toml:"mouse" json:"mouse"`
	// ShowStats shows generation timing under AI messages
	ShowStats bool `toml:"show_stats" json:"show_stats"`
}

// StreamConfig controls how streamed tokens reach the screen.
type StreamConfig struct {
	// BatchSize is how many tokens are buffered before a forced flush
	BatchSize int `toml:"batch_size" json:"batch_size"`
	// MaxFPS caps re-renders per second while streaming
	MaxFPS int `toml:"max_fps" json:"max_fps"`
	// ReplayRate is tokens per second for the replay streamer
	ReplayRate float64 `toml:"replay_tokens_per_sec" json:"replay_tokens_per_sec"`
	// ReplayFile is replayed as the AI reply to every prompt when set
	ReplayFile string `toml:"replay_file" json:"replay_file"`
}

// StorageConfig locates the session database.
type StorageConfig struct {
	Path string `toml:"path" json:"path"`
}

// PromptsConfig controls system prompt assembly.
type PromptsConfig struct {
	// StylePrompt is used for sessions without their own
	StylePrompt string `toml:"style_prompt" json:"style_prompt"`
	// CacheTTLMinutes expires fetched docs; 0 keeps them for the process
	CacheTTLMinutes int `toml:"cache_ttl_minutes" json:"cache_ttl_minutes"`
	// RedisURL shares the doc cache through Redis when set
	RedisURL string `toml:"redis_url" json:"redis_url"`
	// FetchTimeoutSecs bounds each doc download
	FetchTimeoutSecs int `toml:"fetch_timeout_secs" json:"fetch_timeout_secs"`
	// Docs replaces the built-in doc sources when non-empty
	Docs []DocConfig `toml:"docs" json:"docs,omitempty"`
}

// DocConfig is one reference doc source.
type DocConfig struct {
	Name  string `toml:"name" json:"name"`
	Label string `toml:"label" json:"label"`
	URL   string `toml:"url" json:"url"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// Level is trace, debug, info, warn or error
	Level string `toml:"level" json:"level"`
	// Path is the log file; the terminal belongs to the UI
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Model:   "anthropic/claude-3.7-sonnet",

		UI: UIConfig{
			Theme:          "auto",
			StickyOffset:   4,
			StickyMode:     "auto",
			PollIntervalMs: 100,
			Mouse:          true,
		},

		Stream: StreamConfig{
			BatchSize:  15,
			MaxFPS:     30,
			ReplayRate: 60,
		},

		Prompts: PromptsConfig{
			StylePrompt:      "DIY zine",
			FetchTimeoutSecs: 30,
		},

		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the vibes configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".vibes"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	return inConfigDir("config.toml")
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	return inConfigDir("config.json")
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

func inConfigDir(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// A file that fails to parse is reported alongside the defaults.
func Load() (*Config, error) {
	var loadErr error

	for _, candidate := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := candidate()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		loadErr = err
		break
	}

	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file with full
// validation. ".json" files are read as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config %s: %w", path, err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish runs the post-load pipeline shared by every source.
func (c *Config) finish() error {
	c.ApplyEnvOverrides()
	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# vibes configuration file\n")
	sb.WriteString("# Generated by vibes - edit with care\n\n")

	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration as JSON atomically.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes     = []string{"dark", "light", "auto"}
	validStickyMode = []string{"auto", "poll"}
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error"}
)

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if !oneOf(c.UI.Theme, validThemes) {
		add("ui.theme", fmt.Sprintf("must be one of %s", strings.Join(validThemes, ", ")))
	}
	if c.UI.StickyOffset < 0 || c.UI.StickyOffset > 1000 {
		add("ui.sticky_offset", "must be between 0 and 1000")
	}
	if !oneOf(c.UI.StickyMode, validStickyMode) {
		add("ui.sticky_mode", fmt.Sprintf("must be one of %s", strings.Join(validStickyMode, ", ")))
	}
	if c.UI.PollIntervalMs < 10 || c.UI.PollIntervalMs > 5000 {
		add("ui.poll_interval_ms", "must be between 10 and 5000")
	}

	if c.Stream.BatchSize < 1 || c.Stream.BatchSize > 1000 {
		add("stream.batch_size", "must be between 1 and 1000")
	}
	if c.Stream.MaxFPS < 1 || c.Stream.MaxFPS > 240 {
		add("stream.max_fps", "must be between 1 and 240")
	}
	if c.Stream.ReplayRate <= 0 {
		add("stream.replay_tokens_per_sec", "must be positive")
	}

	if c.Prompts.CacheTTLMinutes < 0 {
		add("prompts.cache_ttl_minutes", "must not be negative")
	}
	if c.Prompts.FetchTimeoutSecs < 1 || c.Prompts.FetchTimeoutSecs > 600 {
		add("prompts.fetch_timeout_secs", "must be between 1 and 600")
	}
	if c.Prompts.RedisURL != "" {
		if u, err := url.Parse(c.Prompts.RedisURL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			add("prompts.redis_url", "must be a redis:// or rediss:// URL")
		}
	}
	for i, d := range c.Prompts.Docs {
		field := "prompts.docs[" + strconv.Itoa(i) + "]"
		if d.Label == "" {
			add(field+".label", "is required")
		}
		if u, err := url.Parse(d.URL); err != nil || u.Scheme == "" || u.Host == "" {
			add(field+".url", "must be an absolute URL")
		}
	}

	if !oneOf(strings.ToLower(c.Log.Level), validLogLevels) {
		add("log.level", fmt.Sprintf("must be one of %s", strings.Join(validLogLevels, ", ")))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty and zero fields, resolving file locations under
// the config directory.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.StickyMode == "" {
		c.UI.StickyMode = d.UI.StickyMode
	}
	if c.UI.PollIntervalMs == 0 {
		c.UI.PollIntervalMs = d.UI.PollIntervalMs
	}
	if c.Stream.BatchSize == 0 {
		c.Stream.BatchSize = d.Stream.BatchSize
	}
	if c.Stream.MaxFPS == 0 {
		c.Stream.MaxFPS = d.Stream.MaxFPS
	}
	if c.Stream.ReplayRate == 0 {
		c.Stream.ReplayRate = d.Stream.ReplayRate
	}
	if c.Prompts.StylePrompt == "" {
		c.Prompts.StylePrompt = d.Prompts.StylePrompt
	}
	if c.Prompts.FetchTimeoutSecs == 0 {
		c.Prompts.FetchTimeoutSecs = d.Prompts.FetchTimeoutSecs
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}

	if dir, err := ConfigDir(); err == nil {
		if c.Storage.Path == "" {
			c.Storage.Path = filepath.Join(dir, "vibes.db")
		}
		if c.Log.Path == "" {
			c.Log.Path = filepath.Join(dir, "vibes.log")
		}
	}
}

// ApplyEnvOverrides applies VIBES_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("VIBES_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("VIBES_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("VIBES_STICKY_MODE"); v != "" {
		c.UI.StickyMode = v
	}
	if v := os.Getenv("VIBES_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("VIBES_STYLE_PROMPT"); v != "" {
		c.Prompts.StylePrompt = v
	}
	if v := os.Getenv("VIBES_REDIS_URL"); v != "" {
		c.Prompts.RedisURL = v
	}
	if v := os.Getenv("VIBES_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("VIBES_REPLAY_FILE"); v != "" {
		c.Stream.ReplayFile = v
	}
}

// PollInterval returns UI.PollIntervalMs as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.UI.PollIntervalMs) * time.Millisecond
}

// CacheTTL returns Prompts.CacheTTLMinutes as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Prompts.CacheTTLMinutes) * time.Minute
}

// FetchTimeout returns Prompts.FetchTimeoutSecs as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Prompts.FetchTimeoutSecs) * time.Second
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a value by its TOML key path, e.g. "ui.sticky_offset".
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set parses value into the field at key.
func (c *Config) Set(key, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("%s: cannot set %s from the command line", key, field.Kind())
	}
	return nil
}

// lookup walks TOML tags to the addressed field.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	v := reflect.ValueOf(c).Elem()
	parts := strings.Split(key, ".")
	for i, part := range parts {
		if v.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("%s is not a section", strings.Join(parts[:i], "."))
		}
		next, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown key: %s", strings.Join(parts[:i+1], "."))
		}
		v = next
	}
	return v, nil
}

func fieldByTag(v reflect.Value, tag string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if name == tag {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Prompts.Docs != nil {
		clone.Prompts.Docs = append([]DocConfig(nil), c.Prompts.Docs...)
	}
	return &clone
}

// String returns the config as indented JSON with the Redis URL redacted.
func (c *Config) String() string {
	safe := c.Clone()
	if safe.Prompts.RedisURL != "" {
		if u, err := url.Parse(safe.Prompts.RedisURL); err == nil {
			safe.Prompts.RedisURL = u.Redacted()
		}
	}
	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
