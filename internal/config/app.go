package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Book points at the content bundle
type Book struct {
	CatalogPath  string `toml:"catalog_path"`
	DocumentURL  string `toml:"document_url"`
	DownloadName string `toml:"download_name"`
	PagesDir     string `toml:"pages_dir"`
}

// Player contains transport timing
type Player struct {
	SkipSeconds         int `toml:"skip_seconds"`
	KeyboardSkipSeconds int `toml:"keyboard_skip_seconds"`
	BufferingDelayMS    int `toml:"buffering_delay_ms"`
	SampleRate          int `toml:"sample_rate"`
}

// Crossfade contains the chapter fade ramp
type Crossfade struct {
	Steps      int `toml:"steps"`
	DurationMS int `toml:"duration_ms"`
}

// Storage contains paths for durable state
type Storage struct {
	DatabasePath string `toml:"database_path"`
	LockPath     string `toml:"lock_path"`
}

// Probe contains asset probe limits
type Probe struct {
	Concurrency    int `toml:"concurrency"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// UI contains front end options
type UI struct {
	Language string `toml:"language"`
}

// App encapsulates all configuration values for the reader.
type App struct {
	Book      Book      `toml:"book"`
	Player    Player    `toml:"player"`
	Crossfade Crossfade `toml:"crossfade"`
	Storage   Storage   `toml:"storage"`
	Probe     Probe     `toml:"probe"`
	Logging   Logging   `toml:"logging"`
	UI        UI        `toml:"ui"`
}

const (
	defaultDocumentURL         = "/book.pdf"
	defaultDownloadName        = "The-Digital-Community-Manifesto.pdf"
	defaultSkipSeconds         = 15
	defaultKeyboardSkipSeconds = 5
	defaultBufferingDelayMS    = 3000
	minBufferingDelayMS        = 500
	defaultSampleRate          = 44100
	defaultCrossfadeSteps      = 10
	defaultCrossfadeDurationMS = 80
	defaultDatabasePath        = "~/.local/share/audiobook-reader/state.db"
	defaultLockPath            = "~/.local/share/audiobook-reader/player.lock"
	defaultProbeConcurrency    = 4
	defaultProbeTimeoutSeconds = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultConfigPath          = "~/.config/audiobook-reader/config.toml"
)

// Default returns an App populated with repository defaults.
func Default() App {
	return App{
		Book: Book{
			DocumentURL:  defaultDocumentURL,
			DownloadName: defaultDownloadName,
		},
		Player: Player{
			SkipSeconds:         defaultSkipSeconds,
			KeyboardSkipSeconds: defaultKeyboardSkipSeconds,
			BufferingDelayMS:    defaultBufferingDelayMS,
			SampleRate:          defaultSampleRate,
		},
		Crossfade: Crossfade{
			Steps:      defaultCrossfadeSteps,
			DurationMS: defaultCrossfadeDurationMS,
		},
		Storage: Storage{
			DatabasePath: defaultDatabasePath,
			LockPath:     defaultLockPath,
		},
		Probe: Probe{
			Concurrency:    defaultProbeConcurrency,
			TimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		UI: UI{
			Language: DefaultLanguage,
		},
	}
}

// SampleConfig returns the annotated sample configuration file
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the sample configuration to path
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file
// yields the defaults. The resolved path and whether it existed are returned.
func Load(path string) (*App, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// Validate ensures the configuration is usable.
func (c *App) Validate() error {
	if c.Player.SkipSeconds <= 0 {
		return errors.New("player.skip_seconds must be positive")
	}
	if c.Player.KeyboardSkipSeconds <= 0 {
		return errors.New("player.keyboard_skip_seconds must be positive")
	}
	if c.Player.BufferingDelayMS < minBufferingDelayMS {
		return fmt.Errorf("player.buffering_delay_ms must be at least %d", minBufferingDelayMS)
	}
	if c.Player.SampleRate <= 0 {
		return errors.New("player.sample_rate must be positive")
	}
	if c.Crossfade.Steps < 1 {
		return errors.New("crossfade.steps must be at least 1")
	}
	if c.Crossfade.DurationMS < 0 {
		return errors.New("crossfade.duration_ms must not be negative")
	}
	if c.Probe.Concurrency < 1 {
		return errors.New("probe.concurrency must be at least 1")
	}
	if c.Probe.TimeoutSeconds <= 0 {
		return errors.New("probe.timeout_seconds must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	if strings.TrimSpace(c.Storage.DatabasePath) == "" {
		return errors.New("storage.database_path must be set")
	}
	return nil
}

// BufferingDelay returns the debounce before a stall is surfaced
func (c *App) BufferingDelay() time.Duration {
	return time.Duration(c.Player.BufferingDelayMS) * time.Millisecond
}

// SkipInterval returns the seek distance for the skip buttons
func (c *App) SkipInterval() float64 {
	return float64(c.Player.SkipSeconds)
}

// KeyboardSkipInterval returns the seek distance for the J/L and arrow keys
func (c *App) KeyboardSkipInterval() float64 {
	return float64(c.Player.KeyboardSkipSeconds)
}

// CrossfadeDuration returns the total fade-out ramp length
func (c *App) CrossfadeDuration() time.Duration {
	return time.Duration(c.Crossfade.DurationMS) * time.Millisecond
}

// ProbeTimeout returns the per-request probe timeout
func (c *App) ProbeTimeout() time.Duration {
	return time.Duration(c.Probe.TimeoutSeconds) * time.Second
}

// EnsureDirectories creates the parent directories of the storage files.
func (c *App) EnsureDirectories() error {
	for _, path := range []string{c.Storage.DatabasePath, c.Storage.LockPath} {
		if strings.TrimSpace(path) == "" {
			continue
		}
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func (c *App) normalize() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.UI.Language) == "" {
		c.UI.Language = DefaultLanguage
	}

	var err error
	if c.Book.CatalogPath, err = expandPath(c.Book.CatalogPath); err != nil {
		return err
	}
	if c.Book.PagesDir, err = expandPath(c.Book.PagesDir); err != nil {
		return err
	}
	if c.Storage.DatabasePath, err = expandPath(c.Storage.DatabasePath); err != nil {
		return err
	}
	if c.Storage.LockPath, err = expandPath(c.Storage.LockPath); err != nil {
		return err
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
