package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Profile ProfileConfig     `yaml:"profile"`
	Backups BackupConfig      `yaml:"backups"`
	Presets PresetConfig      `yaml:"presets"`
	Game    GameConfig        `yaml:"game"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Profile.Validate(); err != nil {
		return err
	}
	if err := c.Backups.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ProfileConfig locates the game's profile file. Path takes priority;
// when empty, SearchPaths are probed in order.
type ProfileConfig struct {
	Path        string   `yaml:"path"`
	SearchPaths []string `yaml:"search_paths"`
}

// Validate validates the profile configuration.
func (c *ProfileConfig) Validate() error {
	if c.Path == "" && len(c.SearchPaths) == 0 {
		return fmt.Errorf("profile: either path or search_paths must be set")
	}
	return nil
}

// BackupConfig holds the backup store location and retention policy.
type BackupConfig struct {
	Dir        string `yaml:"dir"`
	IndexPath  string `yaml:"index_path"`
	KeepCount  int    `yaml:"keep_count"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// MaxAge returns the age retention threshold as a duration.
func (c *BackupConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeDays) * 24 * time.Hour
}

// Validate validates the backup configuration.
func (c *BackupConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
		validation.Field(&c.IndexPath, validation.Required),
		validation.Field(&c.KeepCount, validation.Min(1)),
		validation.Field(&c.MaxAgeDays, validation.Min(0)),
	)
}

// PresetConfig holds the optional directory of user preset files.
type PresetConfig struct {
	Dir string `yaml:"dir"`
}

// GameConfig holds game process detection settings. ProcessNames are
// matched against running processes before each commit; empty disables
// the check.
type GameConfig struct {
	ProcessNames []string `yaml:"process_names"`
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// DefaultProfileSearchPaths returns the game's usual profile
// locations, newest title first.
func DefaultProfileSearchPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	docs := filepath.Join(home, "Documents")
	return []string{
		filepath.Join(docs, "Battlefield 6", "settings", "PROFSAVE_profile"),
		filepath.Join(docs, "Battlefield 2042", "settings", "PROFSAVE_profile"),
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Profile: ProfileConfig{
			SearchPaths: DefaultProfileSearchPaths(),
		},
		Backups: BackupConfig{
			Dir:        "./backups",
			IndexPath:  "./fieldtuner.db",
			KeepCount:  20,
			MaxAgeDays: 30,
		},
		Game: GameConfig{
			ProcessNames: []string{"bf6.exe", "bf2042.exe"},
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
