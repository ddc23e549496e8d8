package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config

	// profilePath, when set, overrides config-based profile discovery.
	profilePath string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithProfilePath pins the profile file to an explicit path, skipping
// the configured search paths. Used by the --profile CLI flag.
func WithProfilePath(path string) Option {
	return func(a *application) {
		a.profilePath = path
	}
}
