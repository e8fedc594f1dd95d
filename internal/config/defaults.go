package config

const (
	defaultDataDir            = "~/.local/share/reelist"
	defaultLogDir             = "~/.local/share/reelist/logs"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBLanguage       = "en-US"
	defaultTMDBRequestTimeout = 15
	defaultListLimit          = 200
	defaultColorMode          = "auto"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			Language:       defaultTMDBLanguage,
			RequestTimeout: defaultTMDBRequestTimeout,
		},
		UI: UI{
			DefaultLimit: defaultListLimit,
			Color:        defaultColorMode,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
