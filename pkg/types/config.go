package types

import "time"

// HTTPConfig holds shared HTTP settings for the metadata client.
type HTTPConfig struct {
	// Timeout bounds every request, including retries.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "movie-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429/503 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// TMDBConfig holds the metadata service endpoints and credential.
type TMDBConfig struct {
	// BaseURL is the API root, with trailing slash
	// (default "https://api.themoviedb.org/3/").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// ImageBaseURL is prefixed to poster paths
	// (default "https://image.tmdb.org/t/p/w500").
	ImageBaseURL string `json:"image_base_url" yaml:"image_base_url" mapstructure:"image_base_url"`

	// APIKey is the v3 API key sent as the api_key query parameter.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// BreakerConfig tunes the circuit breaker in front of the metadata service.
type BreakerConfig struct {
	// MinRequests is the number of requests in an interval before the
	// failure ratio is evaluated.
	MinRequests uint32 `json:"min_requests" yaml:"min_requests" mapstructure:"min_requests"`

	// FailureRatio trips the breaker when reached.
	FailureRatio float64 `json:"failure_ratio" yaml:"failure_ratio" mapstructure:"failure_ratio"`

	// Interval is the cyclic period after which closed-state counts reset.
	Interval time.Duration `json:"interval" yaml:"interval" mapstructure:"interval"`

	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration `json:"open_timeout" yaml:"open_timeout" mapstructure:"open_timeout"`
}

// StorageConfig locates the local preferences database.
type StorageConfig struct {
	// DataDir holds movie-search.db (default ~/.local/share/movie-search).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// LogConfig selects the diagnostic log level.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all settings for the application.
type Config struct {
	TMDB    TMDBConfig    `json:"tmdb" yaml:"tmdb" mapstructure:"tmdb"`
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
	Breaker BreakerConfig `json:"breaker" yaml:"breaker" mapstructure:"breaker"`
	Storage StorageConfig `json:"storage" yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
