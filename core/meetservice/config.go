package meetservice

// Config holds connection settings for the remote meet-management service.
type Config struct {
	// BaseURL is the root of the meet-management API.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8000"`
	// APIKey is sent as X-API-Key when set.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is how many times a failed read is retried.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryBackoffMs is the initial backoff between read retries, doubled per attempt.
	RetryBackoffMs int `mapstructure:"retry_backoff_ms" default:"250"`
}
