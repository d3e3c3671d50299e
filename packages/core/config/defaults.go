package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:        15000, // 15 seconds
		MaxRedirects:   10,
		Proxy:          "",
		Headers:        nil,
		ExpectedStatus: 200,
		Iterations:     5,
		Rate:           0,
	}
}
