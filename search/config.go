package search

// Config controls searcher behavior.
//
// Example:
//
//	config := search.DefaultConfig()
//	config.UsePrefilter = false // plain skip search only
//	s, err := search.NewWithConfig(p, config)
type Config struct {
	// UsePrefilter enables run-based candidate search ahead of the skip
	// loop. It never changes which offset is reported.
	// Default: true
	UsePrefilter bool

	// MinPrefilterLen is the shortest fixed run worth scanning for.
	// Patterns whose longest run is shorter get no prefilter.
	// Default: 1
	MinPrefilterLen int

	// MaxPrefilterRuns caps how many equally long runs are scanned together
	// with Aho-Corasick.
	// Default: 8
	MaxPrefilterRuns int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UsePrefilter:     true,
		MinPrefilterLen:  1,
		MaxPrefilterRuns: 8,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges (checked only when UsePrefilter is true):
//   - MinPrefilterLen: 1 to 64
//   - MaxPrefilterRuns: 1 to 64
func (c Config) Validate() error {
	if !c.UsePrefilter {
		return nil
	}
	if c.MinPrefilterLen < 1 || c.MinPrefilterLen > 64 {
		return &ConfigError{
			Field:   "MinPrefilterLen",
			Message: "must be between 1 and 64",
		}
	}
	if c.MaxPrefilterRuns < 1 || c.MaxPrefilterRuns > 64 {
		return &ConfigError{
			Field:   "MaxPrefilterRuns",
			Message: "must be between 1 and 64",
		}
	}
	return nil
}
