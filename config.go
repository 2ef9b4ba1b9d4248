package heart

import (
	"fmt"
	"time"

	"github.com/sauerbraten/jsonfile"
)

// Config describes a sampling run and how its result is revealed
// to a progressive consumer. It is read from JSON files which may
// contain whole-line // comments.
type Config struct {
	// Requested is the density hint passed to Sampler.Sample.
	Requested int           `json:"requested"`
	Sampler   SamplerConfig `json:"sampler"`
	// SortVertical orders the cloud bottom-up before it is revealed.
	SortVertical bool `json:"sort_vertical"`
	// Batch is the number of points revealed per tick.
	Batch int `json:"batch"`
	// TickMillis is the interval between reveal ticks in milliseconds.
	TickMillis int `json:"tick_millis"`
}

// DefaultConfig returns the configuration of the heart animation:
// 20000 requested points revealed 200 at a time roughly every frame.
func DefaultConfig() Config {
	return Config{
		Requested:    20000,
		Sampler:      DefaultSamplerConfig(),
		SortVertical: true,
		Batch:        200,
		TickMillis:   16,
	}
}

// LoadConfig parses the JSON file at path over DefaultConfig, so
// fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	err := jsonfile.ParseFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the sampler settings and reveal parameters.
func (cfg Config) Validate() error {
	if err := cfg.Sampler.Validate(); err != nil {
		return err
	}
	if cfg.Batch <= 0 {
		return errMsg("reveal batch must be positive")
	}
	if cfg.TickMillis < 0 {
		return errMsg("negative tick interval")
	}
	return nil
}

// Tick returns the reveal interval as a duration.
func (cfg Config) Tick() time.Duration {
	return time.Duration(cfg.TickMillis) * time.Millisecond
}

// NewSampler returns a sampler for f configured by cfg.Sampler.
func (cfg Config) NewSampler(f Field3) (*Sampler, error) {
	return NewSampler(f, cfg.Sampler)
}
