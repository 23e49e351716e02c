package inetcast

import (
	"errors"
	"flag"
)

// Config controls how record batches are converted.
type Config struct {
	// Column is the name of the string column to convert in place.
	Column string `yaml:"column"`
	// BatchParallelism caps how many record batches convert at once.
	// Elements within a batch always convert sequentially, in index order.
	BatchParallelism int `yaml:"batch_parallelism"`
	// LegacyMask selects the historical prefix-length handling. See
	// [inet.ParseLegacy].
	LegacyMask bool `yaml:"legacy_mask"`
	// Render enables the inet to varchar direction instead of the
	// historical unconditional failure.
	Render bool `yaml:"render"`
}

// RegisterFlags registers flags with the default prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.RegisterFlagsWithPrefix("inet-cast.", f)
}

// RegisterFlagsWithPrefix registers flags, adding the provided prefix to
// each flag name.
func (cfg *Config) RegisterFlagsWithPrefix(prefix string, f *flag.FlagSet) {
	f.StringVar(&cfg.Column, prefix+"column", "address", "Name of the string column to convert in place.")
	f.IntVar(&cfg.BatchParallelism, prefix+"batch-parallelism", 1, "Maximum number of record batches converted concurrently.")
	f.BoolVar(&cfg.LegacyMask, prefix+"legacy-mask", false, "Read the prefix length the way the original scanner did.")
	f.BoolVar(&cfg.Render, prefix+"render", false, "Allow converting inet columns back to text.")
}

// Validate checks the configuration.
func (cfg *Config) Validate() error {
	if cfg.Column == "" {
		return errors.New("column name required")
	}
	if cfg.BatchParallelism < 1 {
		return errors.New("batch parallelism must be at least 1")
	}
	return nil
}

func (cfg *Config) options() Options {
	return Options{LegacyMask: cfg.LegacyMask, Render: cfg.Render}
}
