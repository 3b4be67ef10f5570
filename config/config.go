// Package config loads the replication queue's tunables from a TOML file,
// following the same github.com/BurntSushi/toml decode/encode pattern the
// reference pack uses for its own on-disk metadata: DecodeFile with sane
// in-code defaults when no file is present.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable listed in the specification's external
// interfaces section: the batch size and the four accountant limits. The
// demo CLI's own settings live in its Options struct, not here.
type Config struct {
	// MaxBatchSizeBytes bounds a RequestForPeer batch; overridden by the
	// single-message guarantee for any op that alone exceeds it.
	MaxBatchSizeBytes int64 `toml:"max_batch_size_bytes"`

	// LocalSoftLimitBytes and LocalHardLimitBytes bound one queue's own
	// accountant.
	LocalSoftLimitBytes int64 `toml:"local_soft_limit_bytes"`
	LocalHardLimitBytes int64 `toml:"local_hard_limit_bytes"`

	// GlobalSoftLimitBytes and GlobalHardLimitBytes bound the process-wide
	// accountant shared by every queue in the process.
	GlobalSoftLimitBytes int64 `toml:"global_soft_limit_bytes"`
	GlobalHardLimitBytes int64 `toml:"global_hard_limit_bytes"`
}

// Default returns the configuration the demo CLI runs with when no file is
// supplied: generous enough to run a multi-peer demo without hitting
// admission control by accident.
func Default() Config {
	return Config{
		MaxBatchSizeBytes:    1 << 20,  // 1 MiB
		LocalSoftLimitBytes:  32 << 20, // 32 MiB
		LocalHardLimitBytes:  64 << 20, // 64 MiB
		GlobalSoftLimitBytes: 128 << 20,
		GlobalHardLimitBytes: 256 << 20,
	}
}

// Load decodes a TOML file at path over the defaults, so a partial file
// only needs to name the tunables it wants to override.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode queue config %s: %w", path, err)
	}
	return cfg, nil
}
