package config

import (
	"fmt"
	"os"

	"github.com/spf13/cast"

	"github.com/wricardo/blockmatch/game/engine"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "BLOCKMATCH_"

// LookupFunc resolves an environment variable
type LookupFunc func(key string) (string, bool)

// ApplyEnv returns a copy of base with BLOCKMATCH_* overrides applied from
// the process environment
func ApplyEnv(base *engine.Config) (*engine.Config, error) {
	return ApplyLookup(base, os.LookupEnv)
}

// ApplyLookup returns a copy of base with overrides resolved through lookup.
// The result is validated.
func ApplyLookup(base *engine.Config, lookup LookupFunc) (*engine.Config, error) {
	if base == nil {
		base = engine.DefaultConfig()
	}
	config := *base

	ints := map[string]*int{
		"BOARD_SIZE": &config.BoardSize,
		"TILE_TYPES": &config.TileTypes,
		"REWARD":     &config.Reward,
	}
	for key, dst := range ints {
		if raw, ok := lookup(EnvPrefix + key); ok && raw != "" {
			v, err := cast.ToIntE(raw)
			if err != nil {
				return nil, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = v
		}
	}

	floats := map[string]*float64{
		"TILE_SIZE":  &config.TileSize,
		"FALL_SPEED": &config.FallSpeed,
		"ORIGIN_X":   &config.OriginX,
		"ORIGIN_Y":   &config.OriginY,
	}
	for key, dst := range floats {
		if raw, ok := lookup(EnvPrefix + key); ok && raw != "" {
			v, err := cast.ToFloat64E(raw)
			if err != nil {
				return nil, fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = v
		}
	}

	if raw, ok := lookup(EnvPrefix + "SEED"); ok && raw != "" {
		v, err := cast.ToUint64E(raw)
		if err != nil {
			return nil, fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		config.Seed = v
	}
	if raw, ok := lookup(EnvPrefix + "SYMBOLS"); ok {
		config.Symbols = raw
	}

	if err := engine.ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}
