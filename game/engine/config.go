package engine

import (
	"fmt"
	"math"
)

// Config holds the fixed parameters of a board engine
type Config struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BoardSize   int     `json:"board_size"`
	TileSize    float64 `json:"tile_size"`
	TileTypes   int     `json:"tile_types"`
	Symbols     string  `json:"symbols,omitempty"` // defaults to the first TileTypes of DefaultSymbols
	FallSpeed   float64 `json:"fall_speed"`
	Reward      int     `json:"reward"`
	OriginX     float64 `json:"origin_x"`
	OriginY     float64 `json:"origin_y"`
	Seed        uint64  `json:"seed,omitempty"` // zero picks a random seed
}

// DefaultConfig returns the classic 8x8, five-tile setup centered in an 800x450 screen
func DefaultConfig() *Config {
	cfg := &Config{
		Name:        "classic",
		Description: "8x8 board with five tile kinds",
		BoardSize:   8,
		TileSize:    DefaultTileSize,
		TileTypes:   5,
		FallSpeed:   8,
		Reward:      10,
	}
	cfg.OriginX, cfg.OriginY = CenteredOrigin(cfg.BoardSize, cfg.TileSize, DefaultScreenWidth, DefaultScreenHeight)
	return cfg
}

// CenteredOrigin returns the screen origin that centers the grid in a screen
func CenteredOrigin(boardSize int, tileSize, screenWidth, screenHeight float64) (float64, float64) {
	extent := float64(boardSize) * tileSize
	return (screenWidth - extent) / 2, (screenHeight - extent) / 2
}

// Alphabet returns the symbols tiles are drawn from
func (c *Config) Alphabet() string {
	if c.Symbols != "" {
		return c.Symbols
	}
	if c.TileTypes > len(DefaultSymbols) {
		return DefaultSymbols
	}
	return DefaultSymbols[:c.TileTypes]
}

// ValidateConfig validates an engine configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil: %w", ErrInvalidConfig)
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required: %w", ErrInvalidConfig)
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("config validation: board_size must be between %d and %d, got %d: %w",
			MinBoardSize, MaxBoardSize, config.BoardSize, ErrInvalidConfig)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"tile_size", config.TileSize},
		{"fall_speed", config.FallSpeed},
		{"origin_x", config.OriginX},
		{"origin_y", config.OriginY},
	} {
		if math.IsInf(f.value, 0) || math.IsNaN(f.value) {
			return fmt.Errorf("config validation: %s must be finite, got %g: %w", f.name, f.value, ErrInvalidConfig)
		}
	}
	if config.TileSize <= 0 {
		return fmt.Errorf("config validation: tile_size must be positive, got %g: %w", config.TileSize, ErrInvalidConfig)
	}
	if config.FallSpeed <= 0 {
		return fmt.Errorf("config validation: fall_speed must be positive, got %g: %w", config.FallSpeed, ErrInvalidConfig)
	}
	if config.Reward < 0 {
		return fmt.Errorf("config validation: reward cannot be negative, got %d: %w", config.Reward, ErrInvalidConfig)
	}

	if config.Symbols == "" {
		if config.TileTypes < MinTileTypes || config.TileTypes > len(DefaultSymbols) {
			return fmt.Errorf("config validation: tile_types must be between %d and %d, got %d: %w",
				MinTileTypes, len(DefaultSymbols), config.TileTypes, ErrInvalidConfig)
		}
		return nil
	}

	if len(config.Symbols) != config.TileTypes {
		return fmt.Errorf("config validation: symbols must have tile_types (%d) characters, got %d: %w",
			config.TileTypes, len(config.Symbols), ErrInvalidConfig)
	}
	if config.TileTypes < MinTileTypes {
		return fmt.Errorf("config validation: tile_types must be at least %d, got %d: %w",
			MinTileTypes, config.TileTypes, ErrInvalidConfig)
	}
	seen := make(map[byte]bool, len(config.Symbols))
	for i := 0; i < len(config.Symbols); i++ {
		c := config.Symbols[i]
		if Symbol(c) == Empty || c < 0x21 || c > 0x7e {
			return fmt.Errorf("config validation: symbol %q at index %d is not a printable ASCII glyph: %w", c, i, ErrInvalidConfig)
		}
		if seen[c] {
			return fmt.Errorf("config validation: symbol %q repeated: %w", c, ErrInvalidConfig)
		}
		seen[c] = true
	}

	return nil
}
