// Command validate checks the board presets in the ../configs directory
// (or the directory given as the first argument). For every file it checks:
//   - JSON structure and the engine's field rules
//   - Symbols are distinct printable characters, one per tile type
//   - The grid fits on the 800x450 screen at the configured origin
//   - A tile can finish falling in a reasonable number of frames
//   - A fresh board can be built and brought to rest from a fixed seed
package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/blockmatch/game/config"
	"github.com/wricardo/blockmatch/game/engine"
)

// maxFallFrames is the longest a single-tile drop may take before the preset
// is flagged as sluggish.
const maxFallFrames = 30

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) note(format string, args ...any) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single preset file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	cfg, err := config.Parse(data)
	if err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(result.File, filepath.Ext(result.File))
	}

	if err := engine.ValidateConfig(cfg); err != nil {
		result.fail("%v", err)
		return result
	}
	result.note("Board %dx%d with %d tile types %q", cfg.BoardSize, cfg.BoardSize, cfg.TileTypes, cfg.Alphabet())

	extent := float64(cfg.BoardSize) * cfg.TileSize
	if cfg.OriginX < 0 || cfg.OriginY < 0 ||
		cfg.OriginX+extent > engine.DefaultScreenWidth || cfg.OriginY+extent > engine.DefaultScreenHeight {
		result.fail("Grid at (%.0f,%.0f) with extent %.0f does not fit a %dx%d screen",
			cfg.OriginX, cfg.OriginY, extent, int(engine.DefaultScreenWidth), int(engine.DefaultScreenHeight))
	} else {
		result.note("Grid fits the screen at (%.0f,%.0f)", cfg.OriginX, cfg.OriginY)
	}

	frames := int(math.Ceil(cfg.TileSize / cfg.FallSpeed))
	if frames > maxFallFrames {
		result.fail("A one-row drop takes %d frames (limit %d); raise fall_speed", frames, maxFallFrames)
	} else {
		result.note("A one-row drop takes %d frames", frames)
	}

	probe := *cfg
	probe.Seed = 1
	eng, err := engine.NewEngine(&probe)
	if err != nil {
		result.fail("Failed to build board: %v", err)
		return result
	}
	passes, err := eng.Cascade(0)
	switch {
	case errors.Is(err, engine.ErrCascadeLimit):
		result.fail("Board never comes to rest: %v", err)
	case err != nil:
		result.fail("Cascade failed: %v", err)
	default:
		result.note("Seed 1 settles after %d cascade passes with %d available swaps", passes, len(eng.Hints()))
	}

	return result
}

func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No presets found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
