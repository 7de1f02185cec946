// Package config provides board preset management for blockmatch.
//
// The config package handles:
//   - Loading engine presets from JSON files
//   - Preset validation through engine.ValidateConfig
//   - Default preset selection with a built-in fallback
//   - Environment overrides (BLOCKMATCH_*)
//
// Preset Format:
//
// Presets are stored as JSON files in the configs directory. Unset fields
// take the classic values (8x8 board, five tiles, 42px tiles, fall speed 8,
// 10 points per run window). A preset without an origin is centered in an
// 800x450 screen.
//
//	{
//	  "name": "large",
//	  "description": "10x10 board with six tile kinds",
//	  "board_size": 10,
//	  "tile_types": 6,
//	  "tile_size": 40
//	}
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	preset, err := manager.LoadConfig("large")
//	preset, err = config.ApplyEnv(preset)
package config
