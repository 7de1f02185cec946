// Package engine provides the core board logic for the blockmatch game.
//
// The engine package implements the match-3 mechanics including:
//   - A fixed N×N grid of tile symbols with bounds-checked access
//   - Window based detection of runs of three or more equal symbols
//   - Column compaction and refill after a match, with fall distances
//   - Per-frame decay of fall offsets
//   - Pointer driven selection and swapping, gated while tiles fall
//
// Core Types:
//
// The Engine interface defines the frame-level contract, implemented by
// GameEngine. Board is the grid store, MatchMask the result of the last
// scan and FallField the remaining fall offsets. Snapshot is the read-only
// view a renderer consumes once per frame.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for frame := 0; ; frame++ {
//		eng.Tick(pointer)
//		draw(eng.Snapshot())
//	}
//
// Scoring:
//
// Every window of three equal symbols found by a scan is worth one reward,
// so a run of four scores twice and a run of five three times.
package engine
