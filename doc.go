// Package mazerunner is the navigation core of a micromouse: map the
// walls, flood the maze, decide the next turn and carry it out without
// ever stopping in the middle of a cell.
//
// 🚀 What is mazerunner-core?
//
//	A self-contained controller stack that brings together:
//		• Wall map: write-once wall records with per-cell visit marks
//		• Flood fill: goal-seeded costs over open or confirmed walls
//		• Decision loop: sense, re-flood, pick a heading, dispatch a move
//		• Smooth turns: arc through corners at speed, spin only when boxed in
//		• Steering: side-sensor trim that keeps the run centred in the cell
//		• Simulator: a deterministic plant that replays whole runs in tests
//
// ✨ Why this shape?
//
//   - Deterministic – simulated time advances only when polled, so every
//     search replays byte-for-byte
//   - Honest errors – sentinel errors per package, wrapped with context
//   - Plain interfaces – Motion and Sensors stay small, fakes stay easy
//   - Observable – every decision is reported; hook a logger or a
//     websocket hub without touching the loop
//
// Under the hood, everything is organized under six subpackages:
//
//	config/    — run tunables: speeds, thresholds, sensor calibration
//	maze/      — the 16×16 wall map, flood fill and route queries
//	sensors/   — raw channel evaluation, wall flags and steering feedback
//	mouse/     — the decision loop: search, fast run, wall follow
//	sim/       — the simulated plant: motion profiles, optics, truth maze
//	telemetry/ — run reporters: structured log trace and websocket fan-out
//
// Quick ASCII example:
//
//	+---+---+
//	|       |    the mouse rolls into a cell, reads the walls ahead and
//	+   +---+    to the sides, floods the map toward the goal and turns
//	| ^ |        toward the neighbour with the smallest cost.
//	+---+---+
//
// Dive into the package docs for the decision-loop contract, the wall
// observation rules and the simulator's frame conventions.
//
//	go get github.com/Nikitarc/mazerunner-core
package mazerunner
