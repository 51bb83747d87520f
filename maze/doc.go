// Package maze models a classic 16×16 micromouse maze: per-cell wall
// knowledge, flood-fill cost planning, and deterministic next-heading
// selection.
//
// What:
//
//   - Maze stores four WallState values per cell and keeps every shared
//     wall mirrored: writing a wall through one cell updates the matching
//     slot of the neighbour on the other side.
//   - ObserveWall is write-once: the first observation of a wall is kept
//     for the life of the search and later, conflicting sightings are
//     ignored. SetWall overrides unconditionally (reset and test setup).
//   - Flood produces a CostMap of step distances from a target cell using
//     breadth-first expansion over admissible exits.
//   - HeadingToSmallest picks the heading of the strictly cheapest
//     neighbour with a fixed, deterministic tie-break order.
//
// Why:
//
//   - Search planning: flood with MaskOpen treats unexplored walls as
//     passable, so the mouse optimistically routes through unknown space.
//   - Committed runs: flood with MaskClosed admits only confirmed exits,
//     so a fast run never gambles on an unseen wall.
//
// Complexity:
//
//   - Flood: O(Size²) time, O(Size²) memory.
//   - HeadingToSmallest: O(1).
//   - Wall accessors and mutators: O(1).
//
// Contract:
//
//   - Locations and headings passed to accessors and mutators must be
//     in range; out-of-range input is a programmer error and panics.
//     Location.Neighbour reports off-grid neighbours instead of wrapping,
//     so callers can stay in range without arithmetic of their own.
//   - Blocked is only ever produced by HeadingToSmallest; it is not a
//     legal argument anywhere.
package maze
