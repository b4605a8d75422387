// Package layout maps a window count and a bounding rectangle to a sequence
// of tiles. Every function is pure: tile k of the result belongs to the k-th
// visible window in registry order, and no two tiles overlap except in
// Monocle, where every tile is the full area.
package layout
