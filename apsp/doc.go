// Package apsp computes and stores all-pairs shortest paths over an
// index-addressed weighted graph, and reconstructs paths on demand.
//
// A Table holds two n×n matrices built once from a graph snapshot:
//
//	distance[i][j]  shortest-path cost, +Inf if unreachable, 0 on the diagonal
//	next[i][j]      an intermediate node on some shortest i→j path, or -1
//
// Path reconstruction is divide-and-conquer over next:
//
//	Path(i,j) = Path(i,m) + [m] + Path(m,j)   with m = next[i][j]
//
// and an empty sequence when next[i][j] == -1 (direct edge or same node).
//
// Builders:
//
//   - Build: dense Floyd–Warshall, O(n³) time, O(n²) space. The default for
//     hundreds to low thousands of population centres.
//   - BuildSparse: repeated single-source Dijkstra, O(n·(E+V)·log V). Same
//     distance/next contract; a pure internal swap for large sparse graphs.
//
// Tables are immutable once built. There is no incremental update: when the
// underlying edges change, build a fresh Table and swap it in.
//
// Persistence: MarshalBinary/UnmarshalBinary (and WriteTo/ReadFrom/Load)
// round-trip bit-identical matrices; a size or format mismatch surfaces as
// ErrFormat / ErrSizeMismatch so callers can fall back to rebuilding.
//
// Indices out of range are programming errors and panic.
package apsp
