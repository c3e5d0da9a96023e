// Package bfs provides breadth-first search over index-addressed graphs,
// returning hop distances and visit order, plus the weakly connected
// component diagnostic the simulation logs after each network rebuild.
//
// What
//
//   - BFS explores nodes in non-decreasing hop count from a start node.
//   - Hook: OnVisit (may abort with an error).
//   - Components groups nodes into weakly connected components by seeding
//     one walker from every unvisited node of a mirrored graph.
//
// Determinism
//
//	Successors are consumed in ascending index order, so visit order and
//	component membership are reproducible.
//
// Complexity (V = Order, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V + E) for Components (mirrored adjacency), O(V) for BFS
package bfs
