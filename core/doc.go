// Package core provides the index-addressed, weighted graph shared by every
// network of the migration model, plus the population-centre Node catalogue.
//
// Several logically separate edge sets coexist over the same node identities:
// the physical road network, the simplified road network, the simplified and
// weighted road network, and the city-interaction network. Each of them is a
// distinct *Graph of the same order n; a node is identified everywhere by its
// dense integer Index in 0..n−1, which is also the row/column used by the
// all-pairs shortest-path matrices.
//
// Graph semantics:
//
//   - Directed vs. undirected (WithDirected). Undirected edges are stored as two
//     mirrored *Edge records so that per-direction Info/Weight edits stay local.
//   - Non-negative, finite weights. Negative or NaN weights are rejected at
//     ingestion (ErrNegativeWeight, ErrNaNWeight).
//   - Self-loops are rejected (ErrLoopNotAllowed); the diagonal of every
//     distance matrix is zero by construction.
//   - Re-adding an existing pair overwrites its weight (no multi-edges).
//   - Deterministic iteration: Successors, Neighbors and Edges return results
//     sorted by index.
//
// Concurrency: a sync.RWMutex guards adjacency. The simulation itself is
// single-threaded, but read-only queries may be served concurrently (HTTP).
//
// Complexity:
//
//	NewGraph      O(n)
//	AddEdge       O(1) amortised
//	Weight/Edge   O(1)
//	Successors    O(d log d)
//	Edges         O(E log E)
package core
