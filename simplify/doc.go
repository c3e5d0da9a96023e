// Package simplify reduces a road network to a population-centre network
// whose shortest paths favour many short hops over few long ones.
//
// Two phases:
//
//	– Rescale: every edge stashes Weight^e in Info (e > 1 penalises long
//	  edges), then shortest paths over Info are contracted down to the kept
//	  node set. A kept pair a→b becomes an edge only when a's shortest-path
//	  tree reaches b without passing another kept node.
//	– Unscale: each contracted edge weight w becomes w^(1/e).
//
// The round trip is not exact in general: the search may pick a different
// route under rescaled weights, and a multi-hop route unscales to
// (Σ wᵢ^e)^(1/e) rather than Σ wᵢ. A single isolated edge returns to w.
//
// Complexity:
//
//	– Rescale: O(K·(E+V)·log V) for K kept nodes.
//	– Simplify: Rescale plus the O(n³) table build (or O(n·(E+V)·log V)
//	  with WithSparse).
package simplify
