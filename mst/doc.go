// Package mst computes minimum spanning trees over undirected core.Graph
// values. The scenario generator uses it to lay a connected road skeleton
// under synthetic cities before adding shortcut roads.
//
// Algorithms:
//
//	– Kruskal: sort all edges, merge components with a disjoint-set forest
//	  (path compression, union by rank). O(E log E).
//	– Prim: grow from a root with a min-heap of frontier edges. O(E log V).
//
// Both return the tree edges and their total weight, or ErrDisconnected when
// no spanning tree exists. Ties are broken by (From, To) order, so results
// are deterministic.
package mst
