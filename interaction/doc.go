// Package interaction builds the city interaction network: a gravity-style
// graph between population centres that the destination selector walks.
//
// Two constructions:
//
//	– BuildFromMetric: a directed edge s→t for every city pair, weighted by a
//	  pluggable Metric, then pruned per source to a link budget.
//	– BuildFromEdgeList: one undirected edge per externally triangulated
//	  pair, weighted by straight-line distance, with no pruning.
//
// Pruning, per source s with edges sorted by descending weight (ties by
// ascending target index):
//
//	rank r is dropped when (running ≥ total·Threshold and r ≥ MinLinks)
//	or r ≥ MaxLinks, where running sums the weights of ranks 0..r-1.
//
// Each source therefore keeps between min(MinLinks, candidates) and MaxLinks
// edges.
package interaction
