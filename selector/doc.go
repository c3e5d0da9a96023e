// Package selector picks a migration destination for an overloaded
// population centre.
//
// Strategies:
//
//	– SpareCapacity: the interaction neighbour with the most spare capacity.
//	– DistanceWeightedSpareCapacity: sample an interaction neighbour with
//	  probability ∝ spare / d^decay (straight-line d).
//	– NearestViableCity: the nearest city able to absorb one group, reached
//	  through the first hop of the working network's shortest path.
//	– Roads: as DistanceWeightedSpareCapacity over working-network edges,
//	  with the edge weight as d.
//	– HybridTIN / HybridRoads: a distance-weighted target (straight-line or
//	  working path length as d) replaced by the first hop towards it.
//
// Weighted sampling shifts every weight up by |min| when the minimum is
// negative, and reports no selection when the weights sum to zero.
//
// No selection is an ordinary outcome: refugees stay put for the tick.
package selector
