// Package sim is the simulation context that the scheduler drives once per
// tick. It owns the node catalogue, the road network and every derived
// network, and keeps them consistent with the current parameters.
//
// Lifecycle:
//
//	– New validates parameters and builds all networks.
//	– SetParams validates, stores and marks the context dirty.
//	– Advance runs OnTick for the tick after the last completed one.
//	– OnTick clears the dirty flag and rebuilds if it was set, then asks the
//	  selector for a destination for every overloaded city in index order
//	  and moves one group per city.
//
// The road network never changes, so a rebuild reuses the raw and simplified
// networks and redoes the weighted one only when its exponent changed. The
// interaction network is always rebuilt. Rebuilds are all-or-nothing: new networks are assembled off to the side
// and swapped in under the lock, so concurrent readers see either the old
// snapshot or the new one. Path tables are looked up in an optional
// TableCache keyed by graph fingerprint; a malformed cached table falls back
// to a fresh build.
package sim
