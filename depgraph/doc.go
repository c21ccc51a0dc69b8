// Package depgraph orders derived waveforms after the waveforms they read.
//
// Nodes are waveform names. For every derived waveform D that references R
// there is an edge R → D (dependency → dependent). New validates the
// references and rejects cycles with a three-colour depth-first search:
//
//	White  not visited yet
//	Gray   on the current recursion stack
//	Black  finished; never re-entered
//
// Meeting a Gray node closes a cycle; the error names every node on it.
// Order is the reverse post-order of the same search, so every waveform
// appears after all of its dependencies. Iteration is over sorted names,
// which makes Order deterministic.
//
// Complexity: O(V + E) time, O(V) extra memory.
package depgraph
