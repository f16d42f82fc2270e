// Package depgraph builds directed dependency graphs from parent→children
// adjacency mappings.
//
// Nodes are identified by package name. The graph is backed by a gonum
// directed graph so that layout and community-detection algorithms can
// operate on it directly, while the public API stays name-keyed.
//
// # Building
//
// [Build] converts a dependency mapping into a graph with a designated
// root node:
//
//	g, direct, err := depgraph.Build(mapping, "my-project")
//
// Every mapping key and every listed child becomes a node. Each
// (parent, child) pair becomes an edge labeled "depends on". Packages
// that never appear as a child of another package are connected to the
// root with edges labeled "direct requirement". The returned [DirectSet]
// contains the root's successors: the packages the project explicitly
// requires.
//
// Self-referential edges in the input (a package listing itself as a
// dependency) are dropped during the build; the count is reported by
// [Graph.SelfLoopsDropped] so callers can log the degradation. Cycles
// between distinct packages are permitted.
package depgraph
