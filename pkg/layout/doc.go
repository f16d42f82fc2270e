// Package layout computes 3-D positions for dependency graphs.
//
// The engine runs a seeded Fruchterman–Reingold force simulation: nodes
// repel each other, edges pull their endpoints together, and a cooling
// temperature bounds per-iteration movement. For a fixed seed and graph
// the result is fully deterministic. Disconnected components and cyclic
// graphs are handled without special cases; the repulsive term keeps
// separate components apart.
//
// Coordinates are returned in a cube roughly spanning [-1, 1] on each
// axis, centered on the origin.
package layout
