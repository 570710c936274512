// Package stats reports how much of a blueprint each component occupies.
//
// Lines follow the palette declaration order, not frequency. The six bus
// channels and sixteen trace channels are folded into one "Bus" and one
// "Trace" line emitted after the per-category lines.
package stats
