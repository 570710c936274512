// Command vcbrender renders a VCB blueprint to PNG or prints its component
// statistics.
//
// Usage:
//
//	vcbrender [-stats] [-o out.png] [-icons dir] [-zoom n] [-max-pixels n] [file]
//
// The blueprint is read from file, or from stdin when no file is given.
package main
