// Package palette classifies logic-layer pixel colours.
//
// Every ink the game can place on the logic layer has one fixed RGBA value.
// The tables in this package are built once at start-up and never mutated:
//   - Categories: every ink in report order, with the Bus/Trace grouping
//   - Glyphs: the subset of inks that get an icon when rendered zoomed in
package palette
