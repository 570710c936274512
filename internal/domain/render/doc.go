// Package render draws a blueprint's logic layer as a PNG.
//
// Pipeline:
//   - empty pixels are filled with the editor background colour
//   - the layer is upscaled by an integer zoom, nearest neighbour
//   - at zoom >= IconThreshold, component icons are composited on top
//
// The zoom is TargetWidth/width clamped to [1, MaxZoom], so small
// blueprints come out large and wide ones stay at 1:1.
package render
