// Package icons overlays component glyphs on zoomed-in renders.
//
// An Atlas holds one glyph per component kind, loaded from
// "LogicIcons-<name>.png" files or generated (Builtin). Each ink that carries
// an icon gets a tinted copy of its glyph: 40% ink blended into the glyph's
// visible pixels.
//
// Prepare resizes the tinted glyphs to the render zoom with bicubic
// (Catmull-Rom) filtering. The resulting Sheet is immutable and cached per
// zoom, so concurrent renders never share mutable state.
//
// Example:
//
//	atlas, err := icons.Load(os.DirFS("img"))
//	sheet := atlas.Prepare(zoom)
//	sheet.Composite(bp.Rows(), canvas)
package icons
