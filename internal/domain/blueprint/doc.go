// Package blueprint decodes VCB circuit blueprints.
//
// A blueprint string is "VCB+" (or "bVCB+") followed by base64 of a binary
// body. The body is a 17-byte header followed by self-delimited layer blocks:
//
//	offset 0   u24  version (always 0)
//	offset 3   [6]  checksum
//	offset 9   u32  width
//	offset 13  u32  height
//	offset 17  blocks: u32 blockSize, u32 layerID, u32 imageSize, payload
//
// Only the logic layer (layerID 0) is decompressed; its zstd payload expands
// to width*height RGBA8 pixels. Every other layer is skipped.
//
// Example:
//
//	bp, err := blueprint.Decode(text)
//	if errors.Is(err, blueprint.ErrVersion) {
//		...
//	}
package blueprint
