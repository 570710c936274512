package blueprint

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/klauspost/compress/zstd"
)

const (
	headerSize      = 17
	blockHeaderSize = 12

	// LogicLayerID identifies the logic layer block.
	LogicLayerID = 0

	// MaxLogicBytes bounds the decompressed logic layer.
	MaxLogicBytes = 256 << 20
)

// Prefixes a blueprint string may start with.
var Prefixes = []string{"VCB+", "bVCB+"}

// DecodeAll is safe for concurrent use, so one decoder serves every call.
var zstdDecoder *zstd.Decoder

func init() {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(MaxLogicBytes),
	)
	if err != nil {
		panic(fmt.Sprintf("blueprint: create zstd decoder: %v", err))
	}
	zstdDecoder = dec
}

// Decode parses a blueprint string as copied from the game, optionally
// wrapped in a markdown code fence.
func Decode(text string) (*Blueprint, error) {
	text = strings.ReplaceAll(text, "```", "")
	text = strings.ReplaceAll(text, "'", "")
	text = strings.TrimLeftFunc(text, unicode.IsSpace)

	body, ok := stripPrefix(text)
	if !ok {
		return nil, invalid(ErrHeader, "")
	}

	// Chat clients wrap long lines; the game never emits whitespace.
	body = strings.Join(strings.Fields(body), "")

	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, invalid(ErrBase64, "")
	}
	return DecodeBytes(raw)
}

// HasPrefix reports whether s starts like a blueprint, with or without an
// opening code fence.
func HasPrefix(s string) bool {
	s = strings.TrimPrefix(s, "```")
	_, ok := stripPrefix(s)
	return ok
}

func stripPrefix(s string) (string, bool) {
	for _, p := range Prefixes {
		if strings.HasPrefix(s, p) {
			return s[len(p):], true
		}
	}
	return "", false
}

// DecodeBytes parses the binary body of a blueprint (after base64).
func DecodeBytes(raw []byte) (*Blueprint, error) {
	if len(raw) < headerSize {
		return nil, invalid(ErrTruncated, fmt.Sprintf("header is %d bytes", len(raw)))
	}

	bp := &Blueprint{
		Version: uint32(raw[0])<<16 | uint32(raw[1])<<8 | uint32(raw[2]),
		Width:   binary.BigEndian.Uint32(raw[9:13]),
		Height:  binary.BigEndian.Uint32(raw[13:17]),
	}
	copy(bp.Checksum[:], raw[3:9])

	if bp.Version != 0 {
		return nil, invalid(ErrVersion, fmt.Sprint(bp.Version))
	}
	area := uint64(bp.Width) * uint64(bp.Height)
	if area == 0 {
		return nil, invalid(ErrEmpty, fmt.Sprintf("%dx%d", bp.Width, bp.Height))
	}

	pos := headerSize
	for pos < len(raw) {
		if len(raw)-pos < blockHeaderSize {
			return nil, invalid(ErrTruncated, fmt.Sprintf("block header at offset %d", pos))
		}
		blockSize := binary.BigEndian.Uint32(raw[pos:])
		layerID := binary.BigEndian.Uint32(raw[pos+4:])
		imageSize := binary.BigEndian.Uint32(raw[pos+8:])

		// Also stops an endless loop on zero-sized blocks.
		if blockSize < blockHeaderSize {
			return nil, invalid(ErrBlockSize, fmt.Sprint(blockSize))
		}
		if uint64(blockSize) > uint64(len(raw)-pos) {
			return nil, invalid(ErrTruncated, fmt.Sprintf("block at offset %d declares %d bytes, %d left", pos, blockSize, len(raw)-pos))
		}

		if layerID == LogicLayerID {
			logic, err := decodeLogic(raw[pos+blockHeaderSize:pos+int(blockSize)], imageSize, area)
			if err != nil {
				return nil, err
			}
			bp.Logic = logic
		}
		pos += int(blockSize)
	}

	if bp.Logic == nil {
		return nil, invalid(ErrNoLogicLayer, "")
	}
	return bp, nil
}

func decodeLogic(payload []byte, imageSize uint32, area uint64) ([]byte, error) {
	if area > math.MaxUint32/4 || uint64(imageSize) != area*4 {
		return nil, invalid(ErrImageSize, fmt.Sprint(imageSize))
	}
	if uint64(imageSize) > MaxLogicBytes {
		return nil, invalid(ErrImageSize, fmt.Sprintf("%d exceeds %d", imageSize, MaxLogicBytes))
	}

	logic, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, imageSize))
	if err != nil {
		return nil, invalid(ErrDecompress, "")
	}
	if len(logic) != int(imageSize) {
		return nil, invalid(ErrImageSize, fmt.Sprint(imageSize))
	}
	return logic, nil
}
