// Package id generates prefixed ULIDs for requests and render jobs.
//
// ULIDs sort by creation time, so request IDs in logs line up with the
// order requests arrived. Prefixes make the kind of an ID obvious when
// reading logs (req_*, img_*).
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// ImageID identifies a rendered image
type ImageID string

const (
	RequestPrefix = "req"
	ImagePrefix   = "img"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator with monotonic, cryptographically
// seeded entropy.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0))
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewImageID generates a new image ID
func NewImageID() ImageID {
	return ImageID(Default().GenerateWithPrefix(ImagePrefix))
}

func (id RequestID) String() string { return string(id) }
func (id ImageID) String() string   { return string(id) }

// FileName returns the PNG file name used when the image is attached to a
// reply.
func (id ImageID) FileName() string { return string(id) + ".png" }

// IsValid reports whether s is a ULID, optionally preceded by a prefix.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Parse parses a ULID, stripping any "<prefix>_" in front of it. A prefix
// is lower-case ASCII letters.
func Parse(s string) (ulid.ULID, error) {
	if prefix, rest, ok := strings.Cut(s, "_"); ok {
		if prefix == "" || strings.TrimLeft(prefix, "abcdefghijklmnopqrstuvwxyz") != "" {
			return ulid.ULID{}, fmt.Errorf("invalid id prefix %q", prefix)
		}
		s = rest
	}
	return ulid.ParseStrict(s)
}

// Timestamp extracts the creation time from an ID
func Timestamp(s string) (time.Time, error) {
	parsed, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
