package icons

import (
	"fmt"
	"os"
)

// LoadDir loads glyphs from dir, or returns the builtin atlas when dir is
// empty.
func LoadDir(dir string) (*Atlas, error) {
	if dir == "" {
		return Builtin(), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("icon dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("icon dir: %s is not a directory", dir)
	}
	atlas, err := Load(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("icon dir %s: %w", dir, err)
	}
	return atlas, nil
}
