package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir cria o diretório pai de path, se necessário.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	return nil
}
