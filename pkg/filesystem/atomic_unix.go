//go:build !windows

package filesystem

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomicOS uses renameio so readers never observe a truncated file.
// Durability still depends on fsync behavior.
func writeFileAtomicOS(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
