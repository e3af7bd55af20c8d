//go:build windows

package filesystem

import "os"

// writeFileAtomicOS falls back to a plain write: renameio does not support Windows.
func writeFileAtomicOS(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
