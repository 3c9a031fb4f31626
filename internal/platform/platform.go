// Package platform provides OS-specific filesystem helpers.
package platform

import "os"

// Preallocate hints the kernel about the final size of fd so the
// filesystem can reserve contiguous space before the data is written.
// Best-effort: errors are swallowed.
func Preallocate(fd *os.File, size int64) {
	if size <= 0 {
		return
	}
	preallocate(fd, size)
}
