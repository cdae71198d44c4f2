package util

import "runtime"

// GetOptimalPoolSize returns the pool size for CPU-bound parallel work.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// Tree-sitter parsing goes through CGO, so 2x the core count keeps goroutines
// busy while others are blocked inside CGO calls. The floor keeps some
// parallelism on small machines; the cap limits parser memory on large ones.
//
// Used for both parser pools and the extract command's worker count.
func GetOptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// GetOptimalPoolSizeWithOverride returns pool size with optional override.
// If override > 0 it is used as-is (for testing/tuning), otherwise
// GetOptimalPoolSize() applies.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
