// Package sizegate decides whether an encoded file is still too large.
//
// The gate is a pure comparison. Sizes are converted to megabytes with
// two successive float divisions by 1024 and compared against 1.0. Both
// divisions are by powers of two and therefore exact in float64, so the
// effective boundary is exactly 1,048,576 bytes: one byte less passes,
// anything at or above it needs reduction.
package sizegate

// Threshold is the gate limit in megabytes (1 MiB).
const Threshold = 1.0

// Megabytes converts a byte count to MiB the same way the progress
// lines do.
func Megabytes(size int64) float64 {
	return float64(size) / 1024 / 1024
}

// NeedsReduction reports whether a file of the given byte size must be
// shrunk further.
func NeedsReduction(size int64) bool {
	return Megabytes(size) >= Threshold
}
