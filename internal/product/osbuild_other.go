//go:build !windows

package product

import "math"

// hostBuild reports the highest build on hosts without Windows build gating,
// so every feature is enabled.
func hostBuild() int {
	return math.MaxInt32
}
