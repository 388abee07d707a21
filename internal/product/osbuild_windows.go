//go:build windows

package product

import "golang.org/x/sys/windows"

// hostBuild returns the Windows build number as reported by RtlGetVersion,
// which is not subject to manifest-based version lies.
func hostBuild() int {
	return int(windows.RtlGetVersion().BuildNumber)
}
