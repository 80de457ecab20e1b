package batch

import (
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/dpup/georuler/internal/lib/num"
)

// VectorWidth returns the width in bytes of the widest vector registers the
// CPU reports, or 0 when none are known.
func VectorWidth() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 64
	case cpu.X86.HasAVX2, cpu.X86.HasAVX:
		return 32
	case cpu.X86.HasSSE2, cpu.ARM64.HasASIMD:
		return 16
	}
	return 0
}

// LanesFor returns how many T fit in a vector of width bytes, at most MaxLanes
func LanesFor[T num.Float](width int) int {
	var zero T
	return min(width/int(unsafe.Sizeof(zero)), MaxLanes)
}
