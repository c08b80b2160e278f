//go:build !amd64 || purego

package bitvector

import "math/bits"

func popcount64(w uint64) uint64 { return uint64(bits.OnesCount64(w)) }
