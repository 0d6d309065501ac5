package soia

import "math/big"

var (
	bigMinInt64  = big.NewInt(minInt64)
	bigMaxInt64  = big.NewInt(maxInt64)
	bigZero      = big.NewInt(0)
	bigMaxUint64 = new(big.Int).SetUint64(maxUint64)
)

// saturateBigToInt64 clamps an arbitrary-precision integer to the int64
// range.
func saturateBigToInt64(x *big.Int) int64 {
	switch {
	case x.Cmp(bigMinInt64) < 0:
		return minInt64
	case x.Cmp(bigMaxInt64) > 0:
		return maxInt64
	default:
		return x.Int64()
	}
}

// saturateBigToUint64 clamps an arbitrary-precision integer to the uint64
// range [0, 2^64-1].
func saturateBigToUint64(x *big.Int) uint64 {
	switch {
	case x.Cmp(bigZero) < 0:
		return 0
	case x.Cmp(bigMaxUint64) > 0:
		return maxUint64
	default:
		return x.Uint64()
	}
}
