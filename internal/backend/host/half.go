package host

import "math"

// halfToFloat32 widens an IEEE 754 binary16 value to float32.
// Sign (1) | exponent (5, bias 15) | mantissa (10).
func halfToFloat32(h uint16) float32 {
	bits := uint32(h)
	sign := bits >> 15
	exp := (bits >> 10) & 0x1F
	mant := bits & 0x3FF

	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign << 31)
		}
		// Denormal: renormalize into float32 range.
		exp = 1
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= 0x3FF
		exp = uint32(int32(exp) + 127 - 15)
	case 31:
		if mant == 0 {
			return math.Float32frombits((sign << 31) | 0x7F800000)
		}
		return math.Float32frombits((sign << 31) | 0x7FC00000 | (mant << 13))
	default:
		exp = exp + 127 - 15
	}
	return math.Float32frombits((sign << 31) | (exp << 23) | (mant << 13))
}

// float32ToHalf narrows a float32 to binary16 with round-to-nearest-even.
// Out-of-range magnitudes become infinities.
func float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	switch {
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		mant = (mant | 0x800000) >> uint(1-exp)
		if mant&0x1000 != 0 {
			mant += 0x2000
		}
		return sign | uint16(mant>>13)
	case exp >= 31:
		if int((bits>>23)&0xFF) == 0xFF && mant != 0 {
			return sign | 0x7E00 // NaN
		}
		return sign | 0x7C00 // Inf
	default:
		if mant&0x1000 != 0 {
			mant += 0x2000
			if mant&0x800000 != 0 {
				mant = 0
				exp++
				if exp >= 31 {
					return sign | 0x7C00
				}
			}
		}
		return sign | uint16(exp)<<10 | uint16(mant>>13)
	}
}

// halfLess orders binary16 values by their widened float32 value. NaNs
// sort first, matching the float32/float64 kernels.
func halfLess(a, b uint16) bool {
	fa, fb := halfToFloat32(a), halfToFloat32(b)
	aNaN := fa != fa
	bNaN := fb != fb
	if aNaN {
		return !bNaN
	}
	return fa < fb
}
