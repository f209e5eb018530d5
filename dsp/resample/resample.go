package resample

import (
	"errors"
	"math"
)

// ErrInvalidRate indicates a non-positive input or target sample rate.
var ErrInvalidRate = errors.New("resample: sample rate must be > 0")

// Downsample converts src from inputRate to targetRate and appends the
// result to dst[:0], returning the (possibly grown) slice. Passing a
// buffer with sufficient capacity makes the call allocation-free.
//
// Three paths:
//   - inputRate <= targetRate: src is copied unchanged (no upsampling).
//   - integer ratio r: decimation, keeping every r-th sample. The output
//     length is len(src)/r.
//   - fractional ratio: linear interpolation between the two source
//     samples straddling each fractional read position. The output length
//     is round(len(src)/ratio), ties to even.
func Downsample(dst, src []float64, inputRate, targetRate int) ([]float64, error) {
	if inputRate <= 0 || targetRate <= 0 {
		return nil, ErrInvalidRate
	}

	dst = dst[:0]

	if inputRate <= targetRate {
		return append(dst, src...), nil
	}

	if inputRate%targetRate == 0 {
		skip := inputRate / targetRate
		outLen := len(src) / skip

		for i := range outLen {
			dst = append(dst, src[i*skip])
		}

		return dst, nil
	}

	ratio := float64(inputRate) / float64(targetRate)
	outLen := int(math.RoundToEven(float64(len(src)) / ratio))

	for j := range outLen {
		pos := ratio * float64(j)

		i0 := int(pos)
		if i0 > len(src)-1 {
			i0 = len(src) - 1
		}

		i1 := i0 + 1
		if i1 > len(src)-1 {
			i1 = len(src) - 1
		}

		t := pos - float64(i0)
		dst = append(dst, src[i0]*(1-t)+src[i1]*t)
	}

	return dst, nil
}
