package spectrum

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-mfcc/internal/testutil"
)

func BenchmarkMagnitudeInto(b *testing.B) {
	for _, n := range []int{341, 1024} {
		b.Run(fmt.Sprintf("n%d", n), func(b *testing.B) {
			a := NewAnalyzer()
			in := testutil.DeterministicNoise(1, 1.0, n)
			dst := make([]float64, n)

			// Warm the plan cache so the loop measures steady state.
			if err := a.MagnitudeInto(dst, in); err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				if err := a.MagnitudeInto(dst, in); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
