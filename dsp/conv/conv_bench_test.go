package conv

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-interpacf/internal/testutil"
)

func BenchmarkAutoCorrelate(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		x := testutil.DeterministicNoise(1, 1, n)

		b.Run(fmt.Sprintf("Direct/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = AutoCorrelate(x)
			}
		})
		b.Run(fmt.Sprintf("FFT/%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = AutoCorrelateFFT(x)
			}
		})
	}
}

func BenchmarkValid(b *testing.B) {
	x := testutil.DeterministicNoise(2, 1, 4096)
	for _, m := range []int{3, 41, 113} {
		kernel := make([]float64, m)
		for i := range kernel {
			kernel[i] = 1 / float64(m)
		}
		dst := make([]float64, ValidLen(len(x), m))

		b.Run(fmt.Sprintf("kernel=%d", m), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = ValidTo(dst, x, kernel)
			}
		})
	}
}
