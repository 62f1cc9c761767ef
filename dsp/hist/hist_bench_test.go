package hist

import (
	"testing"

	"github.com/maxearle/nas2/internal/testutil"
)

func BenchmarkCompute(b *testing.B) {
	values := testutil.DeterministicNoise(42, 1, 1<<16)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compute(values, 50); err != nil {
			b.Fatal(err)
		}
	}
}
