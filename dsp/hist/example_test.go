package hist_test

import (
	"fmt"

	"github.com/maxearle/nas2/dsp/hist"
)

func ExampleCompute() {
	h, err := hist.Compute([]float64{0, 0, 0, 1, 2, 3, 3}, 3)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, b := range h.Bins() {
		fmt.Printf("[%.0f,%.0f) %d\n", b.Left, b.Right, b.Count)
	}

	// Output:
	// [0,1) 3
	// [1,2) 1
	// [2,3) 3
}
