package baseline_test

import (
	"fmt"

	"github.com/maxearle/nas2/measure/baseline"
)

func ExampleMostPersistent() {
	var trace []float64
	for i := 0; i < 500; i++ {
		trace = append(trace, 0)
	}
	for i := 0; i < 500; i++ {
		trace = append(trace, 10)
	}

	cands, err := baseline.MostPersistent(trace)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(cands), cands[0].MaxRun, cands[1].MaxRun)

	// Output:
	// 2 500 500
}
