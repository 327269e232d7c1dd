package interp_test

import (
	"fmt"

	"github.com/cwbudde/algo-resp/dsp/interp"
)

func ExampleUniform() {
	// Beat-to-beat values at irregular times, resampled at 2 Hz.
	times := []float64{0.0, 0.8, 1.7, 2.5}
	values := []float64{1.0, 1.8, 0.9, 1.1}

	out, err := interp.Uniform(times, values, 2)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, v := range out {
		fmt.Printf("%.3f ", v)
	}
	fmt.Println()
	// Output:
	// 1.000 1.500 1.600 1.100 0.975
}
