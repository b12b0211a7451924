package hist_test

import (
	"fmt"
	"math"

	"github.com/matzehuels/histoprint/pkg/hist"
)

func ExampleValidate() {
	v, err := hist.Validate(hist.Set{
		Edges:  []float64{0, 1, 2, 3},
		Series: []hist.Series{{Label: "A", Counts: []float64{1, math.NaN(), 1}}},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println("Bins:", v.NumBins())
	fmt.Println("Count in bin 1:", v.Count(0, 1))
	fmt.Println("Excluded bins:", v.ExcludedCount(0))
	// Output:
	// Bins: 3
	// Count in bin 1: 0
	// Excluded bins: 1
}

func ExampleValidate_invalidEdges() {
	_, err := hist.Validate(hist.Set{
		Edges:  []float64{0, 2, 1},
		Series: []hist.Series{{Counts: []float64{1, 1}}},
	})
	fmt.Println(err)
	// Output:
	// VALIDATION: bin edges not strictly increasing at index 2 (1 after 2)
}
