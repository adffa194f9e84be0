package relax_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pckp/precedence"
	"github.com/katalvlaran/pckp/relax"
)

func ExampleSolver_Solve() {
	g, _ := precedence.New(3, nil)
	p := &relax.Problem{
		Profit:   []float64{1, 4, 1},
		Weight:   []float64{1, 2, 3},
		Capacity: 2.1,
		Graph:    g,
	}
	sol, _ := relax.NewSolver(p).Solve(context.Background(), nil)
	fmt.Printf("%.2f %.2f %v\n", sol.X, sol.Objective, sol.Fractional)
	// Output: [0.10 1.00 0.00] 4.10 [0]
}
