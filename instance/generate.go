package instance

import (
	"fmt"
	"math/rand"
)

// defaultSeed is used when callers pass seed 0.
const defaultSeed int64 = 1

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a base seed and a stream number into an independent
// seed, so run k of a batch can be regenerated alone.
func DeriveSeed(base int64, stream uint64) int64 {
	x := uint64(base) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// RandomTree returns n items in a random rooted forest: item i > 0 requires
// a parent drawn uniformly from [0, i). Profits and weights are uniform in
// [0, 1) and the capacity is half the total weight.
func RandomTree(n int, seed int64) *Instance {
	rng := rngFromSeed(seed)
	in := &Instance{
		Name:   fmt.Sprintf("tree-%d-%d", n, seed),
		Profit: make([]float64, n),
		Weight: make([]float64, n),
	}
	if n > 1 {
		in.Edges = make([][2]int, 0, n-1)
	}
	for i := 0; i < n; i++ {
		in.Profit[i] = rng.Float64()
		in.Weight[i] = rng.Float64()
		if i > 0 {
			in.Edges = append(in.Edges, [2]int{rng.Intn(i), i})
		}
	}
	in.MaxWeight = in.TotalWeight() / 2

	return in
}

// RandomDAG returns n items with an edge i→j (j requires i) for each pair
// i < j independently with probability p. Profits are uniform in [-0.2, 1),
// weights in [0, 1), capacity is half the total weight.
func RandomDAG(n int, p float64, seed int64) *Instance {
	rng := rngFromSeed(seed)
	in := &Instance{
		Name:   fmt.Sprintf("dag-%d-%g-%d", n, p, seed),
		Profit: make([]float64, n),
		Weight: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		in.Profit[i] = rng.Float64()*1.2 - 0.2
		in.Weight[i] = rng.Float64()
	}
	if p > 0 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if rng.Float64() < p {
					in.Edges = append(in.Edges, [2]int{i, j})
				}
			}
		}
	}
	in.MaxWeight = in.TotalWeight() / 2

	return in
}
