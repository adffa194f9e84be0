// Package relax solves the continuous (LP) relaxation of the
// precedence-constrained knapsack problem:
//
//	maximise   Σ p_i x_i
//	subject to Σ w_i x_i ≤ C
//	           x_v ≤ x_u         for every precedence pair (u, v)
//	           lo_i ≤ x_i ≤ hi_i
//
// where each [lo_i, hi_i] is [0,1], [0,0] or [1,1] (see Bound).
//
// Method:
//
//  1. Fixed items are removed; their weight shrinks the capacity to C'.
//     C' < −eps ⇒ Infeasible.
//  2. Dualising the capacity row with multiplier λ ≥ 0 leaves a
//     max-weight closure problem with reduced profits p_i − λ w_i. Its
//     constraint matrix is totally unimodular, so it is solved exactly by
//     one minimum cut (package flow): source→i with capacity r_i for
//     r_i > 0, i→sink with −r_i for r_i < 0, and an infinite arc v→u per
//     precedence pair.
//  3. The dual L(λ) = λC' + max_S r_λ(S) is convex and piecewise linear
//     with at most n+1 pieces (closures are nested in λ). A Newton search
//     that intersects the lines of the heaviest-known overweight closure A
//     and the lightest-known fitting closure B reaches λ* in at most n+2
//     cut problems.
//  4. x* = θ·1_A + (1−θ)·1_B with θ chosen so that capacity is met
//     exactly. Both closures are optimal at λ*, so x* attains L(λ*) and is
//     LP optimal; as a convex combination of closed sets it satisfies every
//     precedence row.
//
// Only the items in A \ B can be fractional, and they all share the value θ.
//
// Complexity: O(k · maxflow(n + 2, n + m)) with k ≤ n + 2 cut problems.
package relax
