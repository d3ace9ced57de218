package lib

import "math/big"

// solve classifies a canonical equation. The quotient is exact; coefficient
// is never zero when it is computed.
func solve(eq CanonicalEquation) Solution {
	if eq.Coefficient == 0 {
		if eq.Constant == 0 {
			return Solution{Kind: SolutionInfinite}
		}
		return Solution{Kind: SolutionNone}
	}
	return UniqueSolution(big.NewRat(eq.Constant, eq.Coefficient))
}
