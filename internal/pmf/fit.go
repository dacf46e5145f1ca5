package pmf

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
)

// FitRate finds the Poisson rate that best matches the empirical PMF in the
// weighted least-squares sense, each residual scaled by 1/σ_k. The search
// starts at the sample mean.
func FitRate(p PMF) (float64, error) {
	if p.N == 0 {
		return 0, ErrEmptyInput
	}
	mean := p.Mean()
	if mean == 0 {
		return 0, nil
	}

	resFunc := func(dst, params []float64) {
		μ := math.Abs(params[0])
		for i, k := range p.Values {
			σ := p.Errors[i]
			dst[i] = (p.Probabilities[i] - poissonProb(μ, k)) / σ
		}
	}

	nj := lm.NumJac{Func: resFunc}

	problem := lm.LMProblem{
		Dim:        1,
		Size:       len(p.Values),
		Func:       resFunc,
		Jac:        nj.Jac,
		InitParams: []float64{mean},
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	result, err := lm.LM(problem, &lm.Settings{Iterations: 1000, ObjectiveTol: 1e-16})
	if err != nil {
		return 0, fmt.Errorf("fit poisson rate: %w", err)
	}

	μ := math.Abs(result.X[0])
	if math.IsNaN(μ) || math.IsInf(μ, 0) {
		return 0, fmt.Errorf("fit poisson rate: %w: %v", ErrInvalidRate, μ)
	}
	return μ, nil
}
