package scoring

import "github.com/sievelabs/sieve/core"

// DynamicThreshold derives the effective drop threshold for one query from
// the caller-supplied base threshold and the query analysis.
//
// Priority lowers the bar the most: business-critical queries must not lose
// results to a conservative base threshold. Complexity, compensation-adjacent
// domains, and specific-entity clues adjust further. The result is floored at
// minimum so a chain of reductions cannot drive it to zero.
func DynamicThreshold(base float64, analysis *core.QueryAnalysis, minimum float64) float64 {
	threshold := base

	switch analysis.Priority {
	case core.PriorityHigh:
		threshold *= 0.3
	case core.PriorityMedium:
		threshold *= 0.6
	}

	switch analysis.Complexity {
	case core.ComplexitySimple:
		threshold *= 0.8
	case core.ComplexityComplex:
		threshold *= 1.2
	}

	if analysis.InDomain(core.DomainFinance) || analysis.InDomain(core.DomainHR) {
		threshold *= 0.5
	}

	if analysis.HasClue(core.ClueSpecificEntity) {
		threshold *= 0.4
	}

	if threshold < minimum {
		threshold = minimum
	}
	return threshold
}
