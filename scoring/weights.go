package scoring

import (
	"fmt"

	"github.com/sievelabs/sieve/core"
)

// Mode selects the base weighting of the three primary sub-scores.
type Mode int

const (
	// ModeBalanced splits weight evenly-ish across all signals.
	ModeBalanced Mode = iota
	// ModeSemantic favors embedding similarity.
	ModeSemantic
	// ModeLexical favors keyword overlap.
	ModeLexical
	// ModePrecise favors verbatim and phrase matches.
	ModePrecise
	// ModeExploratory favors semantic breadth over exactness.
	ModeExploratory

	modeCount
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSemantic:
		return "semantic"
	case ModeLexical:
		return "lexical"
	case ModePrecise:
		return "precise"
	case ModeExploratory:
		return "exploratory"
	default:
		return "balanced"
	}
}

// ParseMode maps a wire name to its Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "balanced":
		return ModeBalanced, nil
	case "semantic":
		return ModeSemantic, nil
	case "lexical":
		return ModeLexical, nil
	case "precise":
		return ModePrecise, nil
	case "exploratory":
		return ModeExploratory, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Weights is the blend of the three primary sub-scores. A valid Weights sums
// to 1.
type Weights struct {
	Semantic   float64
	Lexical    float64
	ExactMatch float64
}

// baseWeights is the enum-indexed base weight table. Each triple sums to 1.
var baseWeights = [modeCount]Weights{
	ModeBalanced:    {Semantic: 0.50, Lexical: 0.30, ExactMatch: 0.20},
	ModeSemantic:    {Semantic: 0.70, Lexical: 0.20, ExactMatch: 0.10},
	ModeLexical:     {Semantic: 0.20, Lexical: 0.60, ExactMatch: 0.20},
	ModePrecise:     {Semantic: 0.25, Lexical: 0.25, ExactMatch: 0.50},
	ModeExploratory: {Semantic: 0.60, Lexical: 0.30, ExactMatch: 0.10},
}

// BaseWeights returns the base weight triple for a mode.
func BaseWeights(m Mode) Weights {
	if m < 0 || m >= modeCount {
		return baseWeights[ModeBalanced]
	}
	return baseWeights[m]
}

// AdjustWeights perturbs base weights by small fixed deltas driven by the
// query analysis, then renormalizes so the triple sums to 1 again.
// It is a pure function of (base, analysis).
func AdjustWeights(base Weights, analysis *core.QueryAnalysis) Weights {
	w := base

	switch analysis.Complexity {
	case core.ComplexitySimple:
		w.ExactMatch += 0.10
		w.Semantic -= 0.05
		w.Lexical -= 0.05
	case core.ComplexityComplex:
		w.Semantic += 0.10
		w.Lexical -= 0.05
		w.ExactMatch -= 0.05
	}

	if analysis.Priority == core.PriorityHigh {
		w.ExactMatch += 0.15
		w.Semantic -= 0.10
		w.Lexical -= 0.05
	}

	if analysis.InDomain(core.DomainFinance) || analysis.InDomain(core.DomainHR) {
		w.Lexical += 0.05
		w.ExactMatch += 0.05
		w.Semantic -= 0.10
	}

	switch analysis.Intent {
	case core.IntentFactual:
		w.ExactMatch += 0.05
		w.Semantic -= 0.05
	case core.IntentAnalytical:
		w.Semantic += 0.10
		w.ExactMatch -= 0.10
	}

	if analysis.HasClue(core.ClueSpecificEntity) {
		w.ExactMatch += 0.10
		w.Semantic -= 0.10
	}

	return normalizeWeights(w)
}

// normalizeWeights floors each weight at a small positive value and rescales
// the triple to sum to 1.
func normalizeWeights(w Weights) Weights {
	const floor = 0.05
	if w.Semantic < floor {
		w.Semantic = floor
	}
	if w.Lexical < floor {
		w.Lexical = floor
	}
	if w.ExactMatch < floor {
		w.ExactMatch = floor
	}

	sum := w.Semantic + w.Lexical + w.ExactMatch
	w.Semantic /= sum
	w.Lexical /= sum
	w.ExactMatch /= sum
	return w
}
