package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sievelabs/sieve/core"
)

func TestBaseWeightsSumToOne(t *testing.T) {
	for mode := ModeBalanced; mode < modeCount; mode++ {
		w := BaseWeights(mode)
		assert.InDelta(t, 1.0, w.Semantic+w.Lexical+w.ExactMatch, 1e-9, "mode %s", mode)
	}
}

func TestBaseWeightsUnknownModeFallsBack(t *testing.T) {
	assert.Equal(t, BaseWeights(ModeBalanced), BaseWeights(Mode(99)))
	assert.Equal(t, BaseWeights(ModeBalanced), BaseWeights(Mode(-1)))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		name string
		want Mode
	}{
		{"", ModeBalanced},
		{"balanced", ModeBalanced},
		{"semantic", ModeSemantic},
		{"lexical", ModeLexical},
		{"precise", ModePrecise},
		{"exploratory", ModeExploratory},
	}
	for _, tt := range tests {
		mode, err := ParseMode(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, mode)
	}

	_, err := ParseMode("fuzzy")
	assert.Error(t, err)
}

func TestModeString(t *testing.T) {
	for mode := ModeBalanced; mode < modeCount; mode++ {
		parsed, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
}

func TestAdjustWeights(t *testing.T) {
	t.Run("always sums to one", func(t *testing.T) {
		analyses := []*core.QueryAnalysis{
			{Complexity: core.ComplexitySimple, Priority: core.PriorityHigh,
				Domains: []core.Domain{core.DomainFinance}, Intent: core.IntentFactual,
				Clues: []core.ContextClue{core.ClueSpecificEntity}},
			{Complexity: core.ComplexityComplex, Intent: core.IntentAnalytical},
			{Complexity: core.ComplexityModerate, Priority: core.PriorityLow},
		}
		for mode := ModeBalanced; mode < modeCount; mode++ {
			for _, analysis := range analyses {
				w := AdjustWeights(BaseWeights(mode), analysis)
				assert.InDelta(t, 1.0, w.Semantic+w.Lexical+w.ExactMatch, 1e-9)
			}
		}
	})

	t.Run("no weight falls below floor", func(t *testing.T) {
		analysis := &core.QueryAnalysis{
			Complexity: core.ComplexitySimple,
			Priority:   core.PriorityHigh,
			Intent:     core.IntentFactual,
			Domains:    []core.Domain{core.DomainFinance},
			Clues:      []core.ContextClue{core.ClueSpecificEntity},
		}
		w := AdjustWeights(BaseWeights(ModePrecise), analysis)
		assert.Greater(t, w.Semantic, 0.0)
		assert.Greater(t, w.Lexical, 0.0)
		assert.Greater(t, w.ExactMatch, 0.0)
	})

	t.Run("high priority shifts weight to exact match", func(t *testing.T) {
		neutral := &core.QueryAnalysis{Complexity: core.ComplexityModerate}
		high := &core.QueryAnalysis{Complexity: core.ComplexityModerate, Priority: core.PriorityHigh}

		base := BaseWeights(ModeBalanced)
		assert.Greater(t, AdjustWeights(base, high).ExactMatch, AdjustWeights(base, neutral).ExactMatch)
	})

	t.Run("pure function", func(t *testing.T) {
		analysis := &core.QueryAnalysis{Complexity: core.ComplexitySimple}
		base := BaseWeights(ModeSemantic)
		assert.Equal(t, AdjustWeights(base, analysis), AdjustWeights(base, analysis))
	})
}
