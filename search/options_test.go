package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sievelabs/sieve/scoring"
)

func TestOptionsNormalized(t *testing.T) {
	var nilOpts *Options
	out := nilOpts.normalized()
	assert.Equal(t, DefaultLimit, out.Limit)
	assert.Equal(t, DefaultThreshold, out.Threshold)
	assert.Equal(t, scoring.ModeBalanced, out.Mode)

	out = (&Options{Limit: 3, Threshold: 0.7, Mode: scoring.ModeLexical}).normalized()
	assert.Equal(t, 3, out.Limit)
	assert.Equal(t, 0.7, out.Threshold)
	assert.Equal(t, scoring.ModeLexical, out.Mode)
}

func TestOptionsCacheable(t *testing.T) {
	assert.True(t, Options{}.cacheable())
	assert.False(t, Options{BypassCache: true}.cacheable())
	assert.False(t, Options{DocumentIds: []string{"d1"}}.cacheable())
}
