package query

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleSet(t *testing.T) {
	t.Run("overrides replace sections wholesale", func(t *testing.T) {
		rules, err := ParseRuleSet([]byte(`
synonyms:
  invoice: [bill, receipt]
medium_priority_terms: [okr]
`))
		require.NoError(t, err)

		assert.Equal(t, []string{"bill", "receipt"}, rules.Synonyms["invoice"])
		assert.Empty(t, rules.Synonyms["salary"], "overridden section drops defaults")
		assert.Equal(t, []string{"okr"}, rules.MediumPriorityTerms)
		// Untouched sections keep their defaults.
		assert.NotEmpty(t, rules.Domains["finance"])
		assert.NotEmpty(t, rules.HighPriorityPatterns)
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		rules, err := ParseRuleSet([]byte(""))
		require.NoError(t, err)
		assert.Equal(t, DefaultRuleSet(), rules)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseRuleSet([]byte("synonyms: [unbalanced"))
		assert.ErrorIs(t, err, ErrInvalidRuleFile)
	})

	t.Run("unknown domain rejected", func(t *testing.T) {
		_, err := ParseRuleSet([]byte("domains:\n  astrology: [stars]\n"))
		assert.ErrorIs(t, err, ErrUnknownDomain)
	})

	t.Run("invalid pattern rejected", func(t *testing.T) {
		_, err := ParseRuleSet([]byte(`high_priority_patterns: ["(unclosed"]`))
		assert.ErrorIs(t, err, ErrInvalidPattern)
	})
}

func TestLoadRuleSet(t *testing.T) {
	t.Run("loads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("medium_priority_terms: [initiative]\n"), 0o644))

		rules, err := LoadRuleSet(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"initiative"}, rules.MediumPriorityTerms)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRuleSet(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestDefaultRuleSetValidates(t *testing.T) {
	assert.NoError(t, DefaultRuleSet().Validate())
}
