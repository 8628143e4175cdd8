package search

import "github.com/sievelabs/sieve/scoring"

const (
	// DefaultLimit is the maximum result count when the caller does not set one.
	DefaultLimit = 10

	// DefaultThreshold is the base relevance threshold before dynamic
	// adjustment.
	DefaultThreshold = 0.3
)

// Options holds optional per-search parameters. The zero value is usable;
// unset fields take their defaults.
type Options struct {
	// Limit caps the number of returned results. Default is DefaultLimit.
	Limit int

	// Threshold is the caller-supplied base relevance threshold in [0,1].
	// It is adjusted per query before chunks are dropped against it.
	// Default is DefaultThreshold.
	Threshold float64

	// Mode selects the scoring weight profile. Default is ModeBalanced.
	Mode scoring.Mode

	// DocumentIds restricts the corpus to the listed documents. An empty
	// slice means the whole corpus. Filtered searches bypass the cache,
	// because cached entries are keyed by query alone.
	DocumentIds []string

	// BypassCache skips both the cache lookup and the cache write.
	BypassCache bool
}

// normalized returns a copy with defaults applied.
func (o *Options) normalized() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Limit <= 0 {
		out.Limit = DefaultLimit
	}
	if out.Threshold <= 0 {
		out.Threshold = DefaultThreshold
	}
	return out
}

// cacheable reports whether results for these options may be served from or
// written to the cache.
func (o Options) cacheable() bool {
	return !o.BypassCache && len(o.DocumentIds) == 0
}
