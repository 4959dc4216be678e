package ranking

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithDims sets the embedding dimensionality. Must match the catalog's
// stored vectors or they will be recomputed on demand.
func WithDims(dims int) Option {
	return func(r *Ranker) {
		if dims > 0 {
			r.dims = dims
		}
	}
}

// WithMinTopSimilarity sets the weakest top-1 embedding similarity that
// still allows embedding-first retrieval.
func WithMinTopSimilarity(v float64) Option {
	return func(r *Ranker) {
		if v >= 0 {
			r.minTopSimilarity = v
		}
	}
}

// WithMinConfidenceGap sets the smallest top1-top2 similarity gap that
// still counts as an unambiguous embedding match.
func WithMinConfidenceGap(v float64) Option {
	return func(r *Ranker) {
		if v >= 0 {
			r.minConfidenceGap = v
		}
	}
}

// WithLexicalBoost sets the lexical contribution added to the embedding
// retrieval score under embedding-first strategy.
func WithLexicalBoost(v float64) Option {
	return func(r *Ranker) {
		if v >= 0 {
			r.lexicalBoost = v
		}
	}
}
