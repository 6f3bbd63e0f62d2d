package graph

// Weights maps each interaction signal to the trust mass it carries.
// The values are summed per ordered user pair before normalization, so
// only their ratios matter.
type Weights struct {
	Reply    float64
	Reaction float64
	Mention  float64

	// Thread is the co-participation weight between reply authors under
	// the same root post. Zero disables the signal.
	Thread float64
}

func DefaultWeights() Weights {
	return Weights{
		Reply:    2.0,
		Reaction: 1.0,
		Mention:  1.5,
		Thread:   0.5,
	}
}
