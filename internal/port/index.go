package port

import "silkmoth/internal/domain"

// Index is the inverted index over a fixed, immutable tokenized source
// collection: token -> ordered posting list, plus ownership of the
// tokenized sets themselves.
type Index interface {
	// Postings returns the full, ordered posting list for a token. An
	// absent token yields (nil, nil): unknown-token probes are locally
	// suppressed rather than surfaced as an error.
	Postings(token string) ([]domain.Posting, error)

	// PostingsInSet restricts Postings(token) to one setIdx via binary
	// search over the token's contiguous posting list.
	PostingsInSet(token string, setIdx int) ([]domain.Posting, error)

	// Set returns the tokenized source set at setIdx.
	Set(setIdx int) (domain.TokenizedSet, error)

	// SetSize returns len(Set(setIdx)) without a full copy.
	SetSize(setIdx int) (int, error)

	// NumSets returns the number of tokenized source sets held.
	NumSets() int

	// Tokens returns every known token, in unspecified order.
	Tokens() []string
}
