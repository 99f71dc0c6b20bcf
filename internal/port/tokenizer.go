package port

import "silkmoth/internal/domain"

// Tokenizer turns a raw set into a tokenized set under a fixed SimFunc.
type Tokenizer interface {
	// Tokenize tokenizes every element of set. It returns warnings for any
	// element that tokenizes to empty (domain.WarnEmptyElement) and fails
	// with domain.ErrUnsupportedElementType on structurally invalid input.
	Tokenize(set domain.RawSet) (domain.TokenizedSet, []string, error)

	// Func reports the similarity function this tokenizer feeds.
	Func() domain.SimFunc

	// Q reports the q-gram length in effect (meaningless for Jaccard).
	Q() int
}
